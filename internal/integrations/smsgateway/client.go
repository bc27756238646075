package smsgateway

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент отправки SMS через Twilio
// При enabled=false все отправки превращаются в запись в лог -
// уведомления в этом сервисе best-effort и не влияют на результат операции
type Client struct {
	api     *twilio.RestClient
	from    string
	enabled bool
	log     Logger
}

// NewClient создает новый экземпляр SMS клиента
func NewClient(accountSID, authToken, from string, enabled bool, log Logger) *Client {
	var api *twilio.RestClient
	if enabled {
		api = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
	}

	return &Client{
		api:     api,
		from:    from,
		enabled: enabled,
		log:     log,
	}
}

// Send отправляет SMS на указанный номер
// Контекст принимается для симметрии с остальными интеграциями;
// twilio-go не поддерживает отмену запроса по контексту
func (c *Client) Send(_ context.Context, to, body string) error {
	if to == "" {
		return ErrNoRecipient
	}

	if !c.enabled {
		c.log.Info("SMS disabled, skipping message to %s: %s", to, body)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.from)
	params.SetBody(body)

	resp, err := c.api.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if resp.Sid != nil {
		c.log.Info("SMS sent to %s, sid=%s", to, *resp.Sid)
	} else {
		c.log.Warn("SMS sent to %s, but no SID returned", to)
	}

	return nil
}
