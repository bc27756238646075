package models

import (
	"time"

	"github.com/m04kA/SC-BookingService/internal/domain"
)

// SendMessageRequest запрос на отправку сообщения в чат бронирования
type SendMessageRequest struct {
	Body string `json:"body"`
}

// MessageResponse представление сообщения чата
type MessageResponse struct {
	ID         string `json:"id"`
	BookingID  string `json:"bookingId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Body       string `json:"body"`
	CreatedAt  string `json:"createdAt"` // ISO 8601
}

// MessageListResponse список сообщений чата, старые сверху
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	ChatOpen bool              `json:"chatOpen"`
	Total    int               `json:"total"`
}

// FromDomainMessage конвертирует domain модель в response
func FromDomainMessage(m *domain.Message) *MessageResponse {
	return &MessageResponse{
		ID:         m.ID,
		BookingID:  m.BookingID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainMessageList конвертирует список domain моделей в response
func FromDomainMessageList(messages []*domain.Message, chatOpen bool) *MessageListResponse {
	items := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, *FromDomainMessage(m))
	}

	return &MessageListResponse{
		Messages: items,
		ChatOpen: chatOpen,
		Total:    len(items),
	}
}
