package smsgateway

import "errors"

var (
	// ErrSendFailed возвращается, когда сообщение не удалось отправить
	ErrSendFailed = errors.New("smsgateway client: failed to send message")

	// ErrNoRecipient возвращается, когда у получателя нет номера телефона
	ErrNoRecipient = errors.New("smsgateway client: recipient has no phone number")
)
