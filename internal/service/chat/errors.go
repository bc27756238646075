package chat

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда пользователь не является участником бронирования
	ErrAccessDenied = errors.New("access denied")

	// ErrChatClosed возвращается, когда чат по бронированию недоступен
	// (бронирование не подтверждено владельцем или слот уже прошёл)
	ErrChatClosed = errors.New("chat is closed for this booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("chat service: internal error")
)
