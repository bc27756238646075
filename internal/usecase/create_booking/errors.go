package create_booking

import "errors"

var (
	// ErrValidation возвращается при некорректных данных запроса
	ErrValidation = errors.New("validation error")

	// ErrSalonNotFound возвращается, когда салон не найден или невидим публично
	ErrSalonNotFound = errors.New("salon not found")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_booking usecase: internal error")
)
