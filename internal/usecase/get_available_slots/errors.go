package get_available_slots

import "errors"

var (
	// ErrValidation возвращается при некорректных данных запроса
	ErrValidation = errors.New("validation error")

	// ErrSalonNotFound возвращается, когда салон не найден или невидим публично
	ErrSalonNotFound = errors.New("salon not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_available_slots usecase: internal error")
)
