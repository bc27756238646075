package salons

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден или невидим публично
	ErrSalonNotFound = errors.New("salon not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrOwnerGateRejected возвращается, когда аккаунт не проходит эвристику владельца
	// (неподтверждённая почта или почта вне разрешённого домена)
	ErrOwnerGateRejected = errors.New("account is not eligible to manage a salon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("salons service: internal error")
)
