package service

import "errors"

// Ошибки бизнес-слоя. Хэндлер отображает их в HTTP-статусы через errors.Is:
// ErrValidation -> 400, ErrInvalidCredentials/ErrInvalidToken -> 401,
// ErrNotFound -> 404, всё остальное -> 500.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotFound           = errors.New("report not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
