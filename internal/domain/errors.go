package domain

import "errors"

var (
	// ErrNotFound — запись не найдена (на уровне usecase; репозитории возвращают nil, nil).
	ErrNotFound = errors.New("record not found")
	// ErrInvalidArgument — отсутствует обязательный числовой id.
	ErrInvalidArgument = errors.New("invalid parameter type")
	// ErrAlreadyRated — пользователь уже оценил фото.
	ErrAlreadyRated = errors.New("photo already rated by user")
	// ErrConflict — нарушение уникальности (логин, имя тега).
	ErrConflict = errors.New("record already exists")

	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("not authorized")
	ErrUnauthorized = errors.New("authentication required")
)
