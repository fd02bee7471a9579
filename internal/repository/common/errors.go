package common

import "errors"

// Базовые ошибки репозиториев. Конкретные sentinel-ошибки оборачивают их,
// так что errors.Is(err, ErrNotFound) работает для любой сущности.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrConflict      = errors.New("entity state conflict")
)
