package config

import "errors"

var (
	// ErrConfigNotFound возвращается, когда правила бронирования не найдены
	ErrConfigNotFound = errors.New("booking config not found")

	// ErrPartnerNotFound возвращается, когда партнер не найден
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrDuplicateConfig возвращается при попытке создать дубликат правил
	ErrDuplicateConfig = errors.New("booking config already exists for this scope")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
