package disputes

import "errors"

var (
	// ErrDisputeNotFound возвращается, когда спор не найден
	ErrDisputeNotFound = errors.New("dispute not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotServed возвращается при попытке открыть спор
	// по невыполненному бронированию
	ErrBookingNotServed = errors.New("dispute requires a served booking")

	// ErrDisputeAlreadyOpen возвращается, когда по бронированию уже есть открытый спор
	ErrDisputeAlreadyOpen = errors.New("booking already has an open dispute")

	// ErrDisputeClosed возвращается при попытке изменить закрытый спор
	ErrDisputeClosed = errors.New("dispute is already resolved")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
