package partnerservice

import "errors"

var (
	// ErrPartnerNotFound возвращается, когда партнер не найден
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге партнера
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("partnerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("partnerservice client: invalid response")
)
