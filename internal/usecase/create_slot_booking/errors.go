package create_slot_booking

import "errors"

var (
	// ErrPartnerNotFound возвращается, когда партнер не найден
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrPartnerInactive возвращается, когда партнер отключён от платформы
	ErrPartnerInactive = errors.New("partner is not active")

	// ErrFulfillmentNotSupported возвращается, когда услуга недоступна
	// в запрошенном способе исполнения
	ErrFulfillmentNotSupported = errors.New("service does not support this fulfillment type")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrTooLateToBook возвращается при нарушении minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("too late to book this window")

	// ErrPartnerClosed возвращается, когда партнер не работает в указанную дату
	ErrPartnerClosed = errors.New("partner is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда окно не попадает в рабочие блоки
	ErrOutsideWorkingHours = errors.New("window is outside working hours")

	// ErrCapacityExceeded возвращается, когда в окне не осталось свободных мест
	ErrCapacityExceeded = errors.New("window capacity exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
