package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrPartnerNotFound возвращается, когда партнер не найден
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на перенос
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotReschedule возвращается, когда бронирование уже нельзя перенести
	ErrCannotReschedule = errors.New("booking cannot be rescheduled")

	// ErrInvalidDate возвращается при некорректной новой дате
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrTooLateToBook возвращается при нарушении minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("too late to book this window")

	// ErrPartnerClosed возвращается, когда партнер не работает в новую дату
	ErrPartnerClosed = errors.New("partner is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда новое окно не попадает в рабочие блоки
	ErrOutsideWorkingHours = errors.New("window is outside working hours")

	// ErrCapacityExceeded возвращается, когда в новом окне не осталось свободных мест
	ErrCapacityExceeded = errors.New("window capacity exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
