package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes     = 30
	DefaultMaxConcurrentBookings   = 1
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
	DefaultCancellationWindowHours = 24
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinConcurrentBookings       = 0   // 0 = partner accepts no bookings
	MaxConcurrentBookingsLimit  = 100
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxCancellationWindowHours  = 336   // 2 weeks
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxDisputeTextLength        = 2000
	MinRating                   = 1
	MaxRating                   = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих ёмкость партнера
// Используется при подсчёте свободных мест в окне
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusDelivered,
	StatusCancelled,
}
