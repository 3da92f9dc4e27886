package domain

import (
	"time"

	"github.com/plindo/booking-service/pkg/types"
)

// BookingStatus represents the status of a slot booking
type BookingStatus string

const (
	StatusBooked         BookingStatus = "booked"
	StatusInProgress     BookingStatus = "in_progress"
	StatusPicked         BookingStatus = "picked"
	StatusOutForDelivery BookingStatus = "out_for_delivery"
	StatusDelivered      BookingStatus = "delivered"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"

	// StatusRescheduled is a timeline-only marker: the booking itself re-enters
	// "booked" at the new window, the marker stays in the history
	StatusRescheduled BookingStatus = "rescheduled"
)

// FulfillmentType how the service is delivered to the customer
type FulfillmentType string

const (
	FulfillmentOnsite   FulfillmentType = "onsite"   // customer drives in, wash happens at the bay
	FulfillmentDelivery FulfillmentType = "delivery" // vehicle is picked up, washed and returned
)

// PaymentStatus status of the booking's payment record
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment breakdown attached to a booking
// Amount is what the customer is charged; PartnerPayout + PlatformFee reconcile
// against it through the commission model
type Payment struct {
	Method        string
	Amount        float64
	PlatformFee   float64
	PartnerPayout float64
	Status        PaymentStatus
}

// TimelineEntry одна запись истории статусов бронирования
type TimelineEntry struct {
	ID        int64
	BookingID int64
	Status    BookingStatus
	CreatedAt time.Time
}

// SlotBooking represents a capacity-consuming booking of a partner's time window
type SlotBooking struct {
	ID            int64
	BookingNumber string
	CustomerID    int64
	PartnerID     int64
	ServiceID     int64
	CategoryID    int64

	Fulfillment     FulfillmentType
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized service snapshot for history
	ServiceName     string
	ServicePrice    float64
	VehicleBrand    *string
	VehicleModel    *string
	VehiclePlate    *string
	Notes           *string

	Payment Payment
	Rating  *int

	CancellationReason *string
	CancelledAt        *time.Time
	CancellationFee    bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Timeline is loaded separately and ordered by creation time;
	// its last entry always matches Status
	Timeline []TimelineEntry
}

// IsActive returns true if the booking still consumes window capacity
func (b *SlotBooking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are possible
func (b *SlotBooking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusDelivered ||
		b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *SlotBooking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// CanBeRescheduled returns true if the booking can be moved to a new window
// Only bookings that have not started yet can be rescheduled
func (b *SlotBooking) CanBeRescheduled() bool {
	return b.Status == StatusBooked
}

// IsServed returns true if the service was actually performed
func (b *SlotBooking) IsServed() bool {
	return b.Status == StatusCompleted || b.Status == StatusDelivered
}

// CanBeRated returns true if the customer may leave a rating
func (b *SlotBooking) CanBeRated() bool {
	return b.IsServed() && b.Rating == nil
}

// PartnerBookingsFilter фильтр для получения бронирований партнера
type PartnerBookingsFilter struct {
	PartnerID       int64          // Обязательный параметр
	CategoryID      *int64         // Фильтр по категории услуг (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
