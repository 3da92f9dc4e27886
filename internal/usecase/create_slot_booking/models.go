package create_slot_booking

import (
	"time"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID    int64                  // ID клиента
	PartnerID     int64                  // ID партнера
	ServiceID     int64                  // ID услуги из каталога партнера
	Fulfillment   domain.FulfillmentType // Способ исполнения: onsite или delivery
	Date          time.Time              // Дата бронирования (без времени)
	StartTime     types.TimeString       // Время начала окна
	PaymentMethod string                 // Способ оплаты
	Notes         *string                // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	BookingNumber   string
	CustomerID      int64
	PartnerID       int64
	ServiceID       int64
	CategoryID      int64
	Fulfillment     string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	ServiceName  string
	ServicePrice float64
	VehicleBrand *string
	VehicleModel *string
	VehiclePlate *string
	Notes        *string

	PaymentMethod string
	PaymentAmount float64
	PlatformFee   float64
	PartnerPayout float64
	PaymentStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}
