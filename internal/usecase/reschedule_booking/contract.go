package reschedule_booking

import (
	"context"
	"time"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/internal/integrations/partnerservice"
	"github.com/plindo/booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SlotBooking, error)
	GetByPartnerWithFilter(ctx context.Context, filter domain.PartnerBookingsFilter) ([]*domain.SlotBooking, error)
	UpdateSchedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error
	AppendTimeline(ctx context.Context, bookingID int64, status domain.BookingStatus) error
	GetTimeline(ctx context.Context, bookingID int64) ([]domain.TimelineEntry, error)
}

// AvailabilityRepository интерфейс репозитория недельных расписаний
type AvailabilityRepository interface {
	GetWeekly(ctx context.Context, partnerID int64) (*domain.WeeklyAvailability, error)
}

// ConfigRepository интерфейс репозитория правил бронирования
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, partnerID int64, categoryID *int64) (*domain.PartnerBookingConfig, error)
}

// PartnerServiceClient интерфейс клиента для PartnerService
type PartnerServiceClient interface {
	GetPartner(ctx context.Context, partnerID int64) (*partnerservice.Partner, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
