package disputes

import (
	"context"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/internal/integrations/partnerservice"
)

// DisputeRepository интерфейс репозитория споров
type DisputeRepository interface {
	Create(ctx context.Context, d *domain.Dispute) (*domain.Dispute, error)
	GetByID(ctx context.Context, id int64) (*domain.Dispute, error)
	GetPendingByBookingID(ctx context.Context, bookingID int64) (*domain.Dispute, error)
	SetPartnerResponse(ctx context.Context, id int64, response string) error
	Resolve(ctx context.Context, id int64, resolvedBy int64, note string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SlotBooking, error)
}

// PartnerServiceClient интерфейс клиента для PartnerService
type PartnerServiceClient interface {
	GetPartner(ctx context.Context, partnerID int64) (*partnerservice.Partner, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
