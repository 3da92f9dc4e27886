package config

import (
	"context"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/internal/integrations/partnerservice"
)

// ConfigRepository интерфейс репозитория правил бронирования
type ConfigRepository interface {
	Create(ctx context.Context, cfg *domain.PartnerBookingConfig) (*domain.PartnerBookingConfig, error)
	GetByPartnerAndCategory(ctx context.Context, partnerID int64, categoryID *int64) (*domain.PartnerBookingConfig, error)
	GetConfigWithHierarchy(ctx context.Context, partnerID int64, categoryID *int64) (*domain.PartnerBookingConfig, error)
	GetAllByPartner(ctx context.Context, partnerID int64) ([]*domain.PartnerBookingConfig, error)
	Update(ctx context.Context, id int64, cfg *domain.PartnerBookingConfig) (*domain.PartnerBookingConfig, error)
	Delete(ctx context.Context, id int64) error
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
