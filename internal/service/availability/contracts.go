package availability

import (
	"context"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/internal/integrations/partnerservice"
)

// AvailabilityRepository интерфейс репозитория недельных расписаний
type AvailabilityRepository interface {
	GetWeekly(ctx context.Context, partnerID int64) (*domain.WeeklyAvailability, error)
	ReplaceWeekly(ctx context.Context, weekly *domain.WeeklyAvailability) error
}

// PartnerServiceClient интерфейс клиента для PartnerService
type PartnerServiceClient interface {
	GetPartner(ctx context.Context, partnerID int64) (*partnerservice.Partner, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
