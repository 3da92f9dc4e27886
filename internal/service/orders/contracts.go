package orders

import (
	"context"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/internal/integrations/partnerservice"
)

// OrderRepository интерфейс репозитория заказов товаров
type OrderRepository interface {
	Create(ctx context.Context, o *domain.ProductOrder) (*domain.ProductOrder, error)
	GetByID(ctx context.Context, id int64) (*domain.ProductOrder, error)
	GetByPartner(ctx context.Context, partnerID int64, status *domain.OrderStatus) ([]*domain.ProductOrder, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
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
