package create_product_order

import (
	"context"

	"github.com/plindo/booking-service/internal/service/orders/models"
)

type OrdersService interface {
	Create(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
