package cancel_product_order

import (
	"context"

	"github.com/plindo/booking-service/internal/service/orders/models"
)

type OrdersService interface {
	Cancel(ctx context.Context, orderID int64, req *models.CancelOrderRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
