package update_order_status

import (
	"context"

	"github.com/plindo/booking-service/internal/service/orders/models"
)

type OrdersService interface {
	UpdateStatus(ctx context.Context, orderID int64, req *models.UpdateOrderStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
