package get_partner_orders

import (
	"context"

	"github.com/plindo/booking-service/internal/service/orders/models"
)

type OrdersService interface {
	GetPartnerOrders(ctx context.Context, req *models.GetPartnerOrdersRequest) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
