package get_partner_config

import (
	"context"

	"github.com/plindo/booking-service/internal/service/config/models"
)

type ConfigService interface {
	GetEffective(ctx context.Context, partnerID int64, categoryID *int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
