package list_partner_configs

import (
	"context"

	"github.com/plindo/booking-service/internal/service/config/models"
)

type ConfigService interface {
	GetAllByPartner(ctx context.Context, partnerID, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
