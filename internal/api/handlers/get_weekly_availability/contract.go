package get_weekly_availability

import (
	"context"

	"github.com/plindo/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	GetWeekly(ctx context.Context, partnerID int64) (*models.WeeklyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
