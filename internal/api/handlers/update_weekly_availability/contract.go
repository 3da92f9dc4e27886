package update_weekly_availability

import (
	"context"

	"github.com/plindo/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateWeekly(ctx context.Context, req *models.UpdateWeeklyRequest) (*models.WeeklyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
