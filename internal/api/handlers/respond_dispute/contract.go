package respond_dispute

import (
	"context"

	"github.com/plindo/booking-service/internal/service/disputes/models"
)

type DisputesService interface {
	Respond(ctx context.Context, disputeID int64, req *models.RespondDisputeRequest) (*models.DisputeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
