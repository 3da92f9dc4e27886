package resolve_dispute

import (
	"context"

	"github.com/plindo/booking-service/internal/service/disputes/models"
)

type DisputesService interface {
	Resolve(ctx context.Context, disputeID int64, req *models.ResolveDisputeRequest) (*models.DisputeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
