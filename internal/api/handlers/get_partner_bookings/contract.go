package get_partner_bookings

import (
	"context"

	"github.com/plindo/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetPartnerBookings(ctx context.Context, req *models.GetPartnerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
