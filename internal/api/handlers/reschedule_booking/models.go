package reschedule_booking

import (
	"time"

	"github.com/plindo/booking-service/internal/domain"
	rescheduleBooking "github.com/plindo/booking-service/internal/usecase/reschedule_booking"
	"github.com/plindo/booking-service/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate      string `json:"newDate"`      // "2026-03-17"
	NewStartTime string `json:"newStartTime"` // "14:00"
}

// TimelineEntryResponse одна запись истории статусов
type TimelineEntryResponse struct {
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64                   `json:"id"`
	BookingNumber   string                  `json:"bookingNumber"`
	CustomerID      int64                   `json:"customerId"`
	PartnerID       int64                   `json:"partnerId"`
	BookingDate     string                  `json:"bookingDate"`
	StartTime       string                  `json:"startTime"`
	DurationMinutes int                     `json:"durationMinutes"`
	Status          string                  `json:"status"`
	Timeline        []TimelineEntryResponse `json:"timeline"`
	UpdatedAt       string                  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*rescheduleBooking.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:    bookingID,
		UserID:       userID,
		NewDate:      newDate,
		NewStartTime: newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	result := &BookingResponse{
		ID:              resp.ID,
		BookingNumber:   resp.BookingNumber,
		CustomerID:      resp.CustomerID,
		PartnerID:       resp.PartnerID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Timeline:        make([]TimelineEntryResponse, 0, len(resp.Timeline)),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}

	for _, entry := range resp.Timeline {
		result.Timeline = append(result.Timeline, TimelineEntryResponse{
			Status:    entry.Status,
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
		})
	}

	return result
}
