package create_slot_booking

import (
	"time"

	"github.com/plindo/booking-service/internal/domain"
	createSlotBooking "github.com/plindo/booking-service/internal/usecase/create_slot_booking"
	"github.com/plindo/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PartnerID     int64   `json:"partnerId"`
	ServiceID     int64   `json:"serviceId"`
	Fulfillment   string  `json:"fulfillment"` // "onsite" или "delivery"
	BookingDate   string  `json:"bookingDate"` // "2026-03-16"
	StartTime     string  `json:"startTime"`   // "10:00"
	PaymentMethod string  `json:"paymentMethod"`
	Notes         *string `json:"notes,omitempty"`
}

// PaymentResponse разбивка платежа в HTTP ответе
type PaymentResponse struct {
	Method        string  `json:"method"`
	Amount        float64 `json:"amount"`
	PlatformFee   float64 `json:"platformFee"`
	PartnerPayout float64 `json:"partnerPayout"`
	Status        string  `json:"status"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	BookingNumber   string  `json:"bookingNumber"`
	CustomerID      int64   `json:"customerId"`
	PartnerID       int64   `json:"partnerId"`
	ServiceID       int64   `json:"serviceId"`
	CategoryID      int64   `json:"categoryId"`
	Fulfillment     string  `json:"fulfillment"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	VehicleBrand    *string `json:"vehicleBrand,omitempty"`
	VehicleModel    *string `json:"vehicleModel,omitempty"`
	VehiclePlate    *string `json:"vehiclePlate,omitempty"`
	Notes           *string `json:"notes,omitempty"`

	Payment PaymentResponse `json:"payment"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createSlotBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createSlotBooking.Request{
		CustomerID:    customerID,
		PartnerID:     r.PartnerID,
		ServiceID:     r.ServiceID,
		Fulfillment:   domain.FulfillmentType(r.Fulfillment),
		Date:          bookingDate,
		StartTime:     startTime,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSlotBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		BookingNumber:   resp.BookingNumber,
		CustomerID:      resp.CustomerID,
		PartnerID:       resp.PartnerID,
		ServiceID:       resp.ServiceID,
		CategoryID:      resp.CategoryID,
		Fulfillment:     resp.Fulfillment,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		VehicleBrand:    resp.VehicleBrand,
		VehicleModel:    resp.VehicleModel,
		VehiclePlate:    resp.VehiclePlate,
		Notes:           resp.Notes,
		Payment: PaymentResponse{
			Method:        resp.PaymentMethod,
			Amount:        resp.PaymentAmount,
			PlatformFee:   resp.PlatformFee,
			PartnerPayout: resp.PartnerPayout,
			Status:        resp.PaymentStatus,
		},
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
