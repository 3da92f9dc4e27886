package models

import (
	"errors"
	"time"

	"github.com/plindo/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// RateBookingRequest запрос на оценку выполненного бронирования
type RateBookingRequest struct {
	UserID int64 `json:"userId"`
	Rating int   `json:"rating"`
}

// RefundBookingRequest запрос на возврат платежа
type RefundBookingRequest struct {
	UserID int64 `json:"userId"`
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetPartnerBookingsRequest запрос на получение бронирований партнера
type GetPartnerBookingsRequest struct {
	UserID          int64      `json:"userId"`
	PartnerID       int64      `json:"partnerId"`
	CategoryID      *int64     `json:"categoryId,omitempty"`      // Фильтр по категории (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPartnerBookingsRequest) ToDomainFilter() (domain.PartnerBookingsFilter, error) {
	filter := domain.PartnerBookingsFilter{
		PartnerID:       r.PartnerID,
		CategoryID:      r.CategoryID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// PaymentResponse разбивка платежа бронирования
type PaymentResponse struct {
	Method        string  `json:"method"`
	Amount        float64 `json:"amount"`
	PlatformFee   float64 `json:"platformFee"`
	PartnerPayout float64 `json:"partnerPayout"`
	Status        string  `json:"status"`
}

// TimelineEntryResponse одна запись истории статусов
type TimelineEntryResponse struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	BookingNumber   string `json:"bookingNumber"`
	CustomerID      int64  `json:"customerId"`
	PartnerID       int64  `json:"partnerId"`
	ServiceID       int64  `json:"serviceId"`
	CategoryID      int64  `json:"categoryId"`
	Fulfillment     string `json:"fulfillment"`
	BookingDate     string `json:"bookingDate"` // "2026-03-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	VehicleBrand *string `json:"vehicleBrand,omitempty"`
	VehicleModel *string `json:"vehicleModel,omitempty"`
	VehiclePlate *string `json:"vehiclePlate,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	Payment PaymentResponse `json:"payment"`
	Rating  *int            `json:"rating,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	CancellationFee    bool    `json:"cancellationFee"`

	Timeline []TimelineEntryResponse `json:"timeline,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
// DistinctCustomers заполняется только в выдаче по партнеру: сколько разных
// клиентов когда-либо бронировали его услуги
type BookingListResponse struct {
	Bookings          []BookingResponse `json:"bookings"`
	DistinctCustomers int               `json:"distinctCustomers,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.SlotBooking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		CustomerID:         b.CustomerID,
		PartnerID:          b.PartnerID,
		ServiceID:          b.ServiceID,
		CategoryID:         b.CategoryID,
		Fulfillment:        string(b.Fulfillment),
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		VehicleBrand:       b.VehicleBrand,
		VehicleModel:       b.VehicleModel,
		VehiclePlate:       b.VehiclePlate,
		Notes:              b.Notes,
		Rating:             b.Rating,
		CancellationReason: b.CancellationReason,
		CancellationFee:    b.CancellationFee,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		Payment: PaymentResponse{
			Method:        b.Payment.Method,
			Amount:        b.Payment.Amount,
			PlatformFee:   b.Payment.PlatformFee,
			PartnerPayout: b.Payment.PartnerPayout,
			Status:        string(b.Payment.Status),
		},
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	for _, entry := range b.Timeline {
		resp.Timeline = append(resp.Timeline, TimelineEntryResponse{
			Status:    string(entry.Status),
			CreatedAt: entry.CreatedAt,
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.SlotBooking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
// Маркер rescheduled существует только в истории и не принимается как статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
