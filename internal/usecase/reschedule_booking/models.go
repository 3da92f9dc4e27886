package reschedule_booking

import (
	"time"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID    int64            // ID бронирования
	UserID       int64            // ID пользователя, выполняющего перенос
	NewDate      time.Time        // Новая дата бронирования
	NewStartTime types.TimeString // Новое время начала окна
}

// TimelineEntryResponse одна запись истории статусов
type TimelineEntryResponse struct {
	Status    string
	CreatedAt time.Time
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID              int64
	BookingNumber   string
	CustomerID      int64
	PartnerID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	Timeline        []TimelineEntryResponse
	UpdatedAt       time.Time
}

func fromDomainBooking(b *domain.SlotBooking) *Response {
	resp := &Response{
		ID:              b.ID,
		BookingNumber:   b.BookingNumber,
		CustomerID:      b.CustomerID,
		PartnerID:       b.PartnerID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		UpdatedAt:       b.UpdatedAt,
	}
	for _, entry := range b.Timeline {
		resp.Timeline = append(resp.Timeline, TimelineEntryResponse{
			Status:    string(entry.Status),
			CreatedAt: entry.CreatedAt,
		})
	}
	return resp
}
