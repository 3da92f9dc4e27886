package models

import (
	"time"

	"github.com/plindo/booking-service/internal/domain"
)

// Request модели

// OpenDisputeRequest запрос на открытие спора по бронированию
type OpenDisputeRequest struct {
	UserID    int64   `json:"userId"`
	BookingID int64   `json:"bookingId"`
	Reason    string  `json:"reason" validate:"required,max=2000"`
	Evidence  *string `json:"evidence,omitempty" validate:"omitempty,max=2000"`
}

// RespondDisputeRequest запрос партнера на ответ по спору
type RespondDisputeRequest struct {
	UserID   int64  `json:"userId"`
	Response string `json:"response" validate:"required,max=2000"`
}

// ResolveDisputeRequest запрос администратора на закрытие спора
type ResolveDisputeRequest struct {
	UserID         int64  `json:"userId"`
	ResolutionNote string `json:"resolutionNote" validate:"required,max=2000"`
}

// Response модели

// DisputeResponse ответ с данными спора
type DisputeResponse struct {
	ID         int64   `json:"id"`
	BookingID  int64   `json:"bookingId"`
	CustomerID int64   `json:"customerId"`
	Reason     string  `json:"reason"`
	Evidence   *string `json:"evidence,omitempty"`

	PartnerResponse *string `json:"partnerResponse,omitempty"`
	ResolutionNote  *string `json:"resolutionNote,omitempty"`
	ResolvedBy      *int64  `json:"resolvedBy,omitempty"`

	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// FromDomainDispute конвертирует domain модель в DTO
func FromDomainDispute(d *domain.Dispute) *DisputeResponse {
	if d == nil {
		return nil
	}

	return &DisputeResponse{
		ID:              d.ID,
		BookingID:       d.BookingID,
		CustomerID:      d.CustomerID,
		Reason:          d.Reason,
		Evidence:        d.Evidence,
		PartnerResponse: d.PartnerResponse,
		ResolutionNote:  d.ResolutionNote,
		ResolvedBy:      d.ResolvedBy,
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		ResolvedAt:      d.ResolvedAt,
	}
}
