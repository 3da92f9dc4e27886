package models

import (
	"time"

	"github.com/plindo/booking-service/internal/domain"
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление правил бронирования
// CategoryID = nil задаёт партнерские правила для всех категорий
type UpsertConfigRequest struct {
	UserID    int64  `json:"userId"`
	PartnerID int64  `json:"partnerId"`
	CategoryID *int64 `json:"categoryId,omitempty"`

	SlotDurationMinutes     int `json:"slotDurationMinutes" validate:"required,min=5,max=480"`
	MaxConcurrentBookings   int `json:"maxConcurrentBookings" validate:"min=0,max=100"`
	AdvanceBookingDays      int `json:"advanceBookingDays" validate:"min=0,max=365"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes" validate:"min=0,max=10080"`
	CancellationWindowHours int `json:"cancellationWindowHours" validate:"min=0,max=336"`

	CustomerCommissionPct *float64 `json:"customerCommissionPct,omitempty" validate:"omitempty,min=0,max=100"`
	PartnerCommissionPct  *float64 `json:"partnerCommissionPct,omitempty" validate:"omitempty,min=0,max=100"`
}

// ToDomainConfig конвертирует request в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() *domain.PartnerBookingConfig {
	return &domain.PartnerBookingConfig{
		PartnerID:               r.PartnerID,
		CategoryID:              r.CategoryID,
		SlotDurationMinutes:     r.SlotDurationMinutes,
		MaxConcurrentBookings:   r.MaxConcurrentBookings,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		CancellationWindowHours: r.CancellationWindowHours,
		CustomerCommissionPct:   r.CustomerCommissionPct,
		PartnerCommissionPct:    r.PartnerCommissionPct,
	}
}

// Response модели

// ConfigResponse ответ с правилами бронирования
type ConfigResponse struct {
	ID                      int64    `json:"id"`
	PartnerID               int64    `json:"partnerId"`
	CategoryID              *int64   `json:"categoryId,omitempty"`
	SlotDurationMinutes     int      `json:"slotDurationMinutes"`
	MaxConcurrentBookings   int      `json:"maxConcurrentBookings"`
	AdvanceBookingDays      int      `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int      `json:"minBookingNoticeMinutes"`
	CancellationWindowHours int      `json:"cancellationWindowHours"`
	CustomerCommissionPct   *float64 `json:"customerCommissionPct,omitempty"`
	PartnerCommissionPct    *float64 `json:"partnerCommissionPct,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком правил партнера
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.PartnerBookingConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                      c.ID,
		PartnerID:               c.PartnerID,
		CategoryID:              c.CategoryID,
		SlotDurationMinutes:     c.SlotDurationMinutes,
		MaxConcurrentBookings:   c.MaxConcurrentBookings,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		CancellationWindowHours: c.CancellationWindowHours,
		CustomerCommissionPct:   c.CustomerCommissionPct,
		PartnerCommissionPct:    c.PartnerCommissionPct,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.PartnerBookingConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, cfg := range configs {
		if cfgResp := FromDomainConfig(cfg); cfgResp != nil {
			resp.Configs = append(resp.Configs, *cfgResp)
		}
	}

	return resp
}
