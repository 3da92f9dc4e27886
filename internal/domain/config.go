package domain

import "time"

// PartnerBookingConfig represents the booking rules for a partner
// Supports two-level hierarchy:
// 1. Category-specific (partner_id, category_id)
// 2. Partner-wide (partner_id, NULL)
type PartnerBookingConfig struct {
	ID                      int64
	PartnerID               int64
	CategoryID              *int64 // NULL = rules for all service categories
	SlotDurationMinutes     int
	MaxConcurrentBookings   int // bay count: how many bookings may overlap one window
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CancellationWindowHours int // cancelling inside this window flags a fee

	// Commission overrides; nil = platform defaults apply
	CustomerCommissionPct *float64
	PartnerCommissionPct  *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPartnerWide returns true if this configuration applies to all categories
func (c *PartnerBookingConfig) IsPartnerWide() bool {
	return c.CategoryID == nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *PartnerBookingConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// AcceptsBookings returns true if the configured capacity allows any booking at all
func (c *PartnerBookingConfig) AcceptsBookings() bool {
	return c.MaxConcurrentBookings > 0
}

// DefaultBookingConfig возвращает конфигурацию с дефолтными правилами
// Используется, когда партнер не настроил собственные правила
func DefaultBookingConfig() *PartnerBookingConfig {
	return &PartnerBookingConfig{
		SlotDurationMinutes:     DefaultSlotDurationMinutes,
		MaxConcurrentBookings:   DefaultMaxConcurrentBookings,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		CancellationWindowHours: DefaultCancellationWindowHours,
	}
}
