package domain

import "time"

// DisputeStatus status of a customer dispute
type DisputeStatus string

const (
	DisputePending  DisputeStatus = "pending"
	DisputeResolved DisputeStatus = "resolved"
)

// Dispute a customer complaint against a served booking
// Opened by the customer, optionally answered by the partner,
// closed by a platform administrator
type Dispute struct {
	ID         int64
	BookingID  int64
	CustomerID int64
	Reason     string
	Evidence   *string

	PartnerResponse *string
	ResolutionNote  *string
	ResolvedBy      *int64

	Status     DisputeStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// IsPending returns true while the dispute awaits resolution
func (d *Dispute) IsPending() bool {
	return d.Status == DisputePending
}
