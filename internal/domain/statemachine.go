package domain

import "errors"

var (
	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrWrongFulfillment возвращается, когда статус не применим к типу выполнения
	// (например, "picked" для onsite бронирования)
	ErrWrongFulfillment = errors.New("domain: status not applicable to fulfillment type")
)

// transitions допустимые переходы статусов, общие для обоих типов выполнения
// Отмена из любого нетерминального статуса; reschedule обрабатывается отдельно
var transitions = map[BookingStatus][]BookingStatus{
	StatusBooked:         {StatusInProgress, StatusCancelled},
	StatusInProgress:     {StatusCompleted, StatusPicked, StatusCancelled},
	StatusPicked:         {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusCompleted:      {},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// deliveryOnlyStatuses статусы, существующие только в pick-up/delivery цепочке
var deliveryOnlyStatuses = map[BookingStatus]bool{
	StatusPicked:         true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
}

// ValidStatus returns true if s is a persistable booking status
func ValidStatus(s BookingStatus) bool {
	if s == StatusRescheduled {
		return false
	}
	_, ok := transitions[s]
	return ok
}

// CheckTransition validates the transition from -> to for the given fulfillment
// type. Out-of-order jumps (booked -> delivered) and cross-variant statuses
// (completed on a delivery booking) are rejected.
func CheckTransition(from, to BookingStatus, fulfillment FulfillmentType) error {
	if !ValidStatus(to) {
		return ErrInvalidTransition
	}

	if fulfillment == FulfillmentOnsite && deliveryOnlyStatuses[to] {
		return ErrWrongFulfillment
	}
	if fulfillment == FulfillmentDelivery && to == StatusCompleted {
		return ErrWrongFulfillment
	}

	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return ErrInvalidTransition
}
