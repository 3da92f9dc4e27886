package domain

import (
	"errors"
	"math"
	"time"
)

// OrderStatus status of a product order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderReady     OrderStatus = "ready"
	OrderCollected OrderStatus = "collected"
	OrderCancelled OrderStatus = "cancelled"
)

// ErrInvalidOrderTransition возвращается при недопустимом переходе статуса заказа
var ErrInvalidOrderTransition = errors.New("domain: invalid order status transition")

// orderTransitions допустимые переходы: pending -> ready -> collected,
// отмена из любого нетерминального статуса
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderReady, OrderCancelled},
	OrderReady:     {OrderCollected, OrderCancelled},
	OrderCollected: {},
	OrderCancelled: {},
}

// ValidOrderStatus returns true if s is a known order status
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CheckOrderTransition validates the transition from -> to
func CheckOrderTransition(from, to OrderStatus) error {
	if !ValidOrderStatus(to) {
		return ErrInvalidOrderTransition
	}
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return ErrInvalidOrderTransition
}

// OrderItem одна позиция заказа с зафиксированной ценой
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Name      string
	Price     float64
	Quantity  int
}

// ProductOrder заказ товаров у партнера, не привязан к расписанию
type ProductOrder struct {
	ID          int64
	OrderNumber string
	PartnerID   int64
	CustomerID  int64
	Items       []OrderItem
	TotalAmount float64
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTerminal returns true if no further transitions are possible
func (o *ProductOrder) IsTerminal() bool {
	return o.Status == OrderCollected || o.Status == OrderCancelled
}

// ComputeTotal вычисляет сумму заказа как Σ price × quantity по позициям
// Округление до 2 знаков выполняется один раз на итоговой сумме
func ComputeTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}
