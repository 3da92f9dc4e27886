package models

import (
	"errors"
	"time"

	"github.com/plindo/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе заказа
	ErrInvalidStatus = errors.New("invalid order status")
)

// Request модели

// OrderItemPayload одна позиция создаваемого заказа
type OrderItemPayload struct {
	ProductID int64   `json:"productId" validate:"required,min=1"`
	Name      string  `json:"name" validate:"required,max=200"`
	Price     float64 `json:"price" validate:"min=0"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest запрос на создание заказа товаров
type CreateOrderRequest struct {
	CustomerID int64              `json:"customerId"`
	PartnerID  int64              `json:"partnerId" validate:"required,min=1"`
	Items      []OrderItemPayload `json:"items" validate:"required,min=1,dive"`
}

// ToDomainItems конвертирует позиции запроса в domain модели
func (r *CreateOrderRequest) ToDomainItems() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return items
}

// UpdateOrderStatusRequest запрос на обновление статуса заказа
type UpdateOrderStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// CancelOrderRequest запрос на отмену заказа
type CancelOrderRequest struct {
	UserID int64 `json:"userId"`
}

// GetPartnerOrdersRequest запрос на получение заказов партнера
type GetPartnerOrdersRequest struct {
	UserID    int64   `json:"userId"`
	PartnerID int64   `json:"partnerId"`
	Status    *string `json:"status,omitempty"`
}

// Response модели

// OrderItemResponse позиция заказа в ответе
type OrderItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID          int64               `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	PartnerID   int64               `json:"partnerId"`
	CustomerID  int64               `json:"customerId"`
	Items       []OrderItemResponse `json:"items"`
	TotalAmount float64             `json:"totalAmount"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.ProductOrder) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		PartnerID:   o.PartnerID,
		CustomerID:  o.CustomerID,
		Items:       make([]OrderItemResponse, 0, len(o.Items)),
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}

	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return resp
}

// FromDomainOrderList конвертирует список domain моделей в DTO
func FromDomainOrderList(orders []*domain.ProductOrder) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
	}

	for _, o := range orders {
		if orderResp := FromDomainOrder(o); orderResp != nil {
			resp.Orders = append(resp.Orders, *orderResp)
		}
	}

	return resp
}

// ToDomainOrderStatus конвертирует строку в domain.OrderStatus с валидацией
func ToDomainOrderStatus(status string) (domain.OrderStatus, error) {
	s := domain.OrderStatus(status)
	if !domain.ValidOrderStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
