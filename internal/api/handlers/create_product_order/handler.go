package create_product_order

import (
	"errors"
	"net/http"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/api/middleware"
	"github.com/plindo/booking-service/internal/service/orders"
	"github.com/plindo/booking-service/internal/service/orders/models"
)

const (
	msgInvalidBody     = "некорректное тело запроса"
	msgPartnerNotFound = "партнер не найден"
	msgInvalidOrder    = "некорректные позиции заказа"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	PartnerID int64                     `json:"partnerId" validate:"required,gt=0"`
	Items     []models.OrderItemPayload `json:"items" validate:"required,min=1"`
}

type Handler struct {
	service OrdersService
	logger  Logger
}

func NewHandler(service OrdersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/product-orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.UserIDFromContext(r.Context())

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /product-orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := handlers.Validate.Struct(&req); err != nil {
		handlers.RespondValidationError(w, msgInvalidOrder)
		return
	}

	result, err := h.service.Create(r.Context(), &models.CreateOrderRequest{
		CustomerID: customerID,
		PartnerID:  req.PartnerID,
		Items:      req.Items,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrPartnerNotFound):
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, orders.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidOrder)

		default:
			h.logger.Error("POST /product-orders - customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /product-orders - order created: order_id=%d, number=%s, customer_id=%d",
		result.ID, result.OrderNumber, customerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
