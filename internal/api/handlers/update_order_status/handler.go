package update_order_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/api/middleware"
	"github.com/plindo/booking-service/internal/service/orders"
	"github.com/plindo/booking-service/internal/service/orders/models"
)

const (
	msgInvalidOrderID    = "некорректный ID заказа"
	msgInvalidBody       = "некорректное тело запроса"
	msgOrderNotFound     = "заказ не найден"
	msgAccessDenied      = "менять статус заказа может только менеджер партнера"
	msgInvalidTransition = "недопустимый переход статуса заказа"
	msgInvalidStatus     = "некорректный статус заказа"
)

// UpdateOrderStatusRequest HTTP request model
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
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

// Handle PATCH /api/v1/product-orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req UpdateOrderStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /product-orders/%d/status - Invalid request body: %v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	err = h.service.UpdateStatus(r.Context(), orderID, &models.UpdateOrderStatusRequest{
		UserID: userID,
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, orders.ErrInvalidTransition):
			handlers.RespondInvalidState(w, msgInvalidTransition)

		case errors.Is(err, orders.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /product-orders/%d/status - error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /product-orders/%d/status - status updated to %s by user_id=%d",
		orderID, req.Status, userID)
	handlers.RespondNoContent(w)
}
