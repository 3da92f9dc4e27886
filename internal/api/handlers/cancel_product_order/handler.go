package cancel_product_order

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
	msgInvalidOrderID = "некорректный ID заказа"
	msgOrderNotFound  = "заказ не найден"
	msgAccessDenied   = "нет прав на отмену заказа"
	msgCannotCancel   = "заказ уже нельзя отменить"
)

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

// Handle POST /api/v1/product-orders/{orderId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	err = h.service.Cancel(r.Context(), orderID, &models.CancelOrderRequest{UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, orders.ErrCannotCancel):
			handlers.RespondInvalidState(w, msgCannotCancel)

		default:
			h.logger.Error("POST /product-orders/%d/cancel - error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /product-orders/%d/cancel - cancelled by user_id=%d", orderID, userID)
	handlers.RespondNoContent(w)
}
