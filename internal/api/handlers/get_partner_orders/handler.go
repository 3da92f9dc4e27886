package get_partner_orders

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
	msgInvalidPartnerID = "некорректный ID партнера"
	msgPartnerNotFound  = "партнер не найден"
	msgAccessDenied     = "список заказов доступен только менеджеру партнера"
	msgInvalidStatus    = "некорректный статус заказа"
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

// Handle GET /api/v1/partners/{partnerId}/product-orders[?status=]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	var status *string
	if rawStatus := r.URL.Query().Get("status"); rawStatus != "" {
		status = &rawStatus
	}

	result, err := h.service.GetPartnerOrders(r.Context(), &models.GetPartnerOrdersRequest{
		UserID:    userID,
		PartnerID: partnerID,
		Status:    status,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrPartnerNotFound):
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, orders.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /partners/%d/product-orders - error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
