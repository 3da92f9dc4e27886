package open_dispute

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/api/middleware"
	"github.com/plindo/booking-service/internal/service/disputes"
	"github.com/plindo/booking-service/internal/service/disputes/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidBody        = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "открыть спор может только владелец бронирования"
	msgBookingNotServed   = "спор можно открыть только по выполненному бронированию"
	msgDisputeAlreadyOpen = "по этому бронированию уже открыт спор"
	msgInvalidDispute     = "некорректные данные спора"
)

// OpenDisputeRequest HTTP request model
type OpenDisputeRequest struct {
	Reason   string  `json:"reason"`
	Evidence *string `json:"evidence,omitempty"`
}

type Handler struct {
	service DisputesService
	logger  Logger
}

func NewHandler(service DisputesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/dispute
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req OpenDisputeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%d/dispute - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Open(r.Context(), &models.OpenDisputeRequest{
		UserID:    userID,
		BookingID: bookingID,
		Reason:    req.Reason,
		Evidence:  req.Evidence,
	})
	if err != nil {
		switch {
		case errors.Is(err, disputes.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, disputes.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, disputes.ErrBookingNotServed):
			handlers.RespondInvalidState(w, msgBookingNotServed)

		case errors.Is(err, disputes.ErrDisputeAlreadyOpen):
			handlers.RespondConflict(w, msgDisputeAlreadyOpen)

		case errors.Is(err, disputes.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidDispute)

		default:
			h.logger.Error("POST /bookings/%d/dispute - error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/dispute - dispute opened: dispute_id=%d, user_id=%d",
		bookingID, result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
