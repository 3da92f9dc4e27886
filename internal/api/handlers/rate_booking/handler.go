package rate_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/api/middleware"
	"github.com/plindo/booking-service/internal/service/bookings"
	"github.com/plindo/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidBody      = "некорректное тело запроса"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "оценить бронирование может только его владелец"
	msgCannotRate       = "оценить можно только выполненное бронирование, и только один раз"
	msgInvalidRating    = "оценка должна быть от 1 до 5"
)

// RateBookingRequest HTTP request model
type RateBookingRequest struct {
	Rating int `json:"rating"`
}

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/rate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%d/rate - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	err = h.service.Rate(r.Context(), bookingID, &models.RateBookingRequest{
		UserID: userID,
		Rating: req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrCannotRate):
			handlers.RespondInvalidState(w, msgCannotRate)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidRating)

		default:
			h.logger.Error("POST /bookings/%d/rate - error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/rate - rated %d by user_id=%d", bookingID, req.Rating, userID)
	handlers.RespondNoContent(w)
}
