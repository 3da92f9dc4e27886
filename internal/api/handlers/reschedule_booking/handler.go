package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/api/middleware"
	rescheduleBooking "github.com/plindo/booking-service/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgBookingNotFound     = "бронирование не найдено"
	msgAccessDenied        = "нет прав на перенос бронирования"
	msgCannotReschedule    = "перенести можно только бронирование в статусе booked"
	msgPartnerClosed       = "партнер не работает в выбранную дату"
	msgOutsideWorkingHours = "окно не попадает в рабочие часы партнера"
	msgInvalidDate         = "некорректная дата переноса"
	msgDateTooFar          = "дата переноса слишком далеко в будущем"
	msgTooLateToBook       = "слишком поздно для переноса на это окно"
	msgCapacityExceeded    = "в новом окне не осталось свободных мест"
	msgInvalidInput        = "некорректные данные запроса"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%d/reschedule - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID)
	if err != nil {
		h.logger.Warn("POST /bookings/%d/reschedule - Failed to parse request: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings/%d/reschedule - New window full", bookingID)
			handlers.RespondCapacityExceeded(w, msgCapacityExceeded)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			handlers.RespondInvalidState(w, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrPartnerClosed):
			handlers.RespondValidationError(w, msgPartnerClosed)

		case errors.Is(err, rescheduleBooking.ErrOutsideWorkingHours):
			handlers.RespondValidationError(w, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			handlers.RespondValidationError(w, msgInvalidDate)

		case errors.Is(err, rescheduleBooking.ErrDateTooFarInFuture):
			handlers.RespondValidationError(w, msgDateTooFar)

		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			handlers.RespondValidationError(w, msgTooLateToBook)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/%d/reschedule - error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/%d/reschedule - moved to %s %s by user_id=%d",
		bookingID, response.BookingDate, response.StartTime, userID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
