package create_slot_booking

import (
	"errors"
	"net/http"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/api/middleware"
	createSlotBooking "github.com/plindo/booking-service/internal/usecase/create_slot_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput        = "некорректные данные бронирования"
	msgPartnerNotFound     = "партнер не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgPartnerInactive     = "партнер отключён от платформы"
	msgFulfillment         = "услуга недоступна в выбранном способе исполнения"
	msgPartnerClosed       = "партнер не работает в выбранную дату"
	msgOutsideWorkingHours = "окно не попадает в рабочие часы партнера"
	msgInvalidDate         = "некорректная дата бронирования"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook       = "слишком поздно для бронирования этого окна"
	msgCapacityExceeded    = "в выбранном окне не осталось свободных мест"
)

type Handler struct {
	useCase CreateSlotBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateSlotBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidRequestBody)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSlotBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: customer_id=%d, partner_id=%d", customerID, req.PartnerID)
			handlers.RespondCapacityExceeded(w, msgCapacityExceeded)

		case errors.Is(err, createSlotBooking.ErrPartnerNotFound):
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, createSlotBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createSlotBooking.ErrPartnerInactive):
			handlers.RespondInvalidState(w, msgPartnerInactive)

		case errors.Is(err, createSlotBooking.ErrFulfillmentNotSupported):
			handlers.RespondValidationError(w, msgFulfillment)

		case errors.Is(err, createSlotBooking.ErrPartnerClosed):
			handlers.RespondValidationError(w, msgPartnerClosed)

		case errors.Is(err, createSlotBooking.ErrOutsideWorkingHours):
			handlers.RespondValidationError(w, msgOutsideWorkingHours)

		case errors.Is(err, createSlotBooking.ErrInvalidDate):
			handlers.RespondValidationError(w, msgInvalidDate)

		case errors.Is(err, createSlotBooking.ErrDateTooFarInFuture):
			handlers.RespondValidationError(w, msgDateTooFar)

		case errors.Is(err, createSlotBooking.ErrTooLateToBook):
			handlers.RespondValidationError(w, msgTooLateToBook)

		case errors.Is(err, createSlotBooking.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, partner_id=%d, error=%v",
				customerID, req.PartnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, number=%s, customer_id=%d",
		result.ID, result.BookingNumber, customerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
