package get_partner_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/api/middleware"
	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/internal/service/bookings"
	"github.com/plindo/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidPartnerID  = "некорректный ID партнера"
	msgInvalidCategoryID = "некорректный ID категории"
	msgInvalidDateFormat = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPartnerNotFound   = "партнер не найден"
	msgAccessDenied      = "список бронирований доступен только менеджеру партнера"
	msgInvalidStatus     = "некорректный статус"
)

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

// Handle GET /api/v1/partners/{partnerId}/bookings
// Фильтры: categoryId, startDate, endDate, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	req := &models.GetPartnerBookingsRequest{
		UserID:    userID,
		PartnerID: partnerID,
	}

	query := r.URL.Query()

	if rawCategory := query.Get("categoryId"); rawCategory != "" {
		id, err := strconv.ParseInt(rawCategory, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidCategoryID)
			return
		}
		req.CategoryID = &id
	}

	if rawStart := query.Get("startDate"); rawStart != "" {
		startDate, err := time.Parse(domain.DateFormat, rawStart)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateFormat)
			return
		}
		req.StartDate = &startDate
	}

	if rawEnd := query.Get("endDate"); rawEnd != "" {
		endDate, err := time.Parse(domain.DateFormat, rawEnd)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateFormat)
			return
		}
		req.EndDate = &endDate
	}

	if rawStatus := query.Get("status"); rawStatus != "" {
		req.Status = &rawStatus
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetPartnerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrPartnerNotFound):
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /partners/%d/bookings - error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
