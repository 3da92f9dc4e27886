package update_weekly_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/api/middleware"
	"github.com/plindo/booking-service/internal/service/availability"
	"github.com/plindo/booking-service/internal/service/availability/models"
)

const (
	msgInvalidPartnerID = "некорректный ID партнера"
	msgInvalidBody      = "некорректное тело запроса"
	msgPartnerNotFound  = "партнер не найден"
	msgAccessDenied     = "менять расписание может только менеджер партнера"
	msgInvalidSchedule  = "некорректное расписание: блоки должны быть валидными и не пересекаться"
)

// UpdateWeeklyRequest HTTP request model
type UpdateWeeklyRequest struct {
	Days map[string]models.DayPayload `json:"days" validate:"required,min=1,max=7"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/partners/{partnerId}/availability/weekly
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	var req UpdateWeeklyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /partners/%d/availability/weekly - Invalid request body: %v", partnerID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := handlers.Validate.Struct(&req); err != nil {
		handlers.RespondValidationError(w, msgInvalidSchedule)
		return
	}

	result, err := h.service.UpdateWeekly(r.Context(), &models.UpdateWeeklyRequest{
		UserID:    userID,
		PartnerID: partnerID,
		Days:      req.Days,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrPartnerNotFound):
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, availability.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /partners/%d/availability/weekly - error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /partners/%d/availability/weekly - schedule replaced by user_id=%d", partnerID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
