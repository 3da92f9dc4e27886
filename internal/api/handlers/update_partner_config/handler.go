package update_partner_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/api/middleware"
	"github.com/plindo/booking-service/internal/service/config"
	"github.com/plindo/booking-service/internal/service/config/models"
)

const (
	msgInvalidPartnerID = "некорректный ID партнера"
	msgInvalidBody      = "некорректное тело запроса"
	msgPartnerNotFound  = "партнер не найден"
	msgAccessDenied     = "менять правила может только менеджер партнера"
	msgDuplicateConfig  = "правила для этого уровня уже существуют"
	msgInvalidConfig    = "некорректные значения правил бронирования"
)

// UpsertConfigRequest HTTP request model
type UpsertConfigRequest struct {
	CategoryID *int64 `json:"categoryId,omitempty"`

	SlotDurationMinutes     int `json:"slotDurationMinutes" validate:"required,min=5,max=480"`
	MaxConcurrentBookings   int `json:"maxConcurrentBookings" validate:"min=0,max=100"`
	AdvanceBookingDays      int `json:"advanceBookingDays" validate:"required,min=1,max=365"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes" validate:"min=0,max=1440"`
	CancellationWindowHours int `json:"cancellationWindowHours" validate:"min=0,max=168"`

	CustomerCommissionPct *float64 `json:"customerCommissionPct,omitempty" validate:"omitempty,gte=0,lte=100"`
	PartnerCommissionPct  *float64 `json:"partnerCommissionPct,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/partners/{partnerId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	var req UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /partners/%d/config - Invalid request body: %v", partnerID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := handlers.Validate.Struct(&req); err != nil {
		handlers.RespondValidationError(w, msgInvalidConfig)
		return
	}

	result, err := h.service.Upsert(r.Context(), &models.UpsertConfigRequest{
		UserID:                  userID,
		PartnerID:               partnerID,
		CategoryID:              req.CategoryID,
		SlotDurationMinutes:     req.SlotDurationMinutes,
		MaxConcurrentBookings:   req.MaxConcurrentBookings,
		AdvanceBookingDays:      req.AdvanceBookingDays,
		MinBookingNoticeMinutes: req.MinBookingNoticeMinutes,
		CancellationWindowHours: req.CancellationWindowHours,
		CustomerCommissionPct:   req.CustomerCommissionPct,
		PartnerCommissionPct:    req.PartnerCommissionPct,
	})
	if err != nil {
		switch {
		case errors.Is(err, config.ErrPartnerNotFound):
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, config.ErrDuplicateConfig):
			handlers.RespondConflict(w, msgDuplicateConfig)

		case errors.Is(err, config.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /partners/%d/config - error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /partners/%d/config - config upserted by user_id=%d", partnerID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
