package resolve_dispute

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
	msgInvalidDisputeID = "некорректный ID спора"
	msgInvalidBody      = "некорректное тело запроса"
	msgDisputeNotFound  = "спор не найден"
	msgAccessDenied     = "закрыть спор может только администратор"
	msgDisputeClosed    = "спор уже закрыт"
	msgInvalidNote      = "некорректный текст решения"
)

// ResolveDisputeRequest HTTP request model
type ResolveDisputeRequest struct {
	ResolutionNote string `json:"resolutionNote"`
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

// Handle POST /api/v1/disputes/{disputeId}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	disputeID, err := strconv.ParseInt(mux.Vars(r)["disputeId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDisputeID)
		return
	}

	var req ResolveDisputeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /disputes/%d/resolve - Invalid request body: %v", disputeID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Resolve(r.Context(), disputeID, &models.ResolveDisputeRequest{
		UserID:         userID,
		ResolutionNote: req.ResolutionNote,
	})
	if err != nil {
		switch {
		case errors.Is(err, disputes.ErrDisputeNotFound):
			handlers.RespondNotFound(w, msgDisputeNotFound)

		case errors.Is(err, disputes.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, disputes.ErrDisputeClosed):
			handlers.RespondInvalidState(w, msgDisputeClosed)

		case errors.Is(err, disputes.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidNote)

		default:
			h.logger.Error("POST /disputes/%d/resolve - error=%v", disputeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /disputes/%d/resolve - resolved by admin user_id=%d", disputeID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
