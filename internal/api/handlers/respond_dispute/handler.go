package respond_dispute

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
	msgAccessDenied     = "ответить на спор может только менеджер партнера"
	msgDisputeClosed    = "спор уже закрыт"
	msgInvalidResponse  = "некорректный текст ответа"
)

// RespondDisputeRequest HTTP request model
type RespondDisputeRequest struct {
	Response string `json:"response"`
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

// Handle POST /api/v1/disputes/{disputeId}/respond
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	disputeID, err := strconv.ParseInt(mux.Vars(r)["disputeId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDisputeID)
		return
	}

	var req RespondDisputeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /disputes/%d/respond - Invalid request body: %v", disputeID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Respond(r.Context(), disputeID, &models.RespondDisputeRequest{
		UserID:   userID,
		Response: req.Response,
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
			handlers.RespondValidationError(w, msgInvalidResponse)

		default:
			h.logger.Error("POST /disputes/%d/respond - error=%v", disputeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /disputes/%d/respond - partner responded, user_id=%d", disputeID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
