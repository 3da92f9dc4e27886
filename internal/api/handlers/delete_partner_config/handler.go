package delete_partner_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/api/middleware"
	"github.com/plindo/booking-service/internal/service/config"
)

const (
	msgInvalidPartnerID = "некорректный ID партнера"
	msgInvalidConfigID  = "некорректный ID правил"
	msgConfigNotFound   = "правила не найдены"
	msgPartnerNotFound  = "партнер не найден"
	msgAccessDenied     = "удалять правила может только менеджер партнера"
)

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

// Handle DELETE /api/v1/partners/{partnerId}/config/{configId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	vars := mux.Vars(r)
	partnerID, err := strconv.ParseInt(vars["partnerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	configID, err := strconv.ParseInt(vars["configId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	err = h.service.Delete(r.Context(), partnerID, configID, userID)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, config.ErrPartnerNotFound):
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /partners/%d/config/%d - error=%v", partnerID, configID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /partners/%d/config/%d - deleted by user_id=%d", partnerID, configID, userID)
	handlers.RespondNoContent(w)
}
