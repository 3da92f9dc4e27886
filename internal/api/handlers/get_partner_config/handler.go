package get_partner_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plindo/booking-service/internal/api/handlers"
)

const (
	msgInvalidPartnerID  = "некорректный ID партнера"
	msgInvalidCategoryID = "некорректный ID категории"
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

// Handle GET /api/v1/partners/{partnerId}/config[?categoryId=]
// Возвращает действующие правила с учетом иерархии: категория, партнер, дефолты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	var categoryID *int64
	if rawCategory := r.URL.Query().Get("categoryId"); rawCategory != "" {
		id, err := strconv.ParseInt(rawCategory, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidCategoryID)
			return
		}
		categoryID = &id
	}

	result, err := h.service.GetEffective(r.Context(), partnerID, categoryID)
	if err != nil {
		h.logger.Error("GET /partners/%d/config - error=%v", partnerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
