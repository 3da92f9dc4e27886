package get_available_windows

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/plindo/booking-service/internal/api/handlers"
	"github.com/plindo/booking-service/internal/domain"
	getAvailableWindows "github.com/plindo/booking-service/internal/usecase/get_available_windows"
)

const (
	msgInvalidPartnerID  = "некорректный ID партнера"
	msgInvalidCategoryID = "некорректный ID категории"
	msgMissingDate       = "параметр date обязателен"
	msgInvalidDateFormat = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPartnerNotFound   = "партнер не найден"
	msgInvalidDate       = "некорректная дата"
	msgDateTooFar        = "дата слишком далеко в будущем"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableWindowsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableWindowsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/partners/{partnerId}/available-windows?date=YYYY-MM-DD[&categoryId=]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		handlers.RespondValidationError(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
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

	result, err := h.useCase.Execute(r.Context(), &getAvailableWindows.Request{
		PartnerID:  partnerID,
		CategoryID: categoryID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableWindows.ErrPartnerNotFound):
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, getAvailableWindows.ErrInvalidDate):
			handlers.RespondValidationError(w, msgInvalidDate)

		case errors.Is(err, getAvailableWindows.ErrDateTooFarInFuture):
			handlers.RespondValidationError(w, msgDateTooFar)

		case errors.Is(err, getAvailableWindows.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidInput)

		default:
			h.logger.Error("GET /partners/%d/available-windows - error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
