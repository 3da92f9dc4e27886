package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Бизнес-коды ответа API
// HTTP статус передаётся рядом, код в конверте уточняет категорию ошибки
const (
	CodeSuccess          = 0
	CodeValidation       = 10001 // некорректные значения полей
	CodeConflict         = 10002 // конфликт или дубликат
	CodeInvalidState     = 10003 // операция недопустима в текущем состоянии
	CodeInvalidFormat    = 10004 // не удалось разобрать запрос
	CodeNotFound         = 10005 // сущность не найдена
	CodeAccessDenied     = 10006 // нет прав на операцию
	CodeCapacityExceeded = 10007 // в окне не осталось мест, клиенту стоит обновить доступность
	CodeInternal         = 10008 // внутренняя ошибка
)

const msgInternalError = "внутренняя ошибка сервера"

// Envelope единый конверт всех ответов API
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// DecodeJSON декодирует тело запроса в указанную структуру
func DecodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON отправляет успешный ответ с данными в конверте
func RespondJSON(w http.ResponseWriter, httpStatus int, data interface{}) {
	writeEnvelope(w, httpStatus, Envelope{Status: CodeSuccess, Data: data})
}

// RespondNoContent отправляет успешный ответ без данных
func RespondNoContent(w http.ResponseWriter) {
	writeEnvelope(w, http.StatusOK, Envelope{Status: CodeSuccess})
}

// RespondValidationError отправляет 400 с кодом ошибки валидации
func RespondValidationError(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusBadRequest, Envelope{Status: CodeValidation, Message: message})
}

// RespondBadRequest отправляет 400 с кодом ошибки формата
func RespondBadRequest(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusBadRequest, Envelope{Status: CodeInvalidFormat, Message: message})
}

// RespondConflict отправляет 409 с кодом конфликта
func RespondConflict(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusConflict, Envelope{Status: CodeConflict, Message: message})
}

// RespondInvalidState отправляет 409 с кодом недопустимого состояния
func RespondInvalidState(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusConflict, Envelope{Status: CodeInvalidState, Message: message})
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusNotFound, Envelope{Status: CodeNotFound, Message: message})
}

// RespondForbidden отправляет 403
func RespondForbidden(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusForbidden, Envelope{Status: CodeAccessDenied, Message: message})
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusUnauthorized, Envelope{Status: CodeAccessDenied, Message: message})
}

// RespondCapacityExceeded отправляет 409 с отдельным кодом переполнения окна
func RespondCapacityExceeded(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusConflict, Envelope{Status: CodeCapacityExceeded, Message: message})
}

// RespondInternalError отправляет 500 без деталей ошибки
func RespondInternalError(w http.ResponseWriter) {
	writeEnvelope(w, http.StatusInternalServerError, Envelope{Status: CodeInternal, Message: msgInternalError})
}

func writeEnvelope(w http.ResponseWriter, httpStatus int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	// Ошибку записи уже некому возвращать
	_ = json.NewEncoder(w).Encode(env)
}
