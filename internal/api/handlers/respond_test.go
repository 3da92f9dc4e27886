package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRespondJSON_WrapsDataInEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]int64{"id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec)
	assert.Equal(t, CodeSuccess, env.Status)
	assert.Empty(t, env.Message)
	require.NotNil(t, env.Data)
}

func TestRespondNoContent_OmitsDataAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNoContent(rec)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": 0}`, rec.Body.String())
}

func TestErrorResponders_CarryCodesAndStatuses(t *testing.T) {
	tests := []struct {
		name       string
		respond    func(w http.ResponseWriter)
		httpStatus int
		code       int
	}{
		{"validation", func(w http.ResponseWriter) { RespondValidationError(w, "m") }, http.StatusBadRequest, CodeValidation},
		{"bad request", func(w http.ResponseWriter) { RespondBadRequest(w, "m") }, http.StatusBadRequest, CodeInvalidFormat},
		{"conflict", func(w http.ResponseWriter) { RespondConflict(w, "m") }, http.StatusConflict, CodeConflict},
		{"invalid state", func(w http.ResponseWriter) { RespondInvalidState(w, "m") }, http.StatusConflict, CodeInvalidState},
		{"not found", func(w http.ResponseWriter) { RespondNotFound(w, "m") }, http.StatusNotFound, CodeNotFound},
		{"forbidden", func(w http.ResponseWriter) { RespondForbidden(w, "m") }, http.StatusForbidden, CodeAccessDenied},
		{"unauthorized", func(w http.ResponseWriter) { RespondUnauthorized(w, "m") }, http.StatusUnauthorized, CodeAccessDenied},
		{"capacity", func(w http.ResponseWriter) { RespondCapacityExceeded(w, "m") }, http.StatusConflict, CodeCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.respond(rec)

			assert.Equal(t, tt.httpStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.code, env.Status)
			assert.Equal(t, "m", env.Message)
		})
	}
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, CodeInternal, env.Status)
	assert.Equal(t, msgInternalError, env.Message)
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	var dest struct{}
	assert.Error(t, DecodeJSON(req, &dest))
}
