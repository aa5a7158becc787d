package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskman-io/taskman/internal/api/response"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	response.Success(w, http.StatusOK, map[string]string{"name": "Eng"}, "req-123")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := decode(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Eng", data["name"])
	assert.Nil(t, body["error"])

	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, "req-123", meta["requestId"])
	assert.NotEmpty(t, meta["timestamp"])
}

func TestErr(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", "req-123")

	assert.Equal(t, http.StatusNotFound, w.Code)

	body := decode(t, w)
	assert.Nil(t, body["data"])
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errObj["code"])
	assert.Equal(t, "Team not found", errObj["message"])
	_, hasDetails := errObj["details"]
	assert.False(t, hasDetails)
}

func TestErrWithDetails(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	details := []string{"Passwords must have at least one digit ('0'-'9')."}
	response.ErrWithDetails(w, http.StatusBadRequest, "REGISTRATION_FAILED", "Registration was rejected", details, "req-123")

	body := decode(t, w)
	errObj := body["error"].(map[string]interface{})
	got := errObj["details"].([]interface{})
	require.Len(t, got, 1)
	assert.Equal(t, details[0], got[0])
}

func TestNewMeta_GeneratesRequestID(t *testing.T) {
	t.Parallel()

	meta := response.NewMeta("")
	assert.NotEmpty(t, meta.RequestID)
	assert.NotEmpty(t, meta.Timestamp)
}

func TestNoContent(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	response.NoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
