package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
)

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New(config.Log{Level: "loud", Format: "text"})
	assert.Error(t, err)
	_, err = New(config.Log{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestRequestsLogsStatus(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithOutput(config.Log{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	h := middleware.RequestID(Requests(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tasks/9", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/api/tasks/9", line["path"])
	assert.EqualValues(t, 404, line["status"])
	assert.Equal(t, "warning", line["level"])
	assert.NotEmpty(t, line["request_id"])
}
