package ipc

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"neptis/internal/errs"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// lastRecord decodes the final JSON log line.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &rec))
	return rec
}

func TestLoggingMiddleware_RecordsRoute(t *testing.T) {
	buf := captureLogs(t)
	router, sup := setupTestRouter(t)
	sup.EXPECT().CancelJob(mock.Anything, "job-7").Return(nil).Once()

	rec := serve(router, http.MethodPost, "/api/v1/jobs/job-7/cancel")
	require.Equal(t, http.StatusOK, rec.Code)

	entry := lastRecord(t, buf)
	assert.Equal(t, "IPC request", entry["msg"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/api/v1/jobs/job-7/cancel", entry["path"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
}

func TestLoggingMiddleware_CapturesErrorStatus(t *testing.T) {
	buf := captureLogs(t)
	router, sup := setupTestRouter(t)
	sup.EXPECT().CancelJob(mock.Anything, "stuck").
		Return(errs.Errorf(errs.Timeout, "supervisor.cancel", "job stuck did not stop")).Once()

	rec := serve(router, http.MethodPost, "/api/v1/jobs/stuck/cancel")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.EqualValues(t, http.StatusGatewayTimeout, lastRecord(t, buf)["status"])
}

func TestJsonContentTypeMiddleware_OnErrors(t *testing.T) {
	router, sup := setupTestRouter(t)
	sup.EXPECT().GetJob(mock.Anything, "missing").
		Return(nil, errs.Errorf(errs.NotFound, "supervisor.get_job", "job missing not found")).Once()

	rec := serve(router, http.MethodGet, "/api/v1/jobs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, _ = rw.Write([]byte(`{"success":true}`))

	assert.Equal(t, http.StatusOK, rw.statusCode)
	assert.Equal(t, `{"success":true}`, rec.Body.String())
}
