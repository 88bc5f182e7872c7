package ipc

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"neptis/internal/errs"
	"neptis/internal/mocks"
	"neptis/internal/models"
	"neptis/internal/testutil"
)

func setupTestRouter(t *testing.T) (*mux.Router, *mocks.MockSupervisor) {
	sup := mocks.NewMockSupervisor(t)
	router := mux.NewRouter()
	NewHandlers(sup, "test").RegisterRoutes(router)
	return router, sup
}

func serve(router http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var response APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	return response
}

func TestWriteSuccess(t *testing.T) {
	h := NewHandlers(nil, "test")
	w := httptest.NewRecorder()

	h.writeSuccess(w, 200, map[string]string{"key": "value"}, "Operation successful")

	assert.Equal(t, 200, w.Code)
	response := decode(t, w)
	assert.True(t, response.Success)
	assert.Equal(t, "Operation successful", response.Message)
	assert.JSONEq(t, `{"key":"value"}`, string(response.Data))
}

func TestWriteSuccess_NilData(t *testing.T) {
	h := NewHandlers(nil, "test")
	w := httptest.NewRecorder()

	h.writeSuccess(w, 200, nil, "")

	response := decode(t, w)
	assert.True(t, response.Success)
	assert.Empty(t, response.Data)
}

func TestWriteError_WithError(t *testing.T) {
	h := NewHandlers(nil, "test")
	w := httptest.NewRecorder()

	h.writeError(w, 500, "Internal error", errors.New("boom"))

	assert.Equal(t, 500, w.Code)
	response := decode(t, w)
	assert.False(t, response.Success)
	assert.Equal(t, "Internal error", response.Error)
	assert.Equal(t, "boom", response.Message)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.Errorf(errs.NotFound, "op", "x"), http.StatusNotFound},
		{errs.Errorf(errs.Conflict, "op", "x"), http.StatusConflict},
		{errs.Errorf(errs.Timeout, "op", "x"), http.StatusGatewayTimeout},
		{errs.Errorf(errs.Configuration, "op", "x"), http.StatusBadRequest},
		{errs.Errorf(errs.Storage, "op", "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestPing(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := serve(router, "GET", "/api/v1/ping")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	response := decode(t, rec)
	var ping PingResponse
	require.NoError(t, json.Unmarshal(response.Data, &ping))
	assert.Equal(t, "ok", ping.Status)
	assert.Equal(t, "test", ping.Version)
}

func TestListJobs_RedactsPasswords(t *testing.T) {
	router, sup := setupTestRouter(t)
	job := testutil.CreateTestJob(func(j *models.TransferJob) {
		j.Credentials.UserPassword = "user-secret"
	})
	sup.EXPECT().ListJobs(mock.Anything).Return([]*models.TransferJob{job}, nil).Once()

	rec := serve(router, "GET", "/api/v1/jobs")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "share-secret")
	assert.NotContains(t, rec.Body.String(), "user-secret")

	response := decode(t, rec)
	var jobs []models.TransferJob
	require.NoError(t, json.Unmarshal(response.Data, &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0].ID)
	assert.Equal(t, "bob", jobs[0].Credentials.ShareUser)
	assert.Equal(t, "share-secret", job.Credentials.SharePassword, "original is not modified")
}

func TestGetJob(t *testing.T) {
	router, sup := setupTestRouter(t)
	sup.EXPECT().GetJob(mock.Anything, "job-1").Return(testutil.CreateTestJob(), nil).Once()
	sup.EXPECT().GetJob(mock.Anything, "missing").Return(nil, errs.Errorf(errs.NotFound, "repository.get_job", "job missing not found")).Once()

	rec := serve(router, "GET", "/api/v1/jobs/job-1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, "GET", "/api/v1/jobs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	response := decode(t, rec)
	assert.False(t, response.Success)
	assert.Equal(t, "Failed to get job", response.Error)
}

func TestCancelJob(t *testing.T) {
	router, sup := setupTestRouter(t)
	sup.EXPECT().CancelJob(mock.Anything, "job-1").Return(nil).Once()
	sup.EXPECT().CancelJob(mock.Anything, "slow").Return(errs.Errorf(errs.Timeout, "supervisor.cancel", "job slow did not stop")).Once()

	rec := serve(router, "POST", "/api/v1/jobs/job-1/cancel")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, "POST", "/api/v1/jobs/slow/cancel")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestStartSchedule(t *testing.T) {
	router, sup := setupTestRouter(t)
	sup.EXPECT().StartScheduleNow("home", "nightly").Return(nil).Once()

	rec := serve(router, "POST", "/api/v1/schedules/home/nightly/start")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	response := decode(t, rec)
	var started StartResponse
	require.NoError(t, json.Unmarshal(response.Data, &started))
	assert.Equal(t, StartResponse{ServerName: "home", ScheduleName: "nightly"}, started)
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := serve(router, "GET", "/api/v1/jobs/job-1/cancel")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
