// Package ipc is the loopback HTTP endpoint the daemon exposes to the
// interactive client, and the client for it.
package ipc

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"neptis/internal/errs"
	"neptis/internal/interfaces"
	"neptis/internal/models"
)

var startTime = time.Now()

type Handlers struct {
	supervisor interfaces.Supervisor
	version    string
}

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// PingResponse is returned by GET /ping.
type PingResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version,omitempty"`
	Uptime  string    `json:"uptime"`
	Time    time.Time `json:"timestamp"`
}

// StartResponse is returned when a schedule is queued.
type StartResponse struct {
	ServerName   string `json:"server_name"`
	ScheduleName string `json:"schedule_name"`
}

func NewHandlers(sup interfaces.Supervisor, version string) *Handlers {
	return &Handlers{supervisor: sup, version: version}
}

func (h *Handlers) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/ping", h.Ping).Methods("GET")

	api.HandleFunc("/jobs", h.ListJobs).Methods("GET")
	api.HandleFunc("/jobs/{id}", h.GetJob).Methods("GET")
	api.HandleFunc("/jobs/{id}/cancel", h.CancelJob).Methods("POST")

	api.HandleFunc("/schedules/{server}/{schedule}/start", h.StartSchedule).Methods("POST")

	api.Use(loggingMiddleware)
	api.Use(jsonContentTypeMiddleware)
}

func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, http.StatusOK, PingResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(startTime).Round(time.Second).String(),
		Time:    time.Now().UTC(),
	}, "")
}

func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.supervisor.ListJobs(r.Context())
	if err != nil {
		h.writeKindError(w, "Failed to list jobs", err)
		return
	}

	out := make([]*models.TransferJob, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, job.Redacted())
	}
	h.writeSuccess(w, http.StatusOK, out, "")
}

func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, err := h.supervisor.GetJob(r.Context(), id)
	if err != nil {
		h.writeKindError(w, "Failed to get job", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, job.Redacted(), "")
}

func (h *Handlers) CancelJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.supervisor.CancelJob(r.Context(), id); err != nil {
		h.writeKindError(w, "Failed to cancel job", err)
		return
	}
	h.writeSuccess(w, http.StatusOK, nil, "Job cancelled")
}

func (h *Handlers) StartSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	server, schedule := vars["server"], vars["schedule"]

	if err := h.supervisor.StartScheduleNow(server, schedule); err != nil {
		h.writeKindError(w, "Failed to start schedule", err)
		return
	}
	h.writeSuccess(w, http.StatusAccepted, StartResponse{ServerName: server, ScheduleName: schedule}, "Schedule queued")
}

// statusFor maps an error kind to the HTTP status the client maps back.
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.NotFound:
		return http.StatusNotFound
	case errs.Conflict:
		return http.StatusConflict
	case errs.Timeout:
		return http.StatusGatewayTimeout
	case errs.Configuration, errs.ParseError:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handlers) writeKindError(w http.ResponseWriter, message string, err error) {
	h.writeError(w, statusFor(err), message, err)
}

func (h *Handlers) writeSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	response := APIResponse{
		Success: true,
		Message: message,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "Failed to encode response", err)
			return
		}
		response.Data = raw
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, statusCode int, message string, err error) {
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: false,
		Error:   message,
	}

	if err != nil {
		response.Message = err.Error()
		slog.Error("API error", "message", message, "error", err)
	} else {
		slog.Warn("API error", "message", message)
	}

	if jsonErr := json.NewEncoder(w).Encode(response); jsonErr != nil {
		slog.Error("failed to encode error response", "error", jsonErr)
	}
}
