package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
)

// ReflectionJobs submits a weekly batch run without blocking the caller.
type ReflectionJobs interface {
	Submit()
}

type TaskHandler struct {
	db   *sqlx.DB
	jobs ReflectionJobs
}

func NewTaskHandler(db *sqlx.DB, jobs ReflectionJobs) *TaskHandler {
	return &TaskHandler{db: db, jobs: jobs}
}

// GenerateReflections triggers the weekly batch and replies immediately.
func (h *TaskHandler) GenerateReflections(w http.ResponseWriter, r *http.Request) {
	h.jobs.Submit()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"message": "reflection generation started"})
}

// Health reports store reachability.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.db == nil || h.db.PingContext(r.Context()) != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "database": "disconnected"})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "database": "connected"})
}

// Welcome is the unauthenticated API root.
func (h *TaskHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Welcome to the growthlog API"})
}
