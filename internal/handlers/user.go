package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"

	"growthlog/internal/models"
)

type UserHandler struct {
	db *sqlx.DB
}

func NewUserHandler(db *sqlx.DB) *UserHandler { return &UserHandler{db: db} }

type userSettings struct {
	PriorityVirtues models.StringList `json:"priorityVirtues"`
	CustomVirtues   models.StringList `json:"customVirtues"`
}

// GetSettings returns the current user's virtue settings.
func (h *UserHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var s userSettings
	err := h.db.QueryRowxContext(r.Context(),
		`SELECT priority_virtues, custom_virtues FROM users WHERE id=$1`, userID).
		Scan(&s.PriorityVirtues, &s.CustomVirtues)
	if err != nil {
		http.Error(w, "could not fetch settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// UpdateSettings replaces both virtue lists. Resubmitting the same payload is
// a no-op in effect.
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var s userSettings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if s.PriorityVirtues == nil {
		s.PriorityVirtues = models.StringList{}
	}
	if s.CustomVirtues == nil {
		s.CustomVirtues = models.StringList{}
	}

	_, err := h.db.ExecContext(r.Context(),
		`UPDATE users SET priority_virtues=$2, custom_virtues=$3 WHERE id=$1`,
		userID, s.PriorityVirtues, s.CustomVirtues)
	if err != nil {
		http.Error(w, "could not update settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}
