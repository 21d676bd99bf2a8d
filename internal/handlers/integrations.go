package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"

	"growthlog/internal/models"
)

type IntegrationsHandler struct {
	db *sqlx.DB
}

func NewIntegrationsHandler(db *sqlx.DB) *IntegrationsHandler {
	return &IntegrationsHandler{db: db}
}

func defaultIntegrations(userID string) models.Integrations {
	disconnected := models.IntegrationSetting{Settings: map[string]any{}}
	return models.Integrations{UserID: userID, Email: disconnected, Slack: disconnected, Jira: disconnected}
}

// Get returns the caller's integrations document; all providers disconnected
// when nothing has been stored yet.
func (h *IntegrationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var out models.Integrations
	err := h.db.GetContext(r.Context(), &out,
		`SELECT user_id, email, slack, jira FROM integrations WHERE user_id=$1`, userID)
	if err != nil {
		if err != sql.ErrNoRows {
			http.Error(w, "could not fetch integrations", http.StatusInternalServerError)
			return
		}
		out = defaultIntegrations(userID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Update upserts the whole document. Partial updates are not supported; last
// writer wins.
func (h *IntegrationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var in models.Integrations
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	in.UserID = userID

	_, err := h.db.ExecContext(r.Context(),
		`INSERT INTO integrations (user_id, email, slack, jira, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (user_id)
		 DO UPDATE SET email = EXCLUDED.email, slack = EXCLUDED.slack, jira = EXCLUDED.jira, updated_at = NOW()`,
		in.UserID, in.Email, in.Slack, in.Jira)
	if err != nil {
		http.Error(w, "could not save integrations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(in)
}
