package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"growthlog/internal/models"
)

type FeedbackHandler struct {
	db *sqlx.DB
}

func NewFeedbackHandler(db *sqlx.DB) *FeedbackHandler { return &FeedbackHandler{db: db} }

type feedbackRequest struct {
	RecipientEmail string `json:"recipient_email"`
	Text           string `json:"text"`
}

// Create records feedback for another user, resolved by email. The recipient
// lookup happens before any write.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	giverID := r.Context().Value("userID").(string)

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" || req.RecipientEmail == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.RecipientEmail))
	var recipientID string
	err := h.db.GetContext(r.Context(), &recipientID, `SELECT id FROM users WHERE email=$1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "recipient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	fb := models.PeerFeedback{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		GiverID:     giverID,
		Text:        req.Text,
		CreatedAt:   time.Now().UTC(),
	}
	_, err = h.db.ExecContext(r.Context(),
		`INSERT INTO peer_feedback (id, recipient_id, giver_id, text, created_at) VALUES ($1, $2, $3, $4, $5)`,
		fb.ID, fb.RecipientID, fb.GiverID, fb.Text, fb.CreatedAt)
	if err != nil {
		http.Error(w, "could not save feedback", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fb)
}

// List returns feedback received by the caller, newest first.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	out := []models.PeerFeedback{}
	err := h.db.SelectContext(r.Context(), &out,
		`SELECT f.id, f.recipient_id, f.giver_id, u.email AS giver_email, f.text, f.created_at
		 FROM peer_feedback f JOIN users u ON u.id = f.giver_id
		 WHERE f.recipient_id=$1 ORDER BY f.created_at DESC LIMIT 100`, userID)
	if err != nil {
		http.Error(w, "could not fetch feedback", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
