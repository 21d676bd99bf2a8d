package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"growthlog/internal/models"
)

type EntryHandler struct {
	db *sqlx.DB
}

func NewEntryHandler(db *sqlx.DB) *EntryHandler { return &EntryHandler{db: db} }

type entryRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// CreateMoment logs a moment for the authenticated user.
func (h *EntryHandler) CreateMoment(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, models.EntryKindMoment, false)
}

// CreateReflection logs a reflective entry; the body may name the kind
// explicitly ("moment" or "reflection").
func (h *EntryHandler) CreateReflection(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, models.EntryKindReflection, true)
}

func (h *EntryHandler) create(w http.ResponseWriter, r *http.Request, defaultKind string, allowKindOverride bool) {
	userID := r.Context().Value("userID").(string)

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	kind := defaultKind
	if allowKindOverride && req.Type != "" {
		if req.Type != models.EntryKindMoment && req.Type != models.EntryKindReflection {
			http.Error(w, "type must be 'moment' or 'reflection'", http.StatusBadRequest)
			return
		}
		kind = req.Type
	}

	entry := models.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      req.Text,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
	_, err := h.db.ExecContext(r.Context(),
		`INSERT INTO entries (id, user_id, text, kind, created_at) VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.UserID, entry.Text, entry.Kind, entry.CreatedAt)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

func (h *EntryHandler) ListMoments(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.EntryKindMoment)
}

func (h *EntryHandler) ListReflections(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.EntryKindReflection)
}

func (h *EntryHandler) list(w http.ResponseWriter, r *http.Request, kind string) {
	userID := r.Context().Value("userID").(string)

	entries := []models.Entry{}
	err := h.db.SelectContext(r.Context(), &entries,
		`SELECT id, user_id, text, kind, audio_url, created_at FROM entries
		 WHERE user_id=$1 AND kind=$2 ORDER BY created_at DESC LIMIT 200`,
		userID, kind)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
