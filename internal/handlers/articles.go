package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"

	"growthlog/internal/models"
)

func listArticles(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := []models.Article{}
		if err := db.SelectContext(r.Context(), &out,
			`SELECT id, title, summary, link FROM articles ORDER BY title`); err != nil {
			http.Error(w, "could not fetch articles", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}
