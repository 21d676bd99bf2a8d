package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"growthlog/internal/models"
)

type WeeklyHandler struct {
	db *sqlx.DB
}

func NewWeeklyHandler(db *sqlx.DB) *WeeklyHandler { return &WeeklyHandler{db: db} }

type audioSummary struct {
	Title    string  `json:"title"`
	Duration string  `json:"duration"`
	Summary  string  `json:"summary"`
	AudioURL *string `json:"audioUrl"`
}

type growthDataPoint struct {
	Name    string `json:"name"`
	Moments int    `json:"Moments"`
}

type weeklyReflectionResponse struct {
	AudioSummary     audioSummary            `json:"audioSummary"`
	CalendarInsights []string                `json:"calendarInsights"`
	VirtueSuggestion models.VirtueSuggestion `json:"virtueSuggestion"`
	GrowthData       []growthDataPoint       `json:"growthData"`
}

var fallbackAudioSummary = audioSummary{
	Title:    "Your Weekly Reflection",
	Duration: "0 min",
	Summary:  "No weekly reflection has been generated yet. Log a few moments and check back soon!",
}

var fallbackVirtueSuggestion = models.VirtueSuggestion{
	Virtue:   "Gratitude",
	Practice: "Write down three things you are grateful for today.",
}

// Get returns the weekly reflection view: the newest generated summary plus
// sampled insights, a virtue suggestion and four weeks of moment counts.
func (h *WeeklyHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	ctx := r.Context()

	summary := fallbackAudioSummary
	var ref models.WeeklyReflection
	err := h.db.GetContext(ctx, &ref,
		`SELECT id, user_id, summary_text, reflection_data, generated_at, audio_url
		 FROM weekly_reflections WHERE user_id=$1 ORDER BY generated_at DESC LIMIT 1`, userID)
	switch {
	case err == nil:
		summary = audioSummary{
			Title:    "Week of " + ref.GeneratedAt.Format("January 2"),
			Duration: "1 min",
			Summary:  ref.SummaryText,
			AudioURL: ref.AudioURL,
		}
	case err != sql.ErrNoRows:
		http.Error(w, "could not fetch reflection", http.StatusInternalServerError)
		return
	}

	insights := []string{}
	if err := h.db.SelectContext(ctx, &insights,
		`SELECT insight FROM calendar_insights ORDER BY random() LIMIT 3`); err != nil {
		http.Error(w, "could not fetch insights", http.StatusInternalServerError)
		return
	}

	suggestion := fallbackVirtueSuggestion
	err = h.db.GetContext(ctx, &suggestion,
		`SELECT id, virtue, practice FROM reflection_suggestions ORDER BY random() LIMIT 1`)
	if err != nil && err != sql.ErrNoRows {
		http.Error(w, "could not fetch suggestion", http.StatusInternalServerError)
		return
	}
	if err == sql.ErrNoRows {
		suggestion = fallbackVirtueSuggestion
	}

	growth, err := h.growthData(r, userID)
	if err != nil {
		http.Error(w, "could not fetch growth data", http.StatusInternalServerError)
		return
	}

	resp := weeklyReflectionResponse{
		AudioSummary:     summary,
		CalendarInsights: insights,
		VirtueSuggestion: suggestion,
		GrowthData:       growth,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// growthData counts the caller's moments in each of the last four ISO weeks,
// oldest first.
func (h *WeeklyHandler) growthData(r *http.Request, userID string) ([]growthDataPoint, error) {
	thisWeekStart := weekStart(time.Now())

	points := make([]growthDataPoint, 0, 4)
	for i := 3; i >= 0; i-- {
		start := thisWeekStart.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 7)

		var count int
		err := h.db.QueryRowxContext(r.Context(),
			`SELECT COUNT(*) FROM entries WHERE user_id=$1 AND kind='moment' AND created_at >= $2 AND created_at < $3`,
			userID, start, end).Scan(&count)
		if err != nil {
			return nil, err
		}
		points = append(points, growthDataPoint{
			Name:    fmt.Sprintf("Week %d", 4-i),
			Moments: count,
		})
	}
	return points, nil
}
