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

type DashboardHandler struct {
	db *sqlx.DB
}

func NewDashboardHandler(db *sqlx.DB) *DashboardHandler { return &DashboardHandler{db: db} }

// Fallbacks used when the respective collections are empty. Empty collections
// are a designed path, not an error.
var fallbackQuote = models.Quote{
	Quote:            "The only way to do great work is to love what you do.",
	Author:           "Steve Jobs",
	ReflectionPrompt: "What work do you love, and how can you do more of it?",
}

var fallbackArticles = []models.Article{
	{
		ID:      "fallback-1",
		Title:   "The Benefits of a Growth Mindset",
		Summary: "Embrace challenges and grow with a growth mindset.",
		Link:    "https://example.com/growth-mindset",
	},
}

type growthTrends struct {
	WeekSummary string `json:"weekSummary"`
	NextGoal    string `json:"nextGoal"`
}

type dashboardResponse struct {
	DailyQuote   models.Quote     `json:"dailyQuote"`
	NewsArticles []models.Article `json:"newsArticles"`
	GrowthTrends growthTrends     `json:"growthTrends"`
}

// Get assembles the read-only dashboard view: a random quote, sampled
// articles and a week-over-week moment comparison.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	ctx := r.Context()

	quote := fallbackQuote
	err := h.db.GetContext(ctx, &quote,
		`SELECT id, quote, author, reflection_prompt FROM quotes ORDER BY random() LIMIT 1`)
	if err != nil && err != sql.ErrNoRows {
		http.Error(w, "could not fetch quote", http.StatusInternalServerError)
		return
	}
	if err == sql.ErrNoRows {
		quote = fallbackQuote
	}

	articles := []models.Article{}
	if err := h.db.SelectContext(ctx, &articles,
		`SELECT id, title, summary, link FROM articles ORDER BY random() LIMIT 3`); err != nil {
		http.Error(w, "could not fetch articles", http.StatusInternalServerError)
		return
	}
	if len(articles) == 0 {
		articles = fallbackArticles
	}

	now := time.Now()
	thisWeekStart := weekStart(now)
	lastWeekStart := thisWeekStart.AddDate(0, 0, -7)

	var thisWeek, lastWeek int
	err = h.db.QueryRowxContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE created_at >= $2 AND created_at < $3) AS this_week,
			COUNT(*) FILTER (WHERE created_at >= $4 AND created_at < $2) AS last_week
		FROM entries
		WHERE user_id = $1 AND kind = 'moment'`,
		userID, thisWeekStart, now, lastWeekStart).Scan(&thisWeek, &lastWeek)
	if err != nil {
		http.Error(w, "could not fetch moment counts", http.StatusInternalServerError)
		return
	}

	var virtues models.StringList
	if err := h.db.GetContext(ctx, &virtues, `SELECT priority_virtues FROM users WHERE id=$1`, userID); err != nil {
		http.Error(w, "could not fetch settings", http.StatusInternalServerError)
		return
	}

	resp := dashboardResponse{
		DailyQuote:   quote,
		NewsArticles: articles,
		GrowthTrends: growthTrends{
			WeekSummary: weekSummaryPhrase(thisWeek, lastWeek),
			NextGoal:    nextGoalPhrase(virtues),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// weekStart is the most recent Monday midnight at or before t.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

func weekSummaryPhrase(thisWeek, lastWeek int) string {
	if thisWeek > lastWeek {
		return fmt.Sprintf("You logged %d moments this week, up from %d last week. Keep the momentum going!", thisWeek, lastWeek)
	}
	return fmt.Sprintf("You logged %d moments this week and %d last week. A few small moments next week will keep you growing.", thisWeek, lastWeek)
}

func nextGoalPhrase(priorityVirtues []string) string {
	if len(priorityVirtues) == 0 {
		return "Pick one virtue to focus on this week."
	}
	return fmt.Sprintf("Practice %s in one concrete situation this week.", priorityVirtues[0])
}
