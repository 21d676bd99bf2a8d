// Command seed replaces the content collections (quotes, articles, virtue
// suggestions, calendar insights) with the sample corpus.
package main

import (
	"os"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"growthlog/internal/db"
	"growthlog/internal/models"
)

var quotes = []models.Quote{
	{
		Quote:            "The only way to do great work is to love what you do.",
		Author:           "Steve Jobs",
		ReflectionPrompt: "What work do you love, and how can you do more of it?",
	},
	{
		Quote:            "Success is not final, failure is not fatal: it is the courage to continue that counts.",
		Author:           "Winston Churchill",
		ReflectionPrompt: "Reflect on a time you showed courage in the face of failure.",
	},
	{
		Quote:            "Believe you can and you're halfway there.",
		Author:           "Theodore Roosevelt",
		ReflectionPrompt: "What is something you believe you can achieve?",
	},
}

var articles = []models.Article{
	{Title: "The Importance of Mindfulness in the Workplace", Summary: "Learn how mindfulness can reduce stress and improve focus.", Link: "https://example.com/mindfulness-workplace"},
	{Title: "10 Tips for Effective Time Management", Summary: "Boost your productivity with these time management techniques.", Link: "https://example.com/time-management-tips"},
	{Title: "The Power of Positive Thinking", Summary: "Discover how a positive mindset can transform your life.", Link: "https://example.com/positive-thinking"},
	{Title: "How to Build Stronger Professional Relationships", Summary: "Tips for networking and building lasting connections.", Link: "https://example.com/professional-relationships"},
	{Title: "The Benefits of a Growth Mindset", Summary: "Embrace challenges and grow with a growth mindset.", Link: "https://example.com/growth-mindset"},
}

var suggestions = []models.VirtueSuggestion{
	{Virtue: "Gratitude", Practice: "Write down three things you are grateful for today."},
	{Virtue: "Curiosity", Practice: "Learn something new today, no matter how small."},
	{Virtue: "Kindness", Practice: "Perform a random act of kindness for someone."},
}

var insights = []string{
	"Identified a pattern: You tend to schedule deep work sessions early in the morning.",
	"Opportunity for growth: Mid-afternoon meetings sometimes disrupt your flow.",
	"You have a recurring meeting that could be shortened to improve focus.",
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	conn, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		logger.Fatal("failed to open db", zap.Error(err))
	}
	defer conn.Close()
	if err := db.RunMigrations(conn); err != nil {
		logger.Fatal("failed migrations", zap.Error(err))
	}

	tx, err := conn.Beginx()
	if err != nil {
		logger.Fatal("failed to begin tx", zap.Error(err))
	}
	defer tx.Rollback()

	for _, table := range []string{"quotes", "articles", "reflection_suggestions", "calendar_insights"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			logger.Fatal("failed to clear table", zap.String("table", table), zap.Error(err))
		}
	}

	for _, q := range quotes {
		if _, err := tx.Exec(`INSERT INTO quotes (id, quote, author, reflection_prompt) VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), q.Quote, q.Author, q.ReflectionPrompt); err != nil {
			logger.Fatal("failed to seed quote", zap.Error(err))
		}
	}
	for _, a := range articles {
		if _, err := tx.Exec(`INSERT INTO articles (id, title, summary, link) VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), a.Title, a.Summary, a.Link); err != nil {
			logger.Fatal("failed to seed article", zap.Error(err))
		}
	}
	for _, s := range suggestions {
		if _, err := tx.Exec(`INSERT INTO reflection_suggestions (id, virtue, practice) VALUES ($1, $2, $3)`,
			uuid.NewString(), s.Virtue, s.Practice); err != nil {
			logger.Fatal("failed to seed suggestion", zap.Error(err))
		}
	}
	for _, insight := range insights {
		if _, err := tx.Exec(`INSERT INTO calendar_insights (id, insight) VALUES ($1, $2)`,
			uuid.NewString(), insight); err != nil {
			logger.Fatal("failed to seed insight", zap.Error(err))
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Fatal("failed to commit", zap.Error(err))
	}
	logger.Info("seeded content collections",
		zap.Int("quotes", len(quotes)),
		zap.Int("articles", len(articles)),
		zap.Int("suggestions", len(suggestions)),
		zap.Int("insights", len(insights)))
}
