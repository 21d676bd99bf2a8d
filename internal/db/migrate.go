package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    priority_virtues JSONB NOT NULL DEFAULT '[]',
    custom_virtues JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('moment', 'reflection')),
    audio_url TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_entries_user_created ON entries(user_id, created_at);

CREATE TABLE IF NOT EXISTS weekly_reflections (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    summary_text TEXT NOT NULL,
    reflection_data TEXT NOT NULL DEFAULT '',
    generated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    audio_url TEXT
);
CREATE INDEX IF NOT EXISTS idx_weekly_reflections_user_generated ON weekly_reflections(user_id, generated_at);

CREATE TABLE IF NOT EXISTS peer_feedback (
    id TEXT PRIMARY KEY,
    recipient_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    giver_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_peer_feedback_recipient ON peer_feedback(recipient_id, created_at);

CREATE TABLE IF NOT EXISTS integrations (
    user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    email JSONB NOT NULL DEFAULT '{"connected": false, "settings": {}}',
    slack JSONB NOT NULL DEFAULT '{"connected": false, "settings": {}}',
    jira JSONB NOT NULL DEFAULT '{"connected": false, "settings": {}}',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS quotes (
    id TEXT PRIMARY KEY,
    quote TEXT NOT NULL,
    author TEXT NOT NULL,
    reflection_prompt TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS articles (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    summary TEXT NOT NULL,
    link TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reflection_suggestions (
    id TEXT PRIMARY KEY,
    virtue TEXT NOT NULL,
    practice TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS calendar_insights (
    id TEXT PRIMARY KEY,
    insight TEXT NOT NULL
);
`
	_, err := db.ExecContext(context.Background(), schema)
	return err
}
