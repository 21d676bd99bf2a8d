package reflection

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"growthlog/internal/models"
)

// Store is the slice of the entry store the generator needs.
type Store interface {
	ListUserIDs(ctx context.Context) ([]string, error)
	ListRecentEntryTexts(ctx context.Context, userID string, since time.Time) ([]string, error)
	InsertReflection(ctx context.Context, r *models.WeeklyReflection) error
	SetReflectionAudioURL(ctx context.Context, reflectionID, audioURL string) error
}

type sqlStore struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) Store { return &sqlStore{db: db} }

func (s *sqlStore) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, `SELECT id FROM users ORDER BY created_at`)
	return ids, err
}

func (s *sqlStore) ListRecentEntryTexts(ctx context.Context, userID string, since time.Time) ([]string, error) {
	var texts []string
	err := s.db.SelectContext(ctx, &texts,
		`SELECT text FROM entries WHERE user_id=$1 AND created_at >= $2 ORDER BY created_at`,
		userID, since)
	return texts, err
}

func (s *sqlStore) InsertReflection(ctx context.Context, r *models.WeeklyReflection) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO weekly_reflections (id, user_id, summary_text, reflection_data, generated_at, audio_url)
		 VALUES ($1, $2, $3, $4, $5, NULL)`,
		r.ID, r.UserID, r.SummaryText, r.ReflectionData, r.GeneratedAt)
	return err
}

func (s *sqlStore) SetReflectionAudioURL(ctx context.Context, reflectionID, audioURL string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE weekly_reflections SET audio_url=$2 WHERE id=$1 AND audio_url IS NULL`,
		reflectionID, audioURL)
	return err
}
