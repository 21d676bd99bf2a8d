// Package reflection implements the weekly reflection batch: it summarizes
// each user's trailing week of entries, synthesizes audio for the summary,
// persists the result, and notifies live listeners.
package reflection

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"growthlog/internal/models"
	"growthlog/internal/tts"
)

// Broadcaster pushes a reflection-ready event to live listeners. It must
// never block the generator's write path.
type Broadcaster interface {
	Broadcast(event any)
}

type Generator struct {
	store       Store
	synthesizer tts.Synthesizer
	hub         Broadcaster
	audioDir    string
	logger      *zap.Logger

	now func() time.Time
}

func NewGenerator(store Store, synthesizer tts.Synthesizer, hub Broadcaster, audioDir string, logger *zap.Logger) *Generator {
	return &Generator{
		store:       store,
		synthesizer: synthesizer,
		hub:         hub,
		audioDir:    audioDir,
		logger:      logger,
		now:         time.Now,
	}
}

// Run generates one reflection per user. Users are processed sequentially;
// a failure for one user is logged and the rest of the batch continues.
// Overlapping runs are not deduplicated.
func (g *Generator) Run(ctx context.Context) error {
	userIDs, err := g.store.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	if err := os.MkdirAll(g.audioDir, 0o755); err != nil {
		g.logger.Warn("could not create audio dir; audio synthesis will fail", zap.Error(err))
	}

	for _, userID := range userIDs {
		if err := g.generateForUser(ctx, userID); err != nil {
			g.logger.Error("weekly reflection failed for user",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

func (g *Generator) generateForUser(ctx context.Context, userID string) error {
	since := g.now().Add(-7 * 24 * time.Hour)
	texts, err := g.store.ListRecentEntryTexts(ctx, userID, since)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	summary, reflectionData := Summarize(texts)

	ref := &models.WeeklyReflection{
		ID:             uuid.NewString(),
		UserID:         userID,
		SummaryText:    summary,
		ReflectionData: reflectionData,
		GeneratedAt:    g.now(),
	}
	if err := g.store.InsertReflection(ctx, ref); err != nil {
		return fmt.Errorf("insert reflection: %w", err)
	}

	// Audio is best effort: on failure the reflection keeps a null audio URL
	// forever, no retry.
	if audioURL, err := g.synthesizeAudio(ctx, ref); err != nil {
		g.logger.Warn("audio synthesis failed",
			zap.String("reflection_id", ref.ID), zap.Error(err))
	} else {
		if err := g.store.SetReflectionAudioURL(ctx, ref.ID, audioURL); err != nil {
			g.logger.Warn("could not record audio url",
				zap.String("reflection_id", ref.ID), zap.Error(err))
		} else {
			ref.AudioURL = &audioURL
		}
	}

	g.hub.Broadcast(ref)
	return nil
}

func (g *Generator) synthesizeAudio(ctx context.Context, ref *models.WeeklyReflection) (string, error) {
	audio, err := g.synthesizer.Synthesize(ctx, ref.SummaryText, "en")
	if err != nil {
		return "", err
	}
	filename := ref.ID + ".mp3"
	if err := os.WriteFile(filepath.Join(g.audioDir, filename), audio, 0o644); err != nil {
		return "", err
	}
	return "/static/audio/" + filename, nil
}
