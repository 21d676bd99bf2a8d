package reflection

import (
	"context"

	"go.uber.org/zap"
)

// Jobs is the submission surface for the weekly batch: callers enqueue a run
// and return immediately. In this single-process deployment a run is a
// background goroutine.
type Jobs struct {
	gen    *Generator
	logger *zap.Logger
}

func NewJobs(gen *Generator, logger *zap.Logger) *Jobs {
	return &Jobs{gen: gen, logger: logger}
}

func (j *Jobs) Submit() {
	go func() {
		j.logger.Info("weekly reflection run started")
		if err := j.gen.Run(context.Background()); err != nil {
			j.logger.Error("weekly reflection run failed", zap.Error(err))
			return
		}
		j.logger.Info("weekly reflection run finished")
	}()
}
