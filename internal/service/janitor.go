package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Janitor periodically evicts workspaces of chats that went quiet.
type Janitor struct {
	store   WorkspaceStore
	idleTTL time.Duration
	spec    string
	logger  *zap.Logger
	now     func() time.Time
}

func NewJanitor(store WorkspaceStore, idleTTL time.Duration, spec string, logger *zap.Logger) *Janitor {
	return &Janitor{
		store:   store,
		idleTTL: idleTTL,
		spec:    spec,
		logger:  logger,
		now:     time.Now,
	}
}

// Start runs the eviction schedule until ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(j.spec, func() { j.Prune() }); err != nil {
		return fmt.Errorf("add prune job %q: %w", j.spec, err)
	}

	c.Start()
	j.logger.Info("workspace janitor started", zap.String("schedule", j.spec))

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("workspace janitor stopped")
	return nil
}

// Prune evicts workspaces idle for longer than the configured TTL.
func (j *Janitor) Prune() int {
	removed := j.store.PruneIdle(j.now().Add(-j.idleTTL))
	if removed > 0 {
		j.logger.Info("evicted idle workspaces", zap.Int("count", removed))
	}
	return removed
}
