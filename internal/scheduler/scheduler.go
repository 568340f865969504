// Package scheduler wires up the cron job that periodically refreshes stale
// industry insight rows, so dashboards stay warm between visits.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/careoch/careoch-backend/internal/services"
)

// Scheduler wraps robfig/cron around the stale-insight sweep.
type Scheduler struct {
	cron     *cron.Cron
	insights *services.InsightService
	spec     string // cron spec, e.g. "@every 12h"
	logger   *zap.Logger
}

func New(insights *services.InsightService, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		insights: insights,
		spec:     spec,
		logger:   logger,
	}
}

// Start registers the sweep and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.insights.RefreshStale(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("insight refresh scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("insight refresh scheduler stopped")
}
