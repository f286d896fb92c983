// Package jobs runs scheduled maintenance against the store.
package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/AkshitTiwarii/carbonx/internal/store"
)

// Scheduler drives periodic store backups.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers a backup job on the given cron schedule for
// stores that support backups. Stores that don't are skipped.
func NewScheduler(st store.Store, schedule string) (*Scheduler, error) {
	c := cron.New()

	backupper, ok := st.(store.Backupper)
	if !ok {
		log.Debug("Store does not support backups, scheduler runs empty")
		return &Scheduler{cron: c}, nil
	}

	_, err := c.AddFunc(schedule, func() {
		if err := backupper.Backup(context.Background()); err != nil {
			log.WithError(err).Error("Scheduled store backup failed")
			return
		}
		log.Info("Scheduled store backup complete")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}

	return &Scheduler{cron: c}, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
