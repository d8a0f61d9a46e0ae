package session

import (
	"context"
	"fmt"
	"time"

	"loan-saarthi/internal/common/logger"

	"github.com/robfig/cron/v3"
)

// Reaper evicts idle sessions on a cron schedule.
type Reaper struct {
	cron    *cron.Cron
	manager *Manager
	ttl     time.Duration
	logger  logger.Logger
}

// NewReaper accepts standard five-field specs and descriptors such as
// "@every 1m".
func NewReaper(manager *Manager, schedule string, ttl time.Duration, log logger.Logger) (*Reaper, error) {
	r := &Reaper{
		cron:    cron.New(),
		manager: manager,
		ttl:     ttl,
		logger:  log.WithFields(map[string]interface{}{"component": "session-reaper"}),
	}
	if _, err := r.cron.AddFunc(schedule, r.sweep); err != nil {
		return nil, fmt.Errorf("invalid reaper schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Reaper) Start() {
	r.logger.Info("session reaper started", map[string]interface{}{"ttl": r.ttl.String()})
	r.cron.Start()
}

// Stop halts the schedule and waits for a running sweep, or for ctx.
func (r *Reaper) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
		r.logger.Warn("session reaper stop timed out", nil)
	}
}

func (r *Reaper) sweep() {
	evicted := r.manager.EvictIdle(r.ttl)
	r.logger.Debug("idle sweep finished", map[string]interface{}{
		"evicted": evicted,
		"active":  r.manager.Count(),
	})
}
