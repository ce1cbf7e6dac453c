// Package scheduler runs the recurring maintenance jobs: analytics
// snapshot refresh, event log pruning, session cleanup, and GeoIP
// database reload.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ferrogaz/website/internal/analytics"
	"github.com/ferrogaz/website/internal/cache"
	"github.com/ferrogaz/website/internal/geoip"
	"github.com/ferrogaz/website/internal/store"
)

// EventRetention is how long event log rows are kept.
const EventRetention = 90 * 24 * time.Hour

// Scheduler owns the cron instance and job dependencies.
type Scheduler struct {
	db        *sql.DB
	cron      *cron.Cron
	cache     cache.Cache
	analytics *analytics.Client
	geo       *geoip.Lookup
	logger    *slog.Logger
}

// New creates a scheduler. analytics, cache, and geo may be nil; the
// corresponding jobs are skipped.
func New(db *sql.DB, c cache.Cache, client *analytics.Client, geo *geoip.Lookup, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		db:        db,
		cron:      cron.New(),
		cache:     c,
		analytics: client,
		geo:       geo,
		logger:    logger,
	}
}

// Start registers and starts all jobs.
func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		name string
		run  func() error
		skip bool
	}{
		{"*/15 * * * *", "analytics snapshot", s.refreshAnalyticsSnapshot,
			s.analytics == nil || !s.analytics.Enabled() || s.cache == nil},
		{"10 3 * * *", "event log pruning", s.pruneEvents, false},
		{"*/30 * * * *", "session cleanup", s.cleanExpiredSessions, false},
		{"0 4 * * *", "geoip reload", s.reloadGeoIP, s.geo == nil},
	}

	for _, job := range jobs {
		if job.skip {
			continue
		}
		name, run := job.name, job.run
		if _, err := s.cron.AddFunc(job.spec, func() {
			if err := run(); err != nil {
				s.logger.Error("scheduled job failed", "job", name, "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// refreshAnalyticsSnapshot pulls the default-range summary from the
// provider and caches it so dashboard loads are instant.
func (s *Scheduler) refreshAnalyticsSnapshot() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rng, err := analytics.ParseRange(analytics.DefaultRange, "", "", time.Now())
	if err != nil {
		return err
	}
	summary, err := s.analytics.Summary(ctx, rng)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, analytics.SnapshotCacheKey, raw, 20*time.Minute); err != nil {
		return err
	}

	s.logger.Info("analytics snapshot refreshed",
		"page_views", summary.PageViews, "unique_visitors", summary.UniqueVisitors)
	return nil
}

// pruneEvents removes event log rows past the retention window.
func (s *Scheduler) pruneEvents() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := store.New(s.db).DeleteEventsBefore(ctx, time.Now().Add(-EventRetention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("event log pruned", "deleted", deleted)
	}
	return nil
}

// cleanExpiredSessions removes session rows the store has let expire.
func (s *Scheduler) cleanExpiredSessions() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := store.New(s.db).DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("expired sessions removed", "deleted", deleted)
	}
	return nil
}

// reloadGeoIP re-reads the country database when its file has changed.
func (s *Scheduler) reloadGeoIP() error {
	return s.geo.Reload()
}
