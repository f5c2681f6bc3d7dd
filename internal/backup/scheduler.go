// Package backup snapshots the data directory on a fixed schedule whenever
// the store has unsaved changes.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/observability"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/storage"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/store"
)

const timestampLayout = "20060102-150405"

// DefaultGrace bounds how long Close waits for an in-flight snapshot.
const DefaultGrace = 5 * time.Second

// Scheduler runs the periodic dirty-check-and-snapshot task.
type Scheduler struct {
	store    *store.Store
	cron     *cron.Cron
	interval time.Duration
	grace    time.Duration
	logger   zerolog.Logger
}

// NewScheduler builds a scheduler for the given store. It does not start
// until Start is called.
func NewScheduler(st *store.Store, interval, grace time.Duration, logger zerolog.Logger) *Scheduler {
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &Scheduler{
		store:    st,
		cron:     cron.New(),
		interval: interval,
		grace:    grace,
		logger:   logger.With().Str("component", "backup").Logger(),
	}
}

// Start registers the recurring snapshot job and launches the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.RunOnce); err != nil {
		return fmt.Errorf("schedule backup job: %w", err)
	}
	s.cron.Start()
	s.logger.Info().Dur("interval", s.interval).Msg("autosave scheduler started")
	return nil
}

// Close performs one final dirty-check synchronously, then stops the cron
// runner, waiting at most the grace period for an in-flight job.
func (s *Scheduler) Close() {
	s.RunOnce()

	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("autosave scheduler stopped")
	case <-time.After(s.grace):
		s.logger.Warn().Dur("grace", s.grace).Msg("autosave scheduler stop timed out, forcing shutdown")
	}
}

// RunOnce snapshots the data directory if the store is dirty. Individual file
// failures are logged and skipped; the dirty flag clears only after the pass
// completes.
func (s *Scheduler) RunOnce() {
	if !s.store.Dirty() {
		return
	}

	fs := s.store.Files()
	if fs.Degraded() {
		s.logger.Warn().Msg("skipping backup, storage is degraded")
		return
	}

	dest := filepath.Join(fs.Root(), storage.BackupDir, time.Now().Format(timestampLayout))
	copied, failed := s.snapshot(fs.Root(), dest)

	s.store.ClearDirty()
	observability.BackupRuns().Inc()
	s.logger.Info().Str("dir", dest).Int("files", copied).Int("failures", failed).Msg("backup snapshot written")
}

func (s *Scheduler) snapshot(root, dest string) (copied, failed int) {
	for _, kind := range storage.Kinds {
		srcDir := filepath.Join(root, kind)
		dstDir := filepath.Join(dest, kind)
		if err := os.MkdirAll(dstDir, 0o755); err != nil {
			s.logger.Error().Err(err).Str("dir", dstDir).Msg("cannot create snapshot directory")
			failed++
			continue
		}

		entries, err := os.ReadDir(srcDir)
		if err != nil {
			s.logger.Error().Err(err).Str("dir", srcDir).Msg("cannot list data directory")
			failed++
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if err := copyFile(filepath.Join(srcDir, entry.Name()), filepath.Join(dstDir, entry.Name())); err != nil {
				s.logger.Warn().Err(err).Str("file", entry.Name()).Msg("snapshot copy failed, continuing")
				observability.BackupCopyFailures().Inc()
				failed++
				continue
			}
			copied++
		}
	}
	return copied, failed
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
