package service

import (
	"context"
	"sync"
	"time"

	"primefire/internal/config"

	"github.com/sirupsen/logrus"
)

// SchedulerStatus is the sync status surface for the API.
type SchedulerStatus struct {
	AutoSyncEnabled   bool       `json:"auto_sync_enabled"`
	SyncIntervalHours int        `json:"sync_interval_hours"`
	Running           bool       `json:"running"`
	LastSyncAt        *time.Time `json:"last_sync_at,omitempty"`
	NextSyncDue       *time.Time `json:"next_sync_due,omitempty"`
	LastStats         *SyncStats `json:"last_stats,omitempty"`
}

// SyncScheduler runs directory syncs on an interval and serializes manual
// triggers against the background runs. At most one sync runs at a time.
type SyncScheduler struct {
	syncSvc SyncService
	log     *logrus.Logger

	enabled       bool
	syncOnStartup bool
	interval      time.Duration
	checkEvery    time.Duration

	mu        sync.Mutex
	running   bool
	lastSync  time.Time
	lastStats *SyncStats

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewSyncScheduler(syncSvc SyncService, cfg *config.Config, log *logrus.Logger) *SyncScheduler {
	return &SyncScheduler{
		syncSvc:       syncSvc,
		log:           log,
		enabled:       cfg.EnableAutoSync,
		syncOnStartup: cfg.SyncOnStartup,
		interval:      time.Duration(cfg.SyncIntervalHours) * time.Hour,
		checkEvery:    time.Hour,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start launches the background loop. It returns immediately.
func (s *SyncScheduler) Start() {
	if s.syncOnStartup {
		go func() {
			if _, started, err := s.RunNow(context.Background()); err != nil {
				s.log.WithError(err).Error("startup sync failed")
			} else if started {
				s.log.Info("startup sync finished")
			}
		}()
	}

	if !s.enabled {
		s.log.Info("automatic directory sync disabled")
		close(s.done)
		return
	}

	s.log.WithField("interval_hours", int(s.interval.Hours())).Info("automatic directory sync enabled")
	go s.loop()
}

// Stop ends the background loop and waits for it to exit.
func (s *SyncScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *SyncScheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.checkEvery)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if !s.due() {
				continue
			}
			if _, started, err := s.RunNow(context.Background()); err != nil {
				s.log.WithError(err).Error("scheduled sync failed")
			} else if !started {
				s.log.Debug("scheduled sync skipped, another run in progress")
			}
		}
	}
}

// due reports whether enough time passed since the last sync attempt.
func (s *SyncScheduler) due() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastSync) >= s.interval
}

// RunNow runs a sync immediately unless one is already in progress, in which
// case it returns started=false without blocking.
func (s *SyncScheduler) RunNow(ctx context.Context) (*SyncStats, bool, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, false, nil
	}
	s.running = true
	s.mu.Unlock()

	stats, err := s.syncSvc.Run(ctx)

	s.mu.Lock()
	s.running = false
	s.lastSync = time.Now()
	if err == nil {
		s.lastStats = &stats
	}
	s.mu.Unlock()

	if err != nil {
		return nil, true, err
	}
	return &stats, true, nil
}

// Status snapshots the scheduler state.
func (s *SyncScheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := SchedulerStatus{
		AutoSyncEnabled:   s.enabled,
		SyncIntervalHours: int(s.interval.Hours()),
		Running:           s.running,
		LastStats:         s.lastStats,
	}
	if !s.lastSync.IsZero() {
		last := s.lastSync
		status.LastSyncAt = &last
		if s.enabled {
			due := last.Add(s.interval)
			status.NextSyncDue = &due
		}
	}
	return status
}
