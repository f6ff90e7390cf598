package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primefire/internal/config"
)

// stubSyncService counts runs and can block to simulate a slow sync.
type stubSyncService struct {
	mu      sync.Mutex
	runs    int
	started chan struct{}
	release chan struct{}
	err     error
}

func newStubSyncService() *stubSyncService {
	return &stubSyncService{started: make(chan struct{}, 16)}
}

func (s *stubSyncService) Run(_ context.Context) (SyncStats, error) {
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
	s.started <- struct{}{}
	if s.release != nil {
		<-s.release
	}
	return SyncStats{Processed: 5, Timestamp: time.Now()}, s.err
}

func (s *stubSyncService) PullEmployee(_ context.Context, _ string) (EmployeeResponse, error) {
	return EmployeeResponse{}, nil
}

func (s *stubSyncService) PushEmployee(_ context.Context, _ string) (EmployeeResponse, error) {
	return EmployeeResponse{}, nil
}

func (s *stubSyncService) runCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func schedulerConfig(enabled bool, intervalHours int) *config.Config {
	return &config.Config{EnableAutoSync: enabled, SyncIntervalHours: intervalHours}
}

func TestRunNowRejectsConcurrentRuns(t *testing.T) {
	stub := newStubSyncService()
	stub.release = make(chan struct{})
	sched := NewSyncScheduler(stub, schedulerConfig(false, 24), quietLogger())

	type result struct {
		stats   *SyncStats
		started bool
		err     error
	}
	first := make(chan result, 1)
	go func() {
		stats, started, err := sched.RunNow(context.Background())
		first <- result{stats, started, err}
	}()
	<-stub.started

	// A second trigger while the first is still running backs off.
	stats, started, err := sched.RunNow(context.Background())
	require.NoError(t, err)
	assert.False(t, started)
	assert.Nil(t, stats)
	assert.True(t, sched.Status().Running)

	close(stub.release)
	res := <-first
	require.NoError(t, res.err)
	assert.True(t, res.started)
	require.NotNil(t, res.stats)
	assert.Equal(t, 5, res.stats.Processed)
	assert.Equal(t, 1, stub.runCount())
}

func TestRunNowRecordsStatus(t *testing.T) {
	stub := newStubSyncService()
	sched := NewSyncScheduler(stub, schedulerConfig(true, 12), quietLogger())

	before := sched.Status()
	assert.True(t, before.AutoSyncEnabled)
	assert.Equal(t, 12, before.SyncIntervalHours)
	assert.Nil(t, before.LastSyncAt)
	assert.Nil(t, before.LastStats)

	_, started, err := sched.RunNow(context.Background())
	require.NoError(t, err)
	require.True(t, started)

	after := sched.Status()
	assert.False(t, after.Running)
	require.NotNil(t, after.LastSyncAt)
	require.NotNil(t, after.LastStats)
	assert.Equal(t, 5, after.LastStats.Processed)
	require.NotNil(t, after.NextSyncDue)
	assert.Equal(t, after.LastSyncAt.Add(12*time.Hour), *after.NextSyncDue)
}

func TestRunNowKeepsLastStatsOnFailure(t *testing.T) {
	stub := newStubSyncService()
	sched := NewSyncScheduler(stub, schedulerConfig(false, 24), quietLogger())

	_, started, err := sched.RunNow(context.Background())
	require.NoError(t, err)
	require.True(t, started)

	stub.err = assert.AnError
	_, started, err = sched.RunNow(context.Background())
	assert.Error(t, err)
	assert.True(t, started)

	status := sched.Status()
	require.NotNil(t, status.LastStats, "failed run keeps the previous stats")
	assert.NotNil(t, status.LastSyncAt)
}

func TestSchedulerLoopRunsWhenDue(t *testing.T) {
	stub := newStubSyncService()
	sched := NewSyncScheduler(stub, schedulerConfig(true, 1), quietLogger())
	sched.checkEvery = 5 * time.Millisecond

	sched.Start()
	select {
	case <-stub.started:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled sync never ran")
	}
	sched.Stop()

	assert.GreaterOrEqual(t, stub.runCount(), 1)
}

func TestSchedulerStartupSync(t *testing.T) {
	stub := newStubSyncService()
	cfg := schedulerConfig(false, 24)
	cfg.SyncOnStartup = true
	sched := NewSyncScheduler(stub, cfg, quietLogger())

	sched.Start()
	select {
	case <-stub.started:
	case <-time.After(2 * time.Second):
		t.Fatal("startup sync never ran")
	}
	sched.Stop()
	assert.Equal(t, 1, stub.runCount())
}

func TestSchedulerDisabledDoesNotRun(t *testing.T) {
	stub := newStubSyncService()
	sched := NewSyncScheduler(stub, schedulerConfig(false, 24), quietLogger())
	sched.checkEvery = 5 * time.Millisecond

	sched.Start()
	time.Sleep(30 * time.Millisecond)
	sched.Stop()

	assert.Equal(t, 0, stub.runCount())
}
