package scheduler

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/FanSeatApp/FanSeat/app/repository"
	"github.com/FanSeatApp/FanSeat/internal/pkg/cache"
	"github.com/FanSeatApp/FanSeat/internal/pkg/entitlements"
	"github.com/FanSeatApp/FanSeat/internal/pkg/env"
)

const sweepLockKey = "subscriptions:sweep:lock"

// Manager runs the expiration sweep on a fixed interval inside the API
// process. The cron binary (cmd/sweeper) is the canonical trigger; this
// in-process ticker is defense for deployments without cron, and the shared
// Redis lock keeps the two from sweeping concurrently.
type Manager struct {
	sweeper     *entitlements.Sweeper
	sweepTicker *time.Ticker
	stopCh      chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	running     bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global scheduler manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		sweeper := entitlements.NewSweeper(repository.GetGlobalFactory().GetSubscriptionRepository())
		sweeper.Lock = cache.NewLock(sweepLockKey)
		globalManager = &Manager{
			sweeper: sweeper,
			stopCh:  make(chan struct{}),
		}
	})
	return globalManager
}

// SweepInterval reads SWEEP_INTERVAL_HOURS; zero disables the scheduler.
func SweepInterval() time.Duration {
	hours, err := strconv.Atoi(env.GetEnv("SWEEP_INTERVAL_HOURS", "24"))
	if err != nil || hours < 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// Start starts the background sweep loop
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	interval := SweepInterval()
	if interval == 0 {
		log.Info("[Scheduler] Sweep interval is 0, in-process sweeper disabled")
		return
	}

	// Recreate stop channel for each start cycle so the manager can be
	// restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true

	log.Infof("[Scheduler] Starting expiration sweep every %s", interval)
	m.sweepTicker = time.NewTicker(interval)
	m.wg.Add(1)
	go m.sweepWorker()
}

// Stop stops the background sweep loop
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[Scheduler] Stopping expiration sweep...")
	if m.sweepTicker != nil {
		m.sweepTicker.Stop()
	}
	close(m.stopCh)
	m.wg.Wait()
	m.running = false
	log.Info("[Scheduler] Stopped")
}

func (m *Manager) sweepWorker() {
	defer m.wg.Done()

	for {
		select {
		case <-m.sweepTicker.C:
			m.runSweep()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Manager) runSweep() {
	result, err := m.sweeper.RunOnce(context.Background())
	if err != nil {
		log.Errorf("[Scheduler] Sweep run failed: %v", err)
		return
	}
	log.Infof("[Scheduler] Sweep done: scanned=%d expired=%d skipped=%d failed=%d",
		result.Scanned, result.Expired, result.Skipped, result.Failed)
}
