package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkalugin/ironlog/internal/logger"
)

// DefaultSyncInterval is used when Start receives a zero or negative
// interval.
const DefaultSyncInterval = 2 * time.Minute

type syncScheduler struct {
	engine SyncEngine
	logger *logger.Logger

	mu       sync.Mutex
	interval time.Duration
	baseCtx  context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewSyncScheduler creates a scheduler that calls engine.PerformSync on a
// ticker while the application is foregrounded. The scheduler is idle until
// Start is called.
func NewSyncScheduler(engine SyncEngine, log *logger.Logger) SyncScheduler {
	return &syncScheduler{engine: engine, logger: log}
}

// Start implements SyncScheduler. It stops any previously running timer,
// then launches a background goroutine that runs one cycle every interval.
// The goroutine exits when ctx is cancelled, Stop is called, or the
// application is backgrounded.
func (j *syncScheduler) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	j.interval = interval
	j.baseCtx = ctx
	j.mu.Unlock()

	j.startTimer(ctx, interval)
}

func (j *syncScheduler) startTimer(ctx context.Context, interval time.Duration) {
	j.mu.Lock()
	timerCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-timerCtx.Done():
				return
			case <-t.C:
				// cycles run on the base context, not the timer
				// context: backgrounding cancels the pending
				// timer but never in-flight network work
				j.engine.PerformSync(ctx)
			}
		}
	}()
}

// EnterBackground implements SyncScheduler. It cancels the pending timer and
// returns without waiting on an in-flight cycle; queued work stays durable in
// the sync queue and the running cycle resolves on its own.
func (j *syncScheduler) EnterBackground() {
	j.logger.Debug().Str("func", "syncScheduler.EnterBackground").
		Msg("backgrounded, cancelling sync timer")
	j.cancelTimer()
}

// EnterForeground implements SyncScheduler. It restarts the timer and
// immediately runs one cycle so work queued while backgrounded replicates
// without waiting for the first tick.
func (j *syncScheduler) EnterForeground(ctx context.Context) {
	j.cancelTimer()

	j.mu.Lock()
	interval := j.interval
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	j.baseCtx = ctx
	j.mu.Unlock()

	j.logger.Debug().Str("func", "syncScheduler.EnterForeground").
		Msg("foregrounded, restarting sync timer")

	j.startTimer(ctx, interval)
	j.engine.PerformSync(ctx)
}

// Stop implements SyncScheduler. It cancels the timer goroutine and blocks
// until it has fully exited. Safe to call when the scheduler is not running.
func (j *syncScheduler) Stop() {
	j.cancelTimer()
	j.wg.Wait()
}

// cancelTimer stops the ticker goroutine's select loop without joining it. A
// goroutine that is mid-cycle exits once its PerformSync returns.
func (j *syncScheduler) cancelTimer() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
