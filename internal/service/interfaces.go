package service

import (
	"context"
	"time"

	"github.com/pkalugin/ironlog/models"
)

// DataService is the only entry point domain code uses to read and mutate
// local data. Every mutating call commits synchronously to the local record
// store, appends a replication intent to the sync queue, and returns —
// replication is always asynchronous and best-effort from the caller's
// perspective. No method ever returns an error: reads degrade to
// (zero, false), writes to false, meaning "try again later".
type DataService interface {
	// GetUserProfile returns the signed-in user's identity slot.
	GetUserProfile(ctx context.Context) (models.UserProfile, bool)

	// SetUserProfile stores the identity used to address remote documents.
	// Identity is local-only bookkeeping and is not replicated.
	SetUserProfile(ctx context.Context, profile models.UserProfile) bool

	// GetPreferences returns the singleton preferences document.
	GetPreferences(ctx context.Context) (models.Preferences, bool)

	// SavePreferences commits preferences locally and queues an upsert of
	// the singleton preferences document.
	SavePreferences(ctx context.Context, prefs models.Preferences) bool

	// DeletePreferences removes the local slot and queues a remote delete.
	DeletePreferences(ctx context.Context) bool

	// GetTemplates returns every stored workout template.
	GetTemplates(ctx context.Context) ([]models.WorkoutTemplate, bool)

	// SaveTemplate inserts or replaces the template (matched by ID,
	// assigning a fresh ID when empty) and queues an upsert.
	SaveTemplate(ctx context.Context, tpl models.WorkoutTemplate) (models.WorkoutTemplate, bool)

	// DeleteTemplate removes the template locally and queues a remote
	// delete. Deleting an unknown ID is a successful no-op locally but
	// still queues the delete (idempotent at the remote).
	DeleteTemplate(ctx context.Context, id string) bool

	// GetSessions returns the completed session history, newest first.
	GetSessions(ctx context.Context) ([]models.WorkoutSession, bool)

	// GetSessionByID returns a single history entry.
	GetSessionByID(ctx context.Context, id string) (models.WorkoutSession, bool)

	// StartSession fills the current-session slot. A session already in
	// progress is replaced. The returned session carries its assigned ID
	// and start time. Nothing is queued: in-progress sessions do not
	// replicate.
	StartSession(ctx context.Context, session models.WorkoutSession) (models.WorkoutSession, bool)

	// GetCurrentSession returns the in-progress session, if any.
	GetCurrentSession(ctx context.Context) (models.WorkoutSession, bool)

	// UpdateCurrentSession overwrites the in-progress session.
	UpdateCurrentSession(ctx context.Context, session models.WorkoutSession) bool

	// CompleteSession stamps the completion marker, moves the current
	// session into history, clears the current slot — one combined
	// effect, never partial — and queues an upsert of the finished
	// session.
	CompleteSession(ctx context.Context) (models.WorkoutSession, bool)

	// DiscardSession drops the in-progress session without touching
	// history or the queue.
	DiscardSession(ctx context.Context) bool

	// ClearAll wipes every local slot, including the queue and watermark.
	// Used on sign-out.
	ClearAll(ctx context.Context) bool
}

// SyncEngine runs upload-then-download replication cycles against the
// remote document backend. It holds no timer of its own; scheduling belongs
// to [SyncScheduler].
type SyncEngine interface {
	// PerformSync executes one cycle: preflight gate, upload phase over a
	// FIFO queue snapshot, download phase per collection, watermark
	// advance. A skipped cycle (unconfigured, offline, no credential) is
	// a successful no-op. Per-item failures are reported in the result
	// with the cycle still successful; only a wholesale cycle failure
	// yields Success false. Concurrent calls are latched: at most one
	// cycle runs at a time, a second caller returns immediately.
	PerformSync(ctx context.Context) models.SyncResult

	// Status returns the current engine status.
	Status() models.SyncStatus

	// Subscribe registers fn for status-change notifications and returns
	// its unsubscribe function. Emission is an in-process fan-out, one
	// call per transition.
	Subscribe(fn func(models.SyncStatus)) (unsubscribe func())

	// LastResult returns the most recent cycle result, if any cycle has
	// completed.
	LastResult() (models.SyncResult, bool)
}

// SyncScheduler owns the recurring sync timer and the foreground/background
// lifecycle gating around it.
type SyncScheduler interface {
	// Start launches the scheduler in the foreground state: a cycle runs
	// every interval, defaulting to 2 minutes if interval is zero or
	// negative. Any previously running scheduler is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// EnterBackground cancels the pending timer. In-flight cycle work is
	// not interrupted; queued items stay durable for the next foreground
	// period.
	EnterBackground()

	// EnterForeground restarts the timer and immediately runs one cycle.
	EnterForeground(ctx context.Context)

	// Stop tears the scheduler down and blocks until its goroutine has
	// exited. Safe to call when not running.
	Stop()
}
