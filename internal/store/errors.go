package store

import "errors"

var (
	// ErrQueueWriteFailed indicates the sync queue slot could not be
	// persisted; queued work stays as it was before the attempt.
	ErrQueueWriteFailed = errors.New("failed to persist sync queue")
)
