package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	syncQueueSize   = 256
	syncMaxAttempts = 5
	syncBaseBackoff = 2 * time.Second
)

// syncTask is one pending remote write. The op closure captures the
// specific repository call; resource names the table for logging and
// change events.
type syncTask struct {
	resource string
	op       func(ctx context.Context) error
	attempts int
}

// Status reports the health of the remote sync queue. Requests never fail
// on remote errors, so this is the only place sync trouble becomes
// visible.
type Status struct {
	Pending   int       `json:"pending"`
	Dropped   int       `json:"dropped"`
	LastError string    `json:"lastError,omitempty"`
	LastSync  time.Time `json:"lastSync,omitempty"`
}

// syncQueue retries remote writes with linear backoff. Tasks that exhaust
// their attempts are dropped and counted; the local copy remains the
// source of truth either way.
type syncQueue struct {
	tasks chan syncTask
	lg    *zap.Logger

	mu       sync.Mutex
	pending  int
	dropped  int
	lastErr  string
	lastSync time.Time
}

func newSyncQueue(lg *zap.Logger) *syncQueue {
	return &syncQueue{
		tasks: make(chan syncTask, syncQueueSize),
		lg:    lg,
	}
}

// enqueue registers a remote write. When the queue is full the task is
// dropped immediately rather than blocking a request.
func (q *syncQueue) enqueue(resource string, op func(ctx context.Context) error) {
	q.mu.Lock()
	q.pending++
	q.mu.Unlock()

	select {
	case q.tasks <- syncTask{resource: resource, op: op}:
	default:
		q.taskDone(false, "sync queue full")
		q.lg.Warn("sync queue full, dropping task", zap.String("resource", resource))
	}
}

func (q *syncQueue) taskDone(ok bool, errMsg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending--
	if ok {
		q.lastSync = time.Now()
		return
	}
	q.dropped++
	q.lastErr = errMsg
}

func (q *syncQueue) status() Status {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Status{
		Pending:   q.pending,
		Dropped:   q.dropped,
		LastError: q.lastErr,
		LastSync:  q.lastSync,
	}
}

// run drains the queue until the context is cancelled. Failed tasks are
// requeued with backoff up to syncMaxAttempts.
func (q *syncQueue) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-q.tasks:
			if err := t.op(ctx); err != nil {
				t.attempts++
				if t.attempts >= syncMaxAttempts {
					q.taskDone(false, err.Error())
					q.lg.Error("remote sync failed, giving up",
						zap.String("resource", t.resource),
						zap.Int("attempts", t.attempts),
						zap.Error(err),
					)
					continue
				}

				q.lg.Warn("remote sync failed, will retry",
					zap.String("resource", t.resource),
					zap.Int("attempt", t.attempts),
					zap.Error(err),
				)

				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Duration(t.attempts) * syncBaseBackoff):
				}

				select {
				case q.tasks <- t:
				default:
					q.taskDone(false, err.Error())
				}
				continue
			}
			q.taskDone(true, "")
		}
	}
}

// StartSync launches the remote sync worker. A no-op in local-only mode.
func (s *Store) StartSync(ctx context.Context) {
	if s.remote == nil {
		return
	}
	go s.queue.run(ctx)
}

// SyncStatus reports the current remote sync queue health.
func (s *Store) SyncStatus() Status {
	return s.queue.status()
}

// enqueueSync schedules a remote write when a remote backend is
// configured.
func (s *Store) enqueueSync(resource string, op func(ctx context.Context) error) {
	if s.remote == nil {
		return
	}
	s.queue.enqueue(resource, op)
}
