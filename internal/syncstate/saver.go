package syncstate

import (
	"context"
	"sync"
	"time"

	"yt-curator/internal/models"
)

// DefaultQuietPeriod matches the client-side debounce window.
const DefaultQuietPeriod = 500 * time.Millisecond

// Saver coalesces state writes: repeated Schedule calls within the
// quiet period collapse into a single store write of the latest state.
// Flush forces the pending write out immediately, for shutdown and
// end-of-batch paths where losing a queued write is not acceptable.
type Saver struct {
	manager *Manager
	quiet   time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *models.SyncState
}

// NewSaver wraps a manager with write coalescing.
func NewSaver(manager *Manager, quiet time.Duration) *Saver {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Saver{manager: manager, quiet: quiet}
}

// Schedule queues state for writing after the quiet period. A newer
// Schedule replaces the queued state and restarts the timer.
func (s *Saver) Schedule(state *models.SyncState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = state
	if s.timer == nil {
		s.timer = time.AfterFunc(s.quiet, func() { s.Flush(context.Background()) })
	} else {
		s.timer.Reset(s.quiet)
	}
}

// Flush writes the queued state now, if any. With nothing queued it is
// a successful no-op.
func (s *Saver) Flush(ctx context.Context) Result {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	state := s.pending
	s.pending = nil
	s.mu.Unlock()

	if state == nil {
		return Result{Success: true}
	}
	return s.manager.PutState(ctx, state)
}
