// Package heartbeat tracks replication liveness from the heartbeat rows a
// monitor writes into the stream.
package heartbeat

import (
	"context"
	"sync"
	"time"

	"github.com/tailpoint/tailpoint/logger"
	"github.com/tailpoint/tailpoint/position"
	"github.com/tailpoint/tailpoint/safego"
)

// Tracker keeps the latest heartbeat seen by the tailing loop. The tailing
// goroutine calls Observe while monitors read Last and Lag concurrently.
type Tracker struct {
	mu   sync.RWMutex
	last position.HeartbeatPosition
	seen bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe records a heartbeat and reports whether it advanced the tracker.
// Re-observing the heartbeat the tracker already holds (a replay after
// reconnect) does not advance it, so callers can skip checkpointing an
// unchanged position. Serials are expected to increase; a regression is
// logged and recorded anyway, the stream stays the source of truth after a
// monitor restart.
func (t *Tracker) Observe(hb position.HeartbeatPosition) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seen && t.last.Equal(hb) {
		return false
	}
	if t.seen && hb.Serial < t.last.Serial {
		logger.Warnf("heartbeat serial went backwards: %d -> %d", t.last.Serial, hb.Serial)
	}

	t.last = hb
	t.seen = true
	return true
}

// Last returns the most recent heartbeat and whether one has been seen.
func (t *Tracker) Last() (position.HeartbeatPosition, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last, t.seen
}

// Lag returns how far behind now the last heartbeat timestamp is. Zero when
// no heartbeat has been seen yet, or when the monitor's clock runs ahead.
func (t *Tracker) Lag(now time.Time) time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.seen {
		return 0
	}
	lag := now.Sub(t.last.Timestamp)
	if lag < 0 {
		return 0
	}
	return lag
}

// Watch logs the tracker state every interval until ctx is done.
func (t *Tracker) Watch(ctx context.Context, every time.Duration) {
	go func() {
		defer safego.Recovery(false)

		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Debug("heartbeat watch stopped")
				return
			case <-ticker.C:
				last, seen := t.Last()
				if !seen {
					logger.Info("no heartbeat observed yet")
					continue
				}
				logger.Infof("heartbeat serial %d at %s (%s:%d), lag %s",
					last.Serial, last.Timestamp.Format(time.RFC3339), last.LogFile, last.LogPos, t.Lag(time.Now()))
			}
		}
	}()
}
