// Package relay decouples catalogue mutations from event fan-out. A Relay
// accepts events from any request goroutine without blocking, and a single
// dispatch goroutine drains them in arrival order into the broadcast Hub.
package relay

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
	"github.com/toomuch2learn/catalogue-service/internal/metrics"
)

type Relay struct {
	hub *Hub
	log *zap.Logger

	mu      sync.Mutex
	backlog []domain.ItemEvent
	notify  chan struct{}
}

func NewRelay(hub *Hub, log *zap.Logger) *Relay {
	return &Relay{
		hub:    hub,
		log:    log,
		notify: make(chan struct{}, 1),
	}
}

// Publish enqueues an event. It never blocks the caller and never drops:
// the backlog is unbounded, ordered by arrival only.
func (r *Relay) Publish(ev domain.ItemEvent) {
	r.mu.Lock()
	r.backlog = append(r.backlog, ev)
	depth := len(r.backlog)
	r.mu.Unlock()

	metrics.EventsPublished.WithLabelValues(string(ev.Type)).Inc()
	metrics.RelayQueueDepth.Set(float64(depth))

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// Start runs the dispatch loop until ctx is cancelled. Exactly one loop per
// Relay; events still queued at cancellation are lost.
func (r *Relay) Start(ctx context.Context) {
	go r.dispatch(ctx)
}

func (r *Relay) dispatch(ctx context.Context) {
	for {
		ev, ok := r.take()
		if !ok {
			select {
			case <-ctx.Done():
				r.log.Info("relay dispatch loop stopped", zap.Int("undelivered", r.QueueDepth()))
				return
			case <-r.notify:
			}
			continue
		}
		// One event at a time keeps the total order every subscriber sees.
		r.hub.Broadcast(ev)
	}
}

func (r *Relay) take() (domain.ItemEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.backlog) == 0 {
		return domain.ItemEvent{}, false
	}
	ev := r.backlog[0]
	r.backlog = r.backlog[1:]
	metrics.RelayQueueDepth.Set(float64(len(r.backlog)))
	return ev, true
}

// QueueDepth returns the number of events awaiting dispatch.
func (r *Relay) QueueDepth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.backlog)
}
