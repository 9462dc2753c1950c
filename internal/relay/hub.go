package relay

import (
	"sync"

	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
	"github.com/toomuch2learn/catalogue-service/internal/metrics"
)

// Hub multicasts one upstream event stream to any number of downstream
// subscribers. Each subscriber owns an unbounded buffer drained by its own
// pump goroutine, so a slow reader never stalls the hub or its peers and a
// disconnect tears down only that subscription. Late joiners receive no
// backlog.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint64]*subscriber
	next uint64
}

type subscriber struct {
	mu      sync.Mutex
	backlog []domain.ItemEvent
	notify  chan struct{}
	out     chan domain.ItemEvent
	done    chan struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]*subscriber)}
}

// Broadcast hands ev to every current subscriber. Called only from the relay
// dispatch loop, so events land in each subscriber's buffer in dispatch order.
func (h *Hub) Broadcast(ev domain.ItemEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs {
		s.push(ev)
	}
}

// Subscribe registers a new downstream subscriber and returns its event
// channel plus an unsubscribe func. The channel is closed after unsubscribing.
// Unsubscribing twice is harmless.
func (h *Hub) Subscribe() (<-chan domain.ItemEvent, func()) {
	s := &subscriber{
		notify: make(chan struct{}, 1),
		out:    make(chan domain.ItemEvent),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = s
	metrics.HubSubscribers.Set(float64(len(h.subs)))
	h.mu.Unlock()

	go s.pump()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			metrics.HubSubscribers.Set(float64(len(h.subs)))
			h.mu.Unlock()
			close(s.done)
		})
	}
	return s.out, cancel
}

// Subscribers returns the current downstream count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (s *subscriber) push(ev domain.ItemEvent) {
	s.mu.Lock()
	s.backlog = append(s.backlog, ev)
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// pump moves buffered events to the out channel at the reader's pace.
func (s *subscriber) pump() {
	defer close(s.out)
	for {
		s.mu.Lock()
		if len(s.backlog) > 0 {
			ev := s.backlog[0]
			s.backlog = s.backlog[1:]
			s.mu.Unlock()
			select {
			case s.out <- ev:
			case <-s.done:
				return
			}
			continue
		}
		s.mu.Unlock()
		select {
		case <-s.notify:
		case <-s.done:
			return
		}
	}
}
