package port

import "github.com/toomuch2learn/catalogue-service/internal/core/domain"

type EventPublisher interface {
	// Publish enqueues an event for asynchronous fan-out. Must not block.
	Publish(ev domain.ItemEvent)
}
