package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
	"github.com/toomuch2learn/catalogue-service/internal/relay"
)

// EventsHandler fans the live catalogue event feed out to WebSocket and SSE
// connections. Each connection gets its own hub subscription; a failing or
// disconnecting client tears down only that subscription.
type EventsHandler struct {
	hub      *relay.Hub
	sseDelay time.Duration
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewEventsHandler(hub *relay.Hub, sseDelay time.Duration, log *zap.Logger) *EventsHandler {
	return &EventsHandler{
		hub:      hub,
		sseDelay: sseDelay,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// eventFrame renders an event as a JSON object with exactly one key: the
// event type, valued with the item snapshot.
func eventFrame(ev domain.ItemEvent) ([]byte, error) {
	return json.Marshal(map[domain.EventType]domain.CatalogueItem{ev.Type: ev.Item})
}

// ServeWS upgrades the connection and pushes each event as a text frame, as
// fast as the transport accepts them.
func (h *EventsHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	// The client is not expected to send anything; the read loop only
	// notices the disconnect.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			frame, err := eventFrame(ev)
			if err != nil {
				h.log.Error("encode event frame", zap.String("sku", ev.Item.SKU), zap.Error(err))
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-disconnected:
			return
		}
	}
}

// ServeSSE streams the same event feed as server-sent events with a fixed
// gap between elements.
func (h *EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, Error{
			Code:        ErrCodeRuntime,
			Message:     "Internal error",
			Description: "response writer does not support streaming",
		})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			frame, err := eventFrame(ev)
			if err != nil {
				h.log.Error("encode event frame", zap.String("sku", ev.Item.SKU), zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", frame); err != nil {
				return
			}
			flusher.Flush()

			select {
			case <-r.Context().Done():
				return
			case <-time.After(h.sseDelay):
			}
		case <-r.Context().Done():
			return
		}
	}
}
