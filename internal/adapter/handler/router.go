package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires all endpoints and wraps them with the shared middleware.
func NewRouter(h *HTTPHandler, events *EventsHandler, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+BasePath+"/{$}", h.List)
	mux.HandleFunc("POST "+BasePath+"/{$}", h.Create)
	mux.HandleFunc("GET "+PathItemsStream, h.Stream)
	mux.HandleFunc("GET "+PathItem, h.Get)
	mux.HandleFunc("PUT "+PathItem, h.Update)
	mux.HandleFunc("DELETE "+PathItem, h.Delete)
	mux.HandleFunc("POST "+PathItemImage, h.UploadImage)

	mux.HandleFunc("GET "+PathWSEvents, events.ServeWS)
	mux.HandleFunc("GET "+PathSSEEvents, events.ServeSSE)

	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/", h.NotFound)

	return WithRequestID(WithLogging(log, mux))
}
