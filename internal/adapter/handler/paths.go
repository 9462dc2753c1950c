package handler

// API paths shared between the router and the tests.
const (
	BasePath = "/api/v1"

	PathItems       = BasePath + "/"
	PathItemsStream = BasePath + "/stream"
	PathItem        = BasePath + "/{sku}"
	PathItemImage   = BasePath + "/{sku}/image"

	PathWSEvents  = BasePath + "/ws/events"
	PathSSEEvents = BasePath + "/sse/events"
)
