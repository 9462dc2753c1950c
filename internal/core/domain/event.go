package domain

type EventType string

const (
	EventCreated EventType = "CREATED"
	EventUpdated EventType = "UPDATED"
)

// ItemEvent notifies that a catalogue item was created or updated. Item is a
// snapshot taken after the store write succeeded; consumers must not mutate it.
type ItemEvent struct {
	Type EventType
	Item CatalogueItem
}
