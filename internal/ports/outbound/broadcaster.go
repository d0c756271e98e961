package outbound

import "context"

// EventType represents the type of event being broadcasted
type EventType string

const (
	EventTypeOfferReceived EventType = "offer.received"
	EventTypeOfferAccepted EventType = "offer.accepted"
	EventTypeOfferDeclined EventType = "offer.declined"
	EventTypeError         EventType = "error"
)

// Event represents a broadcast event addressed to a single user
type Event struct {
	Type      EventType              `json:"type"`
	UserID    string                 `json:"user_id"`
	Data      map[string]interface{} `json:"data"`
	Timestamp int64                  `json:"timestamp"`
}

// Broadcaster defines the interface for delivering events to connected
// clients. Delivery is best-effort; publishing never blocks request handling.
type Broadcaster interface {
	// Subscribe subscribes a client to events addressed to a user. A client
	// subscribed from multiple devices receives all events on its own channel.
	Subscribe(ctx context.Context, userID, clientID string, eventChan chan Event) error

	// Unsubscribe removes a client's subscription for a user
	Unsubscribe(ctx context.Context, userID, clientID string) error

	// Publish publishes an event to all clients subscribed to the user
	Publish(ctx context.Context, userID string, event Event) error

	// IsSubscribed checks if a client is subscribed to the user's events
	IsSubscribed(ctx context.Context, userID, clientID string) bool
}
