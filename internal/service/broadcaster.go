package service

// Broadcaster pushes feedback progress events to connected observers.
// Implemented by ws.Hub.
type Broadcaster interface {
	BroadcastToWatchers(itemID string, event string, payload interface{})
}
