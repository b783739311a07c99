package events

// NopPublisher discards every event. Used when no broker is configured.
type NopPublisher struct{}

// Publish implements the publisher interface and does nothing.
func (NopPublisher) Publish(topic string, event any) error {
	return nil
}
