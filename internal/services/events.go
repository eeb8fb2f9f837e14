package services

// EventPublisher publishes booking lifecycle events to the message broker.
// Implemented by pkg/rabbitmq.Client; a nil publisher skips publication.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}
