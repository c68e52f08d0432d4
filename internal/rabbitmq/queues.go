package rabbitmq

// Exchange is the direct exchange all newsletter jobs go through.
const Exchange = "newsletters"

// Routing keys and queue names of the send pipeline.
const (
	SendRoutingKey = "send"
	SendQueue      = "newsletter.send"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNewsletterQueues lists the queues the sender worker consumes.
func GetNewsletterQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: SendQueue, RoutingKey: SendRoutingKey},
	}
}
