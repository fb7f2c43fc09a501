package ports

// Topics for the observable events published by the application services.
const (
	TopicPool       = "pool"
	TopicTrade      = "trade"
	TopicDeposit    = "deposit"
	TopicWithdrawal = "withdrawal"
)

// PubSub defines the methods of the notification service the application
// layer publishes observable events to, one message per state change.
type PubSub interface {
	// Subscribe registers interest in a topic and returns the subscription
	// id along with the channel messages are delivered on.
	Subscribe(topic string) (string, <-chan string, error)
	// Unsubscribe removes a subscription by id.
	Unsubscribe(topic, id string) error
	// Publish delivers a message to all subscribers of a topic.
	Publish(topic, message string) error
	// Close tears down all subscriptions.
	Close()
}
