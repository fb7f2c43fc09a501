package application

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/nftswap-network/nftswap-daemon/internal/core/ports"
)

// eventEnvelope wraps an event payload with its type name so subscribers
// can dispatch without guessing the shape.
type eventEnvelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// publishEvent serializes and publishes an observable event. Notification
// failures are logged and swallowed: the state change is already
// committed and must not be rolled back because a subscriber is gone.
func publishEvent(
	pubsub ports.PubSub, topic, eventType string, payload interface{},
) {
	if pubsub == nil {
		return
	}
	message, err := json.Marshal(eventEnvelope{Type: eventType, Payload: payload})
	if err != nil {
		log.WithError(err).Warnf("failed to serialize %s event", eventType)
		return
	}
	if err := pubsub.Publish(topic, string(message)); err != nil {
		log.WithError(err).Warnf("failed to publish %s event", eventType)
	}
}
