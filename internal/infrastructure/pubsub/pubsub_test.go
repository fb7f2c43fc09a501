package pubsub_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nftswap-network/nftswap-daemon/internal/infrastructure/pubsub"
)

func TestPubSub(t *testing.T) {
	svc := pubsub.NewService()
	defer svc.Close()

	id1, ch1, err := svc.Subscribe("trade")
	require.NoError(t, err)
	_, ch2, err := svc.Subscribe("trade")
	require.NoError(t, err)
	_, poolCh, err := svc.Subscribe("pool")
	require.NoError(t, err)

	require.NoError(t, svc.Publish("trade", "swap executed"))
	require.Equal(t, "swap executed", <-ch1)
	require.Equal(t, "swap executed", <-ch2)
	select {
	case msg := <-poolCh:
		t.Fatalf("unexpected message on pool topic: %s", msg)
	default:
	}

	require.NoError(t, svc.Unsubscribe("trade", id1))
	err = svc.Unsubscribe("trade", id1)
	require.EqualError(t, err, pubsub.ErrSubscriptionNotFound.Error())

	// The channel of a removed subscription is closed.
	_, open := <-ch1
	require.False(t, open)

	require.NoError(t, svc.Publish("trade", "second swap"))
	require.Equal(t, "second swap", <-ch2)
}

func TestPubSubSlowSubscriber(t *testing.T) {
	svc := pubsub.NewService()
	defer svc.Close()

	_, ch, err := svc.Subscribe("trade")
	require.NoError(t, err)

	// Overrun the buffer; the publisher must never block.
	for i := 0; i < 100; i++ {
		require.NoError(t, svc.Publish("trade", "msg"))
	}
	require.Equal(t, "msg", <-ch)
}

func TestPubSubClose(t *testing.T) {
	svc := pubsub.NewService()

	_, ch, err := svc.Subscribe("trade")
	require.NoError(t, err)

	svc.Close()
	_, open := <-ch
	require.False(t, open)

	_, _, err = svc.Subscribe("trade")
	require.Error(t, err)
}
