// Package pubsub is an in-process implementation of ports.PubSub
// delivering event messages over buffered channels.
package pubsub

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/nftswap-network/nftswap-daemon/internal/core/ports"
)

// ErrSubscriptionNotFound ...
var ErrSubscriptionNotFound = errors.New("subscription not found")

const bufferSize = 16

type subscriber struct {
	id string
	ch chan string
}

type service struct {
	lock        *sync.RWMutex
	subscribers map[string][]subscriber
	closed      bool
}

// NewService returns an in-process pubsub service.
func NewService() ports.PubSub {
	return &service{
		lock:        &sync.RWMutex{},
		subscribers: map[string][]subscriber{},
	}
}

func (s *service) Subscribe(topic string) (string, <-chan string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return "", nil, errors.New("pubsub service is closed")
	}

	sub := subscriber{id: uuid.New().String(), ch: make(chan string, bufferSize)}
	s.subscribers[topic] = append(s.subscribers[topic], sub)
	return sub.id, sub.ch, nil
}

func (s *service) Unsubscribe(topic, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	subs := s.subscribers[topic]
	for i, sub := range subs {
		if sub.id == id {
			close(sub.ch)
			s.subscribers[topic] = append(subs[:i], subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers the message to every subscriber of the topic. Slow
// subscribers with a full buffer miss the message rather than block the
// publisher, which runs on the swap path.
func (s *service) Publish(topic, message string) error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	for _, sub := range s.subscribers[topic] {
		select {
		case sub.ch <- message:
		default:
		}
	}
	return nil
}

func (s *service) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for topic, subs := range s.subscribers {
		for _, sub := range subs {
			close(sub.ch)
		}
		delete(s.subscribers, topic)
	}
}
