package redis

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/event"
	"github.com/redis/go-redis/v9"
)

// EventFeed subscribes to the channels EventPublisher writes to.
type EventFeed struct {
	client *redis.Client
}

var _ event.Feed = (*EventFeed)(nil)

func NewEventFeed(client *redis.Client) *EventFeed {
	return &EventFeed{client: client}
}

func (f *EventFeed) Subscribe(ctx context.Context, id domain.GameID) (event.Subscription, error) {
	pubsub := f.client.Subscribe(ctx, event.Channel(id))

	// wait for the confirmation so no event published after this call is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe to game %s: %w", id, err)
	}

	return newSubscription(pubsub, pubsub.Channel()), nil
}

type subscription struct {
	closer   io.Closer
	messages chan []byte
	done     chan struct{}
	once     sync.Once
}

// newSubscription forwards payloads from in until in is closed, which
// go-redis does when the PubSub is closed.
func newSubscription(closer io.Closer, in <-chan *redis.Message) *subscription {
	s := &subscription{closer: closer, messages: make(chan []byte), done: make(chan struct{})}
	go func() {
		defer close(s.messages)
		for msg := range in {
			select {
			case s.messages <- []byte(msg.Payload):
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func (s *subscription) Messages() <-chan []byte {
	return s.messages
}

func (s *subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.closer.Close()
	})
	return err
}
