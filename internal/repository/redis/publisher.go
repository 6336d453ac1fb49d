package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/event"
	"github.com/redis/go-redis/v9"
)

type publisherClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// EventPublisher sends every domain event, wrapped in an event.Envelope, to
// the pub/sub channel of its game.
type EventPublisher struct {
	client publisherClient
}

var _ domain.DomainEventPublisher = (*EventPublisher)(nil)

func NewEventPublisher(client *redis.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

func (p *EventPublisher) Publish(ctx context.Context, events []domain.DomainEvent) error {
	for _, e := range events {
		envelope, err := event.NewEnvelope(e)
		if err != nil {
			return err
		}
		data, err := json.Marshal(envelope)
		if err != nil {
			return fmt.Errorf("encode envelope %s: %w", envelope.Name, err)
		}
		if err := p.client.Publish(ctx, event.Channel(envelope.GameID), data).Err(); err != nil {
			return fmt.Errorf("publish %s for game %s: %w", envelope.Name, envelope.GameID, err)
		}
	}
	return nil
}
