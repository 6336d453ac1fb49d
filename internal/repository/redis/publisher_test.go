package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/event"
	"github.com/redis/go-redis/v9"
)

const gameID = domain.GameID("0190a6c4-7b5e-7c3a-9f1e-3b2d4c5e6f70")

type published struct {
	channel string
	message []byte
}

type fakeClient struct {
	published []published
	err       error
}

func (c *fakeClient) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	if c.err != nil {
		return redis.NewIntResult(0, c.err)
	}
	c.published = append(c.published, published{channel: channel, message: message.([]byte)})
	return redis.NewIntResult(1, nil)
}

func TestEventPublisherWritesEnvelopesInOrder(t *testing.T) {
	client := &fakeClient{}
	publisher := &EventPublisher{client: client}

	events := []domain.DomainEvent{
		domain.PlayerMoved{GameID: gameID, Point: domain.Point{X: 0, Y: 0}, Stone: domain.Red},
		domain.GameDrawn{GameID: gameID},
	}
	if err := publisher.Publish(context.Background(), events); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(client.published) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(client.published))
	}
	for i, name := range []string{"PlayerMoved", "GameDrawn"} {
		msg := client.published[i]
		if msg.channel != "game:"+string(gameID) {
			t.Fatalf("message %d went to %q", i, msg.channel)
		}
		var envelope event.Envelope
		if err := json.Unmarshal(msg.message, &envelope); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if envelope.Name != name || envelope.GameID != gameID {
			t.Fatalf("message %d = %+v, want %s", i, envelope, name)
		}
	}
}

func TestEventPublisherReturnsClientErrors(t *testing.T) {
	boom := errors.New("connection reset")
	publisher := &EventPublisher{client: &fakeClient{err: boom}}

	err := publisher.Publish(context.Background(), []domain.DomainEvent{domain.GameDrawn{GameID: gameID}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected client error, got %v", err)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestSubscriptionForwardsPayloads(t *testing.T) {
	in := make(chan *redis.Message, 2)
	closed := 0
	sub := newSubscription(closerFunc(func() error {
		closed++
		close(in)
		return nil
	}), in)

	in <- &redis.Message{Channel: "game:x", Payload: `{"name":"GameDrawn"}`}

	select {
	case msg := <-sub.Messages():
		if string(msg) != `{"name":"GameDrawn"}` {
			t.Fatalf("payload = %s", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("no message forwarded")
	}

	if err := sub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	_ = sub.Close()
	if closed != 1 {
		t.Fatalf("closer called %d times", closed)
	}

	select {
	case _, ok := <-sub.Messages():
		if ok {
			t.Fatalf("expected the channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatalf("messages channel was not closed")
	}
}
