package event

import (
	"context"
	"errors"

	"github.com/iamasit07/connectfour/internal/domain"
	"github.com/iamasit07/connectfour/internal/logging"
	"go.uber.org/zap"
)

// Log writes every event to the logger. It is the publisher used when Redis
// is disabled.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logging.OrNop(logger)}
}

func (p *Log) Publish(_ context.Context, events []domain.DomainEvent) error {
	for _, e := range events {
		envelope, err := NewEnvelope(e)
		if err != nil {
			return err
		}
		p.logger.Info("domain event",
			zap.String("name", envelope.Name),
			zap.String("game_id", envelope.GameID.String()),
			zap.ByteString("payload", envelope.Payload),
		)
	}
	return nil
}

// Fanout hands the same batch to every publisher. All publishers run even if
// one fails; the errors are joined.
type Fanout []domain.DomainEventPublisher

func (f Fanout) Publish(ctx context.Context, events []domain.DomainEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
