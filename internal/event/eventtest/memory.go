// Package eventtest holds publishers for tests.
package eventtest

import (
	"context"
	"sync"

	"github.com/iamasit07/connectfour/internal/domain"
)

// Memory keeps published events in order.
type Memory struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (m *Memory) Publish(_ context.Context, events []domain.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *Memory) Events() []domain.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.DomainEvent(nil), m.events...)
}
