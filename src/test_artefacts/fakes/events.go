package fakes

import (
	"context"
	"sync"

	"storeadmin/src/domain"
	"storeadmin/src/infra/kafka"
)

// RecordingPublisher guarda os eventos publicados; Err faz a publicação falhar.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []domain.EntityEvent
	Err    error
}

func (p *RecordingPublisher) PublishEntityEvent(ctx context.Context, event domain.EntityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Events() []domain.EntityEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.EntityEvent{}, p.events...)
}

// Producer implementa events.MessageProducer.
type Producer struct {
	mu       sync.Mutex
	Messages []kafka.Message
	Topics   []string
	Err      error
}

func (p *Producer) Producer(messages []kafka.Message, topic string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Messages = append(p.Messages, messages...)
	p.Topics = append(p.Topics, topic)
	return nil
}
