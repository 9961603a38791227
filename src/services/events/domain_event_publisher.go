package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"storeadmin/src/domain"
	"storeadmin/src/infra/kafka"
)

const (
	SourceService = "storeadmin-api"
	SchemaVersion = "v1"
)

// MessageProducer é implementado por *kafka.KafkaClient.
type MessageProducer interface {
	Producer(messages []kafka.Message, topic string) error
}

type DomainEventPublisher struct {
	logger   *slog.Logger
	producer MessageProducer
	topic    string
}

func NewDomainEventPublisher(
	logger *slog.Logger,
	producer MessageProducer,
	topic string,
) *DomainEventPublisher {
	return &DomainEventPublisher{
		logger:   logger,
		producer: producer,
		topic:    topic,
	}
}

// PublishDomainEvents publica um lote de eventos, particionados pelo id da entidade.
func (p *DomainEventPublisher) PublishDomainEvents(ctx context.Context, events []domain.EntityEvent) error {
	if len(events) == 0 {
		return nil
	}

	p.logger.Debug("Publishing domain events batch", "count", len(events))

	kafkaMessages := make([]kafka.Message, 0, len(events))

	for _, event := range events {
		eventBytes, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("Failed to marshal domain event",
				"error", err,
				"event_id", event.EventID,
				"entity_id", event.EntityID)
			continue
		}

		kafkaMessages = append(kafkaMessages, kafka.Message{
			Key:     event.EntityID,
			Value:   eventBytes,
			Headers: p.createEventHeaders(event),
		})

		p.logger.Debug("Prepared domain event for publishing",
			"event_id", event.EventID,
			"entity_id", event.EntityID,
			"event_type", event.EventType)
	}

	if err := p.producer.Producer(kafkaMessages, p.topic); err != nil {
		p.logger.Error("Failed to publish domain events to Kafka",
			"error", err,
			"topic", p.topic,
			"events_count", len(kafkaMessages))
		return fmt.Errorf("failed to publish domain events to topic %s: %w", p.topic, err)
	}

	p.logger.Info("Successfully published domain events",
		"topic", p.topic,
		"events_count", len(kafkaMessages))

	return nil
}

func (p *DomainEventPublisher) PublishEntityEvent(ctx context.Context, event domain.EntityEvent) error {
	return p.PublishDomainEvents(ctx, []domain.EntityEvent{event})
}

// createEventHeaders monta os headers usados pelos consumidores para filtrar sem desserializar.
func (p *DomainEventPublisher) createEventHeaders(event domain.EntityEvent) map[string]string {
	headers := map[string]string{
		"event_type":     event.EventType,
		"entity_type":    event.Entity,
		"source_service": SourceService,
		"schema_version": SchemaVersion,
		"event_id":       event.EventID,
	}

	if len(event.FieldsChanged) > 0 {
		headers["fields_changed"] = strings.Join(event.FieldsChanged, ",")
	}

	return headers
}
