package crud

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storeadmin/src/domain"

	"github.com/google/uuid"
)

// Store é o colaborador de persistência de uma entidade.
// Ausência vira domain.ErrNotFound, unicidade violada vira domain.ErrConflict; o resto chega cru.
type Store[T any] interface {
	Create(ctx context.Context, input domain.Input) (*T, error)
	FindMany(ctx context.Context, args domain.FindManyArgs) ([]T, error)
	FindOne(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, input domain.Input) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

type EventPublisher interface {
	PublishEntityEvent(ctx context.Context, event domain.EntityEvent) error
}

// Service é a camada de mapeamento entre o store e os adapters, uma instância por entidade.
type Service[T any] struct {
	logger    *slog.Logger
	schema    domain.EntitySchema
	store     Store[T]
	publisher EventPublisher
}

// NewService aceita publisher nil (eventos desabilitados).
func NewService[T any](logger *slog.Logger, schema domain.EntitySchema, store Store[T], publisher EventPublisher) *Service[T] {
	return &Service[T]{
		logger:    logger,
		schema:    schema,
		store:     store,
		publisher: publisher,
	}
}

func (s *Service[T]) Schema() domain.EntitySchema {
	return s.schema
}

// publish nunca falha a requisição: o erro só é logado.
func (s *Service[T]) publish(ctx context.Context, action domain.EventAction, record *T, fields []string) {
	if s.publisher == nil || record == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		s.logger.Error("Failed to marshal entity event data", "entity", s.schema.Name, "error", err)
		return
	}

	event := domain.EntityEvent{
		EventID:       uuid.NewString(),
		EventType:     domain.EventType(s.schema.Name, action),
		Entity:        s.schema.Name,
		EntityID:      recordID(record),
		OccurredAt:    time.Now().UTC(),
		FieldsChanged: fields,
		Data:          data,
	}

	if err := s.publisher.PublishEntityEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish entity event",
			"entity", s.schema.Name,
			"entity_id", event.EntityID,
			"event_type", event.EventType,
			"error", err)
	}
}

func recordID[T any](record *T) string {
	if identifiable, ok := any(record).(domain.Identifiable); ok {
		return identifiable.GetID()
	}
	return ""
}
