package crud

import (
	"context"
	"errors"
	"fmt"

	"storeadmin/src/domain"
)

// uncachedReader é implementado por stores com cache.
type uncachedReader[T any] interface {
	FindOneUncached(ctx context.Context, id string) (*T, error)
}

func (s *Service[T]) FindOne(ctx context.Context, id string) (*T, error) {
	return s.findOne(ctx, id, s.store.FindOne)
}

// lookup confirma a existência antes de uma escrita sem passar pelo cache,
// para que a leitura não regrave no cache o estado que a escrita vai mudar.
func (s *Service[T]) lookup(ctx context.Context, id string) (*T, error) {
	if reader, ok := s.store.(uncachedReader[T]); ok {
		return s.findOne(ctx, id, reader.FindOneUncached)
	}
	return s.findOne(ctx, id, s.store.FindOne)
}

func (s *Service[T]) findOne(ctx context.Context, id string, read func(context.Context, string) (*T, error)) (*T, error) {
	record, err := read(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("id", id)
		}
		return nil, fmt.Errorf("Service.FindOne - %s: %w", s.schema.Name, err)
	}

	if record == nil {
		return nil, domain.NewNotFoundError("id", id)
	}

	return record, nil
}
