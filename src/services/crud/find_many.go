package crud

import (
	"context"
	"fmt"

	"storeadmin/src/domain"
)

// FindMany repassa os argumentos sem alteração; lista vazia nunca é "not found".
func (s *Service[T]) FindMany(ctx context.Context, args domain.FindManyArgs) ([]T, error) {
	records, err := s.store.FindMany(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("Service.FindMany - %s: %w", s.schema.Name, err)
	}

	if records == nil {
		records = []T{}
	}

	return records, nil
}
