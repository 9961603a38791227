package crud

import (
	"context"
	"fmt"

	"storeadmin/src/domain"
)

// Delete retorna o registro como estava antes da remoção.
func (s *Service[T]) Delete(ctx context.Context, id string) (*T, error) {
	if _, err := s.lookup(ctx, id); err != nil {
		return nil, err
	}

	record, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Service.Delete - %s: %w", s.schema.Name, err)
	}

	s.publish(ctx, domain.EventDeleted, record, nil)

	return record, nil
}
