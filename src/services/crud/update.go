package crud

import (
	"context"
	"fmt"

	"storeadmin/src/domain"
)

// Update confirma a existência antes de escrever; registro ausente não chega ao store.Update.
func (s *Service[T]) Update(ctx context.Context, id string, input domain.Input) (*T, error) {
	if _, err := s.lookup(ctx, id); err != nil {
		return nil, err
	}

	record, err := s.store.Update(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("Service.Update - %s: %w", s.schema.Name, err)
	}

	s.publish(ctx, domain.EventUpdated, record, input.Fields)

	return record, nil
}
