package crud

import (
	"context"
	"fmt"

	"storeadmin/src/domain"
)

func (s *Service[T]) Create(ctx context.Context, input domain.Input) (*T, error) {
	record, err := s.store.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("Service.Create - %s: %w", s.schema.Name, err)
	}

	s.publish(ctx, domain.EventCreated, record, input.Fields)

	return record, nil
}
