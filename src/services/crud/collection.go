package crud

import (
	"context"

	"storeadmin/src/domain"
)

// Collection é a visão sem tipo de um Service, usada por quem percorre todas as entidades
// (GraphQL, admin, rotas de relação). Registros são devolvidos como *T.
type Collection interface {
	Schema() domain.EntitySchema
	Create(ctx context.Context, input domain.Input) (any, error)
	FindMany(ctx context.Context, args domain.FindManyArgs) ([]any, error)
	FindOne(ctx context.Context, id string) (any, error)
	Update(ctx context.Context, id string, input domain.Input) (any, error)
	Delete(ctx context.Context, id string) (any, error)
}

type collection[T any] struct {
	service *Service[T]
}

func (s *Service[T]) Collection() Collection {
	return &collection[T]{service: s}
}

func (c *collection[T]) Schema() domain.EntitySchema {
	return c.service.Schema()
}

func (c *collection[T]) Create(ctx context.Context, input domain.Input) (any, error) {
	return erase(c.service.Create(ctx, input))
}

func (c *collection[T]) FindMany(ctx context.Context, args domain.FindManyArgs) ([]any, error) {
	records, err := c.service.FindMany(ctx, args)
	if err != nil {
		return nil, err
	}

	items := make([]any, len(records))
	for i := range records {
		items[i] = &records[i]
	}
	return items, nil
}

func (c *collection[T]) FindOne(ctx context.Context, id string) (any, error) {
	return erase(c.service.FindOne(ctx, id))
}

func (c *collection[T]) Update(ctx context.Context, id string, input domain.Input) (any, error) {
	return erase(c.service.Update(ctx, id, input))
}

func (c *collection[T]) Delete(ctx context.Context, id string) (any, error) {
	return erase(c.service.Delete(ctx, id))
}

// erase evita devolver um (*T)(nil) dentro de uma interface não-nil.
func erase[T any](record *T, err error) (any, error) {
	if err != nil || record == nil {
		return nil, err
	}
	return record, nil
}
