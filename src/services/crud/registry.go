package crud

import (
	"context"
	"fmt"

	"storeadmin/src/domain"
)

// Registry indexa as collections pelo nome da entidade e resolve relações entre elas.
type Registry struct {
	collections map[string]Collection
	order       []string
}

func NewRegistry(collections ...Collection) *Registry {
	registry := &Registry{collections: make(map[string]Collection, len(collections))}
	for _, c := range collections {
		name := c.Schema().Name
		registry.collections[name] = c
		registry.order = append(registry.order, name)
	}
	return registry
}

func (r *Registry) Get(entity string) (Collection, bool) {
	c, ok := r.collections[entity]
	return c, ok
}

// All retorna as collections na ordem de registro.
func (r *Registry) All() []Collection {
	all := make([]Collection, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.collections[name])
	}
	return all
}

// FindRelated lista os registros do alvo de uma relação to_many do registro informado.
func (r *Registry) FindRelated(ctx context.Context, owner Collection, id string, relationName string, args domain.FindManyArgs) ([]any, error) {
	relation, target, err := r.toManyTarget(owner, relationName)
	if err != nil {
		return nil, err
	}

	if _, err := owner.FindOne(ctx, id); err != nil {
		return nil, err
	}

	field := relation.Name
	if inverse, ok := target.Schema().RelationTo(owner.Schema().Name); ok {
		field = inverse.Name
	}

	return target.FindMany(ctx, args.With(domain.Condition{
		Field:    field,
		Column:   relation.Column,
		Operator: domain.OpEquals,
		Value:    id,
	}))
}

// ChangeRelated aplica connect/disconnect/set numa relação to_many através de um Update do dono.
func (r *Registry) ChangeRelated(ctx context.Context, owner Collection, id string, change domain.RelationChange) error {
	relation, _, err := r.toManyTarget(owner, change.Relation.Name)
	if err != nil {
		return err
	}
	change.Relation = relation

	input := domain.Input{
		Values:    map[string]any{},
		Fields:    []string{relation.Name},
		Relations: []domain.RelationChange{change},
	}

	_, err = owner.Update(ctx, id, input)
	return err
}

func (r *Registry) toManyTarget(owner Collection, relationName string) (domain.Relation, Collection, error) {
	schema := owner.Schema()

	relation, ok := schema.Relation(relationName)
	if !ok || relation.Kind != domain.RelationToMany {
		return domain.Relation{}, nil, fmt.Errorf("Registry - %s has no to-many relation %q: %w", schema.Name, relationName, domain.ErrNotFound)
	}

	target, ok := r.collections[relation.Target]
	if !ok {
		return domain.Relation{}, nil, fmt.Errorf("Registry - entity %s is not registered", relation.Target)
	}

	return relation, target, nil
}
