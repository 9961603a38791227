package gql

import (
	"fmt"
	"log/slog"
	"strings"

	"storeadmin/src/domain"
	"storeadmin/src/services/crud"

	"github.com/graphql-go/graphql"
)

// entityTypes agrupa os tipos GraphQL gerados para uma entidade.
type entityTypes struct {
	object      *graphql.Object
	whereUnique *graphql.InputObject
	where       *graphql.InputObject
	orderBy     *graphql.InputObject
	createInput *graphql.InputObject
	updateInput *graphql.InputObject
}

type schemaBuilder struct {
	logger   *slog.Logger
	registry *crud.Registry
	types    map[string]*entityTypes
}

// NewSchema monta o schema GraphQL a partir das entidades registradas.
// Para cada entidade: addresses/address, createAddress/updateAddress/deleteAddress.
func NewSchema(logger *slog.Logger, registry *crud.Registry) (graphql.Schema, error) {
	b := &schemaBuilder{
		logger:   logger,
		registry: registry,
		types:    make(map[string]*entityTypes),
	}

	collections := registry.All()

	// WhereUniqueInput primeiro: é referenciado pelos inputs das outras entidades.
	for _, c := range collections {
		schema := c.Schema()
		b.types[schema.Name] = &entityTypes{
			whereUnique: graphql.NewInputObject(graphql.InputObjectConfig{
				Name: schema.Name + "WhereUniqueInput",
				Fields: graphql.InputObjectConfigFieldMap{
					"id": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
				},
			}),
		}
	}

	for _, c := range collections {
		types := b.types[c.Schema().Name]
		types.object = b.buildObject(c)
		types.where = b.buildWhereInput(c.Schema())
		types.orderBy = b.buildOrderByInput(c.Schema())
		types.createInput = b.buildDataInput(c.Schema(), true)
		types.updateInput = b.buildDataInput(c.Schema(), false)
	}

	query := graphql.Fields{}
	mutation := graphql.Fields{}

	for _, c := range collections {
		schema := c.Schema()
		types := b.types[schema.Name]

		query[lowerFirst(schema.Plural)] = &graphql.Field{
			Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(types.object))),
			Args:    b.findManyArgs(schema.Name),
			Resolve: b.resolveFindMany(c),
		}

		query[lowerFirst(schema.Name)] = &graphql.Field{
			Type: types.object,
			Args: graphql.FieldConfigArgument{
				"where": &graphql.ArgumentConfig{Type: graphql.NewNonNull(types.whereUnique)},
			},
			Resolve: b.resolveFindOne(c),
		}

		mutation["create"+schema.Name] = &graphql.Field{
			Type: graphql.NewNonNull(types.object),
			Args: graphql.FieldConfigArgument{
				"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(types.createInput)},
			},
			Resolve: b.resolveCreate(c),
		}

		mutation["update"+schema.Name] = &graphql.Field{
			Type: types.object,
			Args: graphql.FieldConfigArgument{
				"where": &graphql.ArgumentConfig{Type: graphql.NewNonNull(types.whereUnique)},
				"data":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(types.updateInput)},
			},
			Resolve: b.resolveUpdate(c),
		}

		mutation["delete"+schema.Name] = &graphql.Field{
			Type: types.object,
			Args: graphql.FieldConfigArgument{
				"where": &graphql.ArgumentConfig{Type: graphql.NewNonNull(types.whereUnique)},
			},
			Resolve: b.resolveDelete(c),
		}
	}

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: query}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: mutation}),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("gql.NewSchema - failed to build schema: %w", err)
	}

	return schema, nil
}

// buildObject usa FieldsThunk porque as entidades se referenciam mutuamente.
func (b *schemaBuilder) buildObject(c crud.Collection) *graphql.Object {
	schema := c.Schema()

	return graphql.NewObject(graphql.ObjectConfig{
		Name: schema.Name,
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			fields := graphql.Fields{}

			for _, f := range schema.Fields {
				var fieldType graphql.Output = scalarType(f.Type)
				if f.Type == domain.FieldTypeID || f.ReadOnly {
					fieldType = graphql.NewNonNull(fieldType)
				}
				fields[f.Name] = &graphql.Field{Type: fieldType}
			}

			for _, relation := range schema.Relations {
				target, ok := b.registry.Get(relation.Target)
				if !ok {
					continue
				}
				targetTypes := b.types[relation.Target]

				if relation.Kind == domain.RelationToOne {
					fields[relation.Name] = &graphql.Field{
						Type:    targetTypes.object,
						Resolve: b.resolveToOne(target),
					}
					continue
				}

				fields[relation.Name] = &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(targetTypes.object))),
					Args:    b.findManyArgs(relation.Target),
					Resolve: b.resolveToMany(c, relation),
				}
			}

			return fields
		}),
	})
}

func (b *schemaBuilder) buildWhereInput(schema domain.EntitySchema) *graphql.InputObject {
	fields := graphql.InputObjectConfigFieldMap{}

	for _, f := range schema.Fields {
		fields[f.Name] = &graphql.InputObjectFieldConfig{Type: filterType(f.Type)}
	}

	for _, relation := range schema.Relations {
		if relation.Kind != domain.RelationToOne {
			continue
		}
		if targetTypes, ok := b.types[relation.Target]; ok {
			fields[relation.Name] = &graphql.InputObjectFieldConfig{Type: targetTypes.whereUnique}
		}
	}

	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   schema.Name + "WhereInput",
		Fields: fields,
	})
}

func (b *schemaBuilder) buildOrderByInput(schema domain.EntitySchema) *graphql.InputObject {
	fields := graphql.InputObjectConfigFieldMap{}
	for _, f := range schema.Fields {
		fields[f.Name] = &graphql.InputObjectFieldConfig{Type: sortOrderEnum}
	}

	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   schema.Name + "OrderByInput",
		Fields: fields,
	})
}

// buildDataInput gera CreateInput (create=true) ou UpdateInput.
func (b *schemaBuilder) buildDataInput(schema domain.EntitySchema, create bool) *graphql.InputObject {
	suffix := "UpdateInput"
	if create {
		suffix = "CreateInput"
	}

	fields := graphql.InputObjectConfigFieldMap{}

	for _, f := range schema.Fields {
		if f.ReadOnly || (f.Type == domain.FieldTypeID && !create) {
			continue
		}
		fields[f.Name] = &graphql.InputObjectFieldConfig{Type: inputScalar(f.Type)}
	}

	for _, relation := range schema.Relations {
		targetTypes, ok := b.types[relation.Target]
		if !ok {
			continue
		}

		if relation.Kind == domain.RelationToOne {
			fields[relation.Name] = &graphql.InputObjectFieldConfig{Type: targetTypes.whereUnique}
			continue
		}

		refs := graphql.NewList(graphql.NewNonNull(targetTypes.whereUnique))
		relationFields := graphql.InputObjectConfigFieldMap{
			"connect": &graphql.InputObjectFieldConfig{Type: refs},
		}
		if !create {
			relationFields["disconnect"] = &graphql.InputObjectFieldConfig{Type: refs}
			relationFields["set"] = &graphql.InputObjectFieldConfig{Type: refs}
		}

		fields[relation.Name] = &graphql.InputObjectFieldConfig{
			Type: graphql.NewInputObject(graphql.InputObjectConfig{
				Name:   schema.Name + upperFirst(relation.Name) + suffix,
				Fields: relationFields,
			}),
		}
	}

	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   schema.Name + suffix,
		Fields: fields,
	})
}

func (b *schemaBuilder) findManyArgs(entity string) graphql.FieldConfigArgument {
	types := b.types[entity]
	return graphql.FieldConfigArgument{
		"where":   &graphql.ArgumentConfig{Type: types.where},
		"orderBy": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(types.orderBy))},
		"skip":    &graphql.ArgumentConfig{Type: graphql.Int},
		"take":    &graphql.ArgumentConfig{Type: graphql.Int},
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
