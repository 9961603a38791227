package gql

import (
	"encoding/json"
	"errors"

	"storeadmin/src/domain"
	"storeadmin/src/services/crud"

	"github.com/graphql-go/graphql"
)

func (b *schemaBuilder) resolveFindMany(c crud.Collection) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		args, err := parseFindManyArgs(c.Schema(), p.Args)
		if err != nil {
			return nil, b.toGraphQLError(err)
		}

		records, err := c.FindMany(p.Context, args)
		if err != nil {
			return nil, b.toGraphQLError(err)
		}
		return records, nil
	}
}

// resolveFindOne retorna null quando o registro não existe.
func (b *schemaBuilder) resolveFindOne(c crud.Collection) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		record, err := c.FindOne(p.Context, whereID(p.Args))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil
			}
			return nil, b.toGraphQLError(err)
		}
		return record, nil
	}
}

func (b *schemaBuilder) resolveCreate(c crud.Collection) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		raw, err := rawData(p.Args["data"])
		if err != nil {
			return nil, b.toGraphQLError(err)
		}

		input, err := c.Schema().ParseCreateInput(raw)
		if err != nil {
			return nil, b.toGraphQLError(err)
		}

		record, err := c.Create(p.Context, input)
		if err != nil {
			return nil, b.toGraphQLError(err)
		}
		return record, nil
	}
}

func (b *schemaBuilder) resolveUpdate(c crud.Collection) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		raw, err := rawData(p.Args["data"])
		if err != nil {
			return nil, b.toGraphQLError(err)
		}

		input, err := c.Schema().ParseUpdateInput(raw)
		if err != nil {
			return nil, b.toGraphQLError(err)
		}

		record, err := c.Update(p.Context, whereID(p.Args), input)
		if err != nil {
			return nil, b.toGraphQLError(err)
		}
		return record, nil
	}
}

func (b *schemaBuilder) resolveDelete(c crud.Collection) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		record, err := c.Delete(p.Context, whereID(p.Args))
		if err != nil {
			return nil, b.toGraphQLError(err)
		}
		return record, nil
	}
}

// resolveToOne lê a referência {"id"} do registro pai e busca o alvo; referência pendente vira null.
func (b *schemaBuilder) resolveToOne(target crud.Collection) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		ref, err := graphql.DefaultResolveFn(p)
		if err != nil {
			return nil, err
		}

		id := refID(ref)
		if id == "" {
			return nil, nil
		}

		record, err := target.FindOne(p.Context, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil
			}
			return nil, b.toGraphQLError(err)
		}
		return record, nil
	}
}

func (b *schemaBuilder) resolveToMany(owner crud.Collection, relation domain.Relation) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		identifiable, ok := p.Source.(domain.Identifiable)
		if !ok {
			return []any{}, nil
		}

		target, ok := b.registry.Get(relation.Target)
		if !ok {
			return []any{}, nil
		}

		args, err := parseFindManyArgs(target.Schema(), p.Args)
		if err != nil {
			return nil, b.toGraphQLError(err)
		}

		records, err := b.registry.FindRelated(p.Context, owner, identifiable.GetID(), relation.Name, args)
		if err != nil {
			return nil, b.toGraphQLError(err)
		}
		return records, nil
	}
}

func parseFindManyArgs(schema domain.EntitySchema, args map[string]interface{}) (domain.FindManyArgs, error) {
	where, _ := args["where"].(map[string]interface{})

	var orderBy []map[string]any
	if items, ok := args["orderBy"].([]interface{}); ok {
		for _, item := range items {
			if order, isMap := item.(map[string]interface{}); isMap {
				orderBy = append(orderBy, order)
			}
		}
	}

	return schema.ParseFindManyArgs(where, orderBy, args["skip"], args["take"])
}

func whereID(args map[string]interface{}) string {
	where, _ := args["where"].(map[string]interface{})
	id, _ := where["id"].(string)
	return id
}

func refID(ref interface{}) string {
	switch r := ref.(type) {
	case map[string]interface{}:
		id, _ := r["id"].(string)
		return id
	case nil:
		return ""
	}

	// *entities.Ref e afins: passa pelo JSON para não depender do tipo concreto
	data, err := json.Marshal(ref)
	if err != nil {
		return ""
	}
	var decoded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return ""
	}
	return decoded.ID
}

// rawData converte o argumento data (já coerido pelo graphql-go) para o formato aceito pelo parse de Input.
func rawData(data interface{}) (map[string]json.RawMessage, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, domain.NewValidationError("data must be an object")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &raw); err != nil || raw == nil {
		return nil, domain.NewValidationError("data must be an object")
	}
	return raw, nil
}
