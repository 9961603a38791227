package gql

import (
	"storeadmin/src/domain"

	"github.com/graphql-go/graphql"
)

var sortOrderEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "SortOrder",
	Values: graphql.EnumValueConfigMap{
		"asc":  &graphql.EnumValueConfig{Value: string(domain.SortAsc)},
		"desc": &graphql.EnumValueConfig{Value: string(domain.SortDesc)},
	},
})

var (
	stringFilter   = newFilter("StringFilter", graphql.String, true)
	intFilter      = newFilter("IntFilter", graphql.Int, false)
	floatFilter    = newFilter("FloatFilter", graphql.Float, false)
	dateTimeFilter = newFilter("DateTimeFilter", graphql.DateTime, false)
)

func newFilter(name string, scalar graphql.Type, withStringOperators bool) *graphql.InputObject {
	fields := graphql.InputObjectConfigFieldMap{
		string(domain.OpEquals): &graphql.InputObjectFieldConfig{Type: scalar},
		string(domain.OpNot):    &graphql.InputObjectFieldConfig{Type: scalar},
		string(domain.OpIn):     &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(scalar))},
		string(domain.OpNotIn):  &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(scalar))},
		string(domain.OpLt):     &graphql.InputObjectFieldConfig{Type: scalar},
		string(domain.OpLte):    &graphql.InputObjectFieldConfig{Type: scalar},
		string(domain.OpGt):     &graphql.InputObjectFieldConfig{Type: scalar},
		string(domain.OpGte):    &graphql.InputObjectFieldConfig{Type: scalar},
	}

	if withStringOperators {
		fields[string(domain.OpContains)] = &graphql.InputObjectFieldConfig{Type: scalar}
		fields[string(domain.OpStartsWith)] = &graphql.InputObjectFieldConfig{Type: scalar}
		fields[string(domain.OpEndsWith)] = &graphql.InputObjectFieldConfig{Type: scalar}
	}

	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   name,
		Fields: fields,
	})
}

func scalarType(fieldType domain.FieldType) graphql.Output {
	switch fieldType {
	case domain.FieldTypeInt:
		return graphql.Int
	case domain.FieldTypeFloat:
		return graphql.Float
	case domain.FieldTypeDateTime:
		return graphql.DateTime
	}
	return graphql.String
}

func filterType(fieldType domain.FieldType) *graphql.InputObject {
	switch fieldType {
	case domain.FieldTypeInt:
		return intFilter
	case domain.FieldTypeFloat:
		return floatFilter
	case domain.FieldTypeDateTime:
		return dateTimeFilter
	}
	return stringFilter
}

// inputScalar retorna o tipo de entrada equivalente (os scalars do graphql-go servem nos dois sentidos).
func inputScalar(fieldType domain.FieldType) graphql.Input {
	switch fieldType {
	case domain.FieldTypeInt:
		return graphql.Int
	case domain.FieldTypeFloat:
		return graphql.Float
	case domain.FieldTypeDateTime:
		return graphql.DateTime
	}
	return graphql.String
}
