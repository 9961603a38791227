package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Operator string

const (
	OpEquals     Operator = "equals"
	OpNot        Operator = "not"
	OpIn         Operator = "in"
	OpNotIn      Operator = "notIn"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
)

var stringOperators = map[Operator]bool{
	OpContains:   true,
	OpStartsWith: true,
	OpEndsWith:   true,
}

var knownOperators = map[Operator]bool{
	OpEquals: true, OpNot: true, OpIn: true, OpNotIn: true,
	OpLt: true, OpLte: true, OpGt: true, OpGte: true,
	OpContains: true, OpStartsWith: true, OpEndsWith: true,
}

// Condition é um filtro já resolvido para uma coluna.
// Value é nil apenas com equals/not (IS NULL / IS NOT NULL); in/notIn carregam slices tipados.
type Condition struct {
	Field    string
	Column   string
	Operator Operator
	Value    any
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type OrderBy struct {
	Field     string
	Column    string
	Direction SortDirection
}

// FindManyArgs é repassado sem alterações para o store.
type FindManyArgs struct {
	Where   []Condition
	OrderBy []OrderBy
	Skip    int
	Take    *int
}

// With retorna uma cópia dos argumentos com condições adicionais.
func (a FindManyArgs) With(conditions ...Condition) FindManyArgs {
	where := make([]Condition, 0, len(a.Where)+len(conditions))
	where = append(where, a.Where...)
	where = append(where, conditions...)
	a.Where = where
	return a
}

// ParseFindManyArgs valida where/orderBy/skip/take vindos do HTTP (strings) ou do GraphQL (tipados).
func (s EntitySchema) ParseFindManyArgs(where map[string]any, orderBy []map[string]any, skip any, take any) (FindManyArgs, error) {
	var issues []string

	conditions, err := s.ParseWhere(where)
	if err != nil {
		issues = append(issues, issuesOf(err)...)
	}

	order, err := s.ParseOrderBy(orderBy)
	if err != nil {
		issues = append(issues, issuesOf(err)...)
	}

	args := FindManyArgs{Where: conditions, OrderBy: order}

	if skip != nil {
		n, ok := toNonNegativeInt(skip)
		if !ok {
			issues = append(issues, "skip must be a non-negative integer")
		}
		args.Skip = n
	}

	if take != nil {
		n, ok := toNonNegativeInt(take)
		if !ok {
			issues = append(issues, "take must be a non-negative integer")
		}
		args.Take = &n
	}

	if len(issues) > 0 {
		return FindManyArgs{}, NewValidationError(issues...)
	}

	return args, nil
}

func (s EntitySchema) ParseWhere(where map[string]any) ([]Condition, error) {
	if len(where) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(where))
	for key := range where {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var conditions []Condition
	var issues []string

	for _, key := range keys {
		value := where[key]

		if field, ok := s.Field(key); ok {
			c, fieldIssues := parseFieldFilter(field, value)
			conditions = append(conditions, c...)
			issues = append(issues, fieldIssues...)
			continue
		}

		if relation, ok := s.Relation(key); ok {
			if relation.Kind != RelationToOne {
				issues = append(issues, fmt.Sprintf("where.%s: filtering by a to-many relation is not supported", key))
				continue
			}

			ref, isMap := value.(map[string]any)
			idFilter, hasID := ref["id"]
			if !isMap || !hasID || len(ref) != 1 {
				issues = append(issues, fmt.Sprintf("where.%s must be an object with an id filter", key))
				continue
			}

			fkField := Field{Name: relation.Name, Column: relation.Column, Type: FieldTypeID}
			c, fieldIssues := parseFieldFilter(fkField, idFilter)
			conditions = append(conditions, c...)
			issues = append(issues, fieldIssues...)
			continue
		}

		issues = append(issues, fmt.Sprintf("property where.%s should not exist", key))
	}

	if len(issues) > 0 {
		return nil, NewValidationError(issues...)
	}

	return conditions, nil
}

func parseFieldFilter(field Field, value any) ([]Condition, []string) {
	filter, isMap := value.(map[string]any)
	if !isMap {
		filter = map[string]any{string(OpEquals): value}
	}

	ops := make([]string, 0, len(filter))
	for op := range filter {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	var conditions []Condition
	var issues []string

	for _, name := range ops {
		op := Operator(name)
		raw := filter[name]
		path := fmt.Sprintf("where.%s.%s", field.Name, name)

		if !knownOperators[op] {
			issues = append(issues, fmt.Sprintf("property %s should not exist", path))
			continue
		}

		isText := field.Type == FieldTypeString || field.Type == FieldTypeID
		if stringOperators[op] && !isText {
			issues = append(issues, fmt.Sprintf("%s is only supported on string fields", path))
			continue
		}

		switch op {
		case OpIn, OpNotIn:
			list, err := coerceList(field.Type, raw)
			if err != nil {
				issues = append(issues, fmt.Sprintf("%s %s", path, err.Error()))
				continue
			}
			conditions = append(conditions, Condition{Field: field.Name, Column: field.Column, Operator: op, Value: list})

		default:
			if raw == nil {
				if op != OpEquals && op != OpNot {
					issues = append(issues, fmt.Sprintf("%s must not be null", path))
					continue
				}
				conditions = append(conditions, Condition{Field: field.Name, Column: field.Column, Operator: op})
				continue
			}

			coerced, err := coerceValue(field.Type, raw)
			if err != nil {
				issues = append(issues, fmt.Sprintf("%s %s", path, err.Error()))
				continue
			}
			conditions = append(conditions, Condition{Field: field.Name, Column: field.Column, Operator: op, Value: coerced})
		}
	}

	return conditions, issues
}

func (s EntitySchema) ParseOrderBy(orderBy []map[string]any) ([]OrderBy, error) {
	var order []OrderBy
	var issues []string

	for _, item := range orderBy {
		keys := make([]string, 0, len(item))
		for key := range item {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			field, ok := s.Field(key)
			if !ok {
				if relation, isRelation := s.Relation(key); isRelation && relation.Kind == RelationToOne {
					field = Field{Name: relation.Name, Column: relation.Column, Type: FieldTypeID}
				} else {
					issues = append(issues, fmt.Sprintf("property orderBy.%s should not exist", key))
					continue
				}
			}

			direction, isString := item[key].(string)
			direction = strings.ToLower(direction)
			if !isString || (direction != string(SortAsc) && direction != string(SortDesc)) {
				issues = append(issues, fmt.Sprintf("orderBy.%s must be one of: asc, desc", key))
				continue
			}

			order = append(order, OrderBy{Field: field.Name, Column: field.Column, Direction: SortDirection(direction)})
		}
	}

	if len(issues) > 0 {
		return nil, NewValidationError(issues...)
	}

	return order, nil
}

func coerceValue(fieldType FieldType, value any) (any, error) {
	switch fieldType {
	case FieldTypeID, FieldTypeString:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("must be a string")

	case FieldTypeInt:
		var i int64
		switch v := value.(type) {
		case int:
			i = int64(v)
		case int32:
			i = int64(v)
		case int64:
			i = v
		case float64:
			if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
				return nil, fmt.Errorf("must be an integer number")
			}
			i = int64(v)
		case string:
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("must be an integer number")
			}
			i = parsed
		default:
			return nil, fmt.Errorf("must be an integer number")
		}
		// colunas INTEGER: fora do int32 o pgx falha ao codificar o parâmetro
		if i > math.MaxInt32 || i < math.MinInt32 {
			return nil, fmt.Errorf("must be an integer number")
		}
		return i, nil

	case FieldTypeFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, nil
			}
		}
		return nil, fmt.Errorf("must be a number")

	case FieldTypeDateTime:
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("must be a valid ISO 8601 date string")
	}

	return nil, fmt.Errorf("has an unsupported type")
}

// coerceList aceita []any, []string ou uma string separada por vírgulas (query string).
func coerceList(fieldType FieldType, value any) (any, error) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			items = append(items, s)
		}
	default:
		return nil, fmt.Errorf("must be an array")
	}

	switch fieldType {
	case FieldTypeID, FieldTypeString:
		list := make([]string, 0, len(items))
		for _, item := range items {
			c, err := coerceValue(fieldType, item)
			if err != nil {
				return nil, err
			}
			list = append(list, c.(string))
		}
		return list, nil

	case FieldTypeInt:
		list := make([]int64, 0, len(items))
		for _, item := range items {
			c, err := coerceValue(fieldType, item)
			if err != nil {
				return nil, err
			}
			list = append(list, c.(int64))
		}
		return list, nil

	case FieldTypeFloat:
		list := make([]float64, 0, len(items))
		for _, item := range items {
			c, err := coerceValue(fieldType, item)
			if err != nil {
				return nil, err
			}
			list = append(list, c.(float64))
		}
		return list, nil

	case FieldTypeDateTime:
		list := make([]time.Time, 0, len(items))
		for _, item := range items {
			c, err := coerceValue(fieldType, item)
			if err != nil {
				return nil, err
			}
			list = append(list, c.(time.Time))
		}
		return list, nil
	}

	return nil, fmt.Errorf("has an unsupported type")
}

func toNonNegativeInt(value any) (int, bool) {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}

	if n < 0 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func issuesOf(err error) []string {
	if ve, ok := err.(*ValidationError); ok {
		return ve.Issues
	}
	return []string{err.Error()}
}
