package fakes

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"storeadmin/src/domain"

	"github.com/google/uuid"
)

// MemoryStore é um store em memória guiado pelo EntitySchema.
// Linhas ficam na forma JSON (nomes de campo); relações to_many não são persistidas,
// só registradas em LastInput.
type MemoryStore[T any] struct {
	mu        sync.Mutex
	schema    domain.EntitySchema
	rows      map[string]map[string]any
	ids       []string
	calls     map[string]int
	failures  map[string]error
	LastInput domain.Input
}

func NewMemoryStore[T any](schema domain.EntitySchema) *MemoryStore[T] {
	return &MemoryStore[T]{
		schema:   schema,
		rows:     make(map[string]map[string]any),
		calls:    make(map[string]int),
		failures: make(map[string]error),
	}
}

// FailWith faz o método informado ("Create", "FindOne", ...) retornar err.
func (m *MemoryStore[T]) FailWith(method string, err error) *MemoryStore[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[method] = err
	return m
}

func (m *MemoryStore[T]) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// Seed grava registros prontos, sem contar como chamada.
func (m *MemoryStore[T]) Seed(records ...T) *MemoryStore[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range records {
		row := toRow(record)
		id, _ := row["id"].(string)
		if _, exists := m.rows[id]; !exists {
			m.ids = append(m.ids, id)
		}
		m.rows[id] = row
	}
	return m
}

func (m *MemoryStore[T]) Create(ctx context.Context, input domain.Input) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.enter("Create"); err != nil {
		return nil, err
	}
	m.LastInput = input

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := m.rows[id]; exists {
		return nil, fmt.Errorf("MemoryStore.Create - %s: %w", id, domain.ErrConflict)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	row := map[string]any{"id": id, "createdAt": now, "updatedAt": now}
	m.apply(row, input)

	m.rows[id] = row
	m.ids = append(m.ids, id)

	return fromRow[T](row)
}

func (m *MemoryStore[T]) FindMany(ctx context.Context, args domain.FindManyArgs) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.enter("FindMany"); err != nil {
		return nil, err
	}

	var rows []map[string]any
	for _, id := range m.ids {
		row := m.rows[id]
		if m.matches(row, args.Where) {
			rows = append(rows, row)
		}
	}

	m.sort(rows, args.OrderBy)

	if args.Skip >= len(rows) {
		rows = nil
	} else {
		rows = rows[args.Skip:]
	}
	if args.Take != nil && *args.Take < len(rows) {
		rows = rows[:*args.Take]
	}

	records := make([]T, 0, len(rows))
	for _, row := range rows {
		record, err := fromRow[T](row)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func (m *MemoryStore[T]) FindOne(ctx context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.enter("FindOne"); err != nil {
		return nil, err
	}

	row, exists := m.rows[id]
	if !exists {
		return nil, domain.NewNotFoundError("id", id)
	}
	return fromRow[T](row)
}

func (m *MemoryStore[T]) Update(ctx context.Context, id string, input domain.Input) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.enter("Update"); err != nil {
		return nil, err
	}
	m.LastInput = input

	row, exists := m.rows[id]
	if !exists {
		return nil, domain.NewNotFoundError("id", id)
	}

	m.apply(row, input)
	row["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	return fromRow[T](row)
}

func (m *MemoryStore[T]) Delete(ctx context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.enter("Delete"); err != nil {
		return nil, err
	}

	row, exists := m.rows[id]
	if !exists {
		return nil, domain.NewNotFoundError("id", id)
	}

	delete(m.rows, id)
	for i, existing := range m.ids {
		if existing == id {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			break
		}
	}

	return fromRow[T](row)
}

func (m *MemoryStore[T]) enter(method string) error {
	m.calls[method]++
	return m.failures[method]
}

// apply copia os valores (indexados por coluna) para a linha (indexada por campo).
func (m *MemoryStore[T]) apply(row map[string]any, input domain.Input) {
	for column, value := range input.Values {
		name, isRelation := m.nameOf(column)
		plain := plainValue(value)
		if isRelation && plain != nil {
			plain = map[string]any{"id": plain}
		}
		row[name] = plain
	}
}

func (m *MemoryStore[T]) nameOf(column string) (string, bool) {
	for _, f := range m.schema.Fields {
		if f.Column == column {
			return f.Name, false
		}
	}
	for _, r := range m.schema.Relations {
		if r.Kind == domain.RelationToOne && r.Column == column {
			return r.Name, true
		}
	}
	return column, false
}

func (m *MemoryStore[T]) valueAt(row map[string]any, column string) any {
	name, isRelation := m.nameOf(column)
	value := row[name]
	if isRelation {
		ref, _ := value.(map[string]any)
		return ref["id"]
	}
	return value
}

func (m *MemoryStore[T]) matches(row map[string]any, conditions []domain.Condition) bool {
	for _, c := range conditions {
		if !evaluate(m.valueAt(row, c.Column), c) {
			return false
		}
	}
	return true
}

func (m *MemoryStore[T]) sort(rows []map[string]any, orderBy []domain.OrderBy) {
	if len(orderBy) == 0 {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range orderBy {
			a := m.valueAt(rows[i], o.Column)
			b := m.valueAt(rows[j], o.Column)

			// NULLs por último em asc, primeiro em desc (como no PostgreSQL)
			switch {
			case a == nil && b == nil:
				continue
			case a == nil:
				return o.Direction == domain.SortDesc
			case b == nil:
				return o.Direction != domain.SortDesc
			}

			cmp, ok := compare(a, b)
			if !ok || cmp == 0 {
				continue
			}
			if o.Direction == domain.SortDesc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func evaluate(value any, c domain.Condition) bool {
	switch c.Operator {
	case domain.OpEquals:
		if c.Value == nil {
			return value == nil
		}
		cmp, ok := compare(value, c.Value)
		return ok && cmp == 0
	case domain.OpNot:
		if c.Value == nil {
			return value != nil
		}
		cmp, ok := compare(value, c.Value)
		return !ok || cmp != 0
	case domain.OpIn, domain.OpNotIn:
		found := false
		for _, item := range toSlice(c.Value) {
			if cmp, ok := compare(value, item); ok && cmp == 0 {
				found = true
				break
			}
		}
		if c.Operator == domain.OpIn {
			return found
		}
		return value != nil && !found
	case domain.OpLt, domain.OpLte, domain.OpGt, domain.OpGte:
		cmp, ok := compare(value, c.Value)
		if !ok {
			return false
		}
		switch c.Operator {
		case domain.OpLt:
			return cmp < 0
		case domain.OpLte:
			return cmp <= 0
		case domain.OpGt:
			return cmp > 0
		}
		return cmp >= 0
	case domain.OpContains, domain.OpStartsWith, domain.OpEndsWith:
		text, ok := value.(string)
		needle, _ := c.Value.(string)
		if !ok {
			return false
		}
		switch c.Operator {
		case domain.OpContains:
			return strings.Contains(text, needle)
		case domain.OpStartsWith:
			return strings.HasPrefix(text, needle)
		}
		return strings.HasSuffix(text, needle)
	}
	return false
}

// compare normaliza números para float64 e datas para time.Time.
func compare(a any, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}

	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}

	if bt, ok := b.(time.Time); ok {
		as, _ := a.(string)
		at, err := time.Parse(time.RFC3339Nano, as)
		if err != nil {
			return 0, false
		}
		return at.Compare(bt), true
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if !aok || !bok {
		return 0, false
	}
	return strings.Compare(as, bs), true
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

func toSlice(value any) []any {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}

// plainValue desembrulha os ponteiros tipados de domain.Input.
func plainValue(value any) any {
	switch v := value.(type) {
	case *string:
		if v != nil {
			return *v
		}
	case *int64:
		if v != nil {
			return float64(*v)
		}
	case *float64:
		if v != nil {
			return *v
		}
	case *time.Time:
		if v != nil {
			return v.UTC().Format(time.RFC3339Nano)
		}
	}
	return nil
}

func toRow(record any) map[string]any {
	data, _ := json.Marshal(record)
	row := map[string]any{}
	_ = json.Unmarshal(data, &row)
	return row
}

func fromRow[T any](row map[string]any) (*T, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var record T
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
