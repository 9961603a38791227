package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
)

// Input é o payload de escrita já validado contra o EntitySchema.
// Values usa ponteiros tipados (*string, *int64, *float64, *time.Time); ponteiro nil grava NULL.
type Input struct {
	ID        string
	Values    map[string]any
	Fields    []string
	Relations []RelationChange
}

// RelationChange descreve operações connect/disconnect/set sobre uma relação to_many.
type RelationChange struct {
	Relation   Relation
	Connect    []string
	Disconnect []string
	Set        []string
	Replace    bool
}

// AffectedIDs retorna os ids do alvo tocados pela mudança (sem os removidos implicitamente por set).
func (rc RelationChange) AffectedIDs() []string {
	ids := make([]string, 0, len(rc.Connect)+len(rc.Disconnect)+len(rc.Set))
	ids = append(ids, rc.Connect...)
	ids = append(ids, rc.Disconnect...)
	ids = append(ids, rc.Set...)
	return ids
}

func (i Input) IsEmpty() bool {
	return len(i.Values) == 0 && len(i.Relations) == 0
}

func (s EntitySchema) ParseCreateInput(raw map[string]json.RawMessage) (Input, error) {
	return s.parseInput(raw, true)
}

func (s EntitySchema) ParseUpdateInput(raw map[string]json.RawMessage) (Input, error) {
	return s.parseInput(raw, false)
}

func (s EntitySchema) parseInput(raw map[string]json.RawMessage, create bool) (Input, error) {
	input := Input{Values: make(map[string]any)}
	var issues []string

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]

		if field, ok := s.Field(key); ok {
			switch {
			case field.Type == FieldTypeID:
				if !create {
					issues = append(issues, fmt.Sprintf("property %s should not exist", key))
					continue
				}
				var id string
				if err := json.Unmarshal(value, &id); err != nil || id == "" {
					issues = append(issues, fmt.Sprintf("%s must be a non-empty string", key))
					continue
				}
				input.ID = id

			case field.ReadOnly:
				// createdAt/updatedAt são definidos pelo banco.

			default:
				decoded, issue := decodeScalar(field, value)
				if issue != "" {
					issues = append(issues, issue)
					continue
				}
				input.Values[field.Column] = decoded
				input.Fields = append(input.Fields, field.Name)
			}
			continue
		}

		if relation, ok := s.Relation(key); ok {
			if relation.Kind == RelationToOne {
				id, issue := decodeToOne(relation, value)
				if issue != "" {
					issues = append(issues, issue)
					continue
				}
				input.Values[relation.Column] = id
				input.Fields = append(input.Fields, relation.Name)
				continue
			}

			change, relationIssues := decodeToMany(relation, value, create)
			if len(relationIssues) > 0 {
				issues = append(issues, relationIssues...)
				continue
			}
			input.Relations = append(input.Relations, change)
			input.Fields = append(input.Fields, relation.Name)
			continue
		}

		issues = append(issues, fmt.Sprintf("property %s should not exist", key))
	}

	if len(issues) > 0 {
		return Input{}, NewValidationError(issues...)
	}

	return input, nil
}

func decodeScalar(field Field, value json.RawMessage) (any, string) {
	isNull := string(value) == "null"

	switch field.Type {
	case FieldTypeString:
		if isNull {
			return (*string)(nil), ""
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Sprintf("%s must be a string", field.Name)
		}
		return &s, ""

	case FieldTypeInt:
		if isNull {
			return (*int64)(nil), ""
		}
		var f float64
		if err := json.Unmarshal(value, &f); err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
			return nil, fmt.Sprintf("%s must be an integer number", field.Name)
		}
		i := int64(f)
		return &i, ""

	case FieldTypeFloat:
		if isNull {
			return (*float64)(nil), ""
		}
		var f float64
		if err := json.Unmarshal(value, &f); err != nil {
			return nil, fmt.Sprintf("%s must be a number", field.Name)
		}
		return &f, ""

	case FieldTypeDateTime:
		if isNull {
			return (*time.Time)(nil), ""
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Sprintf("%s must be a valid ISO 8601 date string", field.Name)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Sprintf("%s must be a valid ISO 8601 date string", field.Name)
		}
		return &t, ""
	}

	return nil, fmt.Sprintf("%s has an unsupported type", field.Name)
}

type uniqueRef struct {
	ID *string `json:"id"`
}

func decodeUniqueRef(value json.RawMessage) (string, bool) {
	var ref uniqueRef
	if err := json.Unmarshal(value, &ref); err != nil || ref.ID == nil || *ref.ID == "" {
		return "", false
	}
	return *ref.ID, true
}

func decodeToOne(relation Relation, value json.RawMessage) (*string, string) {
	if string(value) == "null" {
		return nil, ""
	}
	id, ok := decodeUniqueRef(value)
	if !ok {
		return nil, fmt.Sprintf("%s must be an object with a non-empty id", relation.Name)
	}
	return &id, ""
}

func decodeToMany(relation Relation, value json.RawMessage, create bool) (RelationChange, []string) {
	change := RelationChange{Relation: relation}

	var ops map[string]json.RawMessage
	if err := json.Unmarshal(value, &ops); err != nil || ops == nil {
		return change, []string{fmt.Sprintf("%s must be an object", relation.Name)}
	}

	var issues []string
	decodeList := func(op string, raw json.RawMessage) []string {
		var refs []json.RawMessage
		if err := json.Unmarshal(raw, &refs); err != nil {
			issues = append(issues, fmt.Sprintf("%s.%s must be an array", relation.Name, op))
			return nil
		}
		ids := make([]string, 0, len(refs))
		for _, ref := range refs {
			id, ok := decodeUniqueRef(ref)
			if !ok {
				issues = append(issues, fmt.Sprintf("%s.%s must contain objects with a non-empty id", relation.Name, op))
				return nil
			}
			ids = append(ids, id)
		}
		return ids
	}

	names := make([]string, 0, len(ops))
	for op := range ops {
		names = append(names, op)
	}
	sort.Strings(names)

	for _, op := range names {
		raw := ops[op]
		switch {
		case op == "connect":
			change.Connect = decodeList(op, raw)
		case op == "disconnect" && !create:
			change.Disconnect = decodeList(op, raw)
		case op == "set" && !create:
			change.Set = decodeList(op, raw)
			change.Replace = true
		default:
			issues = append(issues, fmt.Sprintf("property %s.%s should not exist", relation.Name, op))
		}
	}

	return change, issues
}
