package http

import (
	"fmt"
	"net/url"
	"strings"

	"storeadmin/src/domain"
)

// findManyQuery é o resultado do parse da query string em notação de colchetes:
// ?where[city][equals]=Lisbon&where[customer][id]=c1&orderBy[createdAt]=desc&skip=10&take=5
type findManyQuery struct {
	Where   map[string]any
	OrderBy []map[string]any
	Skip    any
	Take    any
}

// parseFindManyQuery lê a query crua para preservar a ordem dos orderBy (url.Values não preserva).
func parseFindManyQuery(rawQuery string) (findManyQuery, error) {
	query := findManyQuery{Where: map[string]any{}}
	var issues []string

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			issues = append(issues, fmt.Sprintf("invalid query parameter %q", rawKey))
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			issues = append(issues, fmt.Sprintf("invalid value for query parameter %s", key))
			continue
		}

		path, ok := splitBrackets(key)
		if !ok {
			issues = append(issues, fmt.Sprintf("invalid query parameter %q", key))
			continue
		}

		switch path[0] {
		case "where":
			if len(path) < 2 {
				issues = append(issues, "where must be an object")
				continue
			}
			setPath(query.Where, path[1:], value)

		case "orderBy":
			// orderBy[campo]=asc ou orderBy[0][campo]=asc
			field := path[len(path)-1]
			if len(path) < 2 || field == "" {
				issues = append(issues, "orderBy must be an object")
				continue
			}
			query.OrderBy = append(query.OrderBy, map[string]any{field: value})

		case "skip":
			query.Skip = value

		case "take":
			query.Take = value
		}
	}

	if len(issues) > 0 {
		return findManyQuery{}, domain.NewValidationError(issues...)
	}

	return query, nil
}

func (q findManyQuery) Args(schema domain.EntitySchema) (domain.FindManyArgs, error) {
	return schema.ParseFindManyArgs(q.Where, q.OrderBy, q.Skip, q.Take)
}

// splitBrackets transforma "where[city][in][]" em ["where", "city", "in", ""].
func splitBrackets(key string) ([]string, bool) {
	head, rest, hasBrackets := strings.Cut(key, "[")
	if head == "" {
		return nil, false
	}

	path := []string{head}
	if !hasBrackets {
		return path, true
	}

	rest = "[" + rest
	for rest != "" {
		if rest[0] != '[' {
			return nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, false
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}

	return path, true
}

// setPath grava o valor no mapa aninhado. Um segmento vazio no fim ("[]") acumula em lista,
// assim como chaves repetidas.
func setPath(target map[string]any, path []string, value string) {
	key := path[0]

	if len(path) == 1 || (len(path) == 2 && path[1] == "") {
		appendOnly := len(path) == 2
		switch current := target[key].(type) {
		case nil:
			if appendOnly {
				target[key] = []any{value}
			} else {
				target[key] = value
			}
		case []any:
			target[key] = append(current, value)
		case string:
			target[key] = []any{current, value}
		default:
			// já existe um objeto nesse caminho; o valor solto vira equals
			if nested, ok := current.(map[string]any); ok {
				nested[string(domain.OpEquals)] = value
			}
		}
		return
	}

	nested, ok := target[key].(map[string]any)
	if !ok {
		nested = map[string]any{}
		if scalar, isString := target[key].(string); isString {
			nested[string(domain.OpEquals)] = scalar
		}
		target[key] = nested
	}

	setPath(nested, path[1:], value)
}
