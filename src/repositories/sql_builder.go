package repositories

import (
	"fmt"
	"sort"
	"strings"

	"storeadmin/src/domain"
	"storeadmin/src/infra/postgres"

	"github.com/jackc/pgx/v5"
)

// sqlBuilder monta as queries a partir do EntitySchema.
// Nomes de tabela e coluna vêm sempre do schema, nunca da requisição; mesmo assim são quotados.
type sqlBuilder struct {
	schema domain.EntitySchema
	args   []any
}

func newSQLBuilder(schema domain.EntitySchema) *sqlBuilder {
	return &sqlBuilder{schema: schema}
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// bind registra o argumento e retorna o placeholder correspondente ($n).
func (b *sqlBuilder) bind(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *sqlBuilder) returning() string {
	columns := b.schema.Columns()
	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = quote(column)
	}
	return strings.Join(quoted, ", ")
}

func (b *sqlBuilder) Select(args domain.FindManyArgs) (string, []any) {
	var query strings.Builder

	fmt.Fprintf(&query, "SELECT %s FROM %s", b.returning(), quote(b.schema.Table))

	if where := b.where(args.Where); where != "" {
		query.WriteString(" WHERE ")
		query.WriteString(where)
	}

	if len(args.OrderBy) > 0 {
		order := make([]string, len(args.OrderBy))
		for i, o := range args.OrderBy {
			direction := "ASC"
			if o.Direction == domain.SortDesc {
				direction = "DESC"
			}
			order[i] = fmt.Sprintf("%s %s", quote(o.Column), direction)
		}
		query.WriteString(" ORDER BY ")
		query.WriteString(strings.Join(order, ", "))
	}

	if args.Take != nil {
		fmt.Fprintf(&query, " LIMIT %s", b.bind(*args.Take))
	}

	if args.Skip > 0 {
		fmt.Fprintf(&query, " OFFSET %s", b.bind(args.Skip))
	}

	return query.String(), b.args
}

func (b *sqlBuilder) SelectByID(id string) (string, []any) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s",
		b.returning(), quote(b.schema.Table), quote("id"), b.bind(id))
	return query, b.args
}

func (b *sqlBuilder) Insert(id string, input domain.Input) (string, []any) {
	columns := []string{quote("id")}
	values := []string{b.bind(id)}

	for _, column := range sortedColumns(input.Values) {
		columns = append(columns, quote(column))
		values = append(values, b.bind(postgres.ToParam(input.Values[column])))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		quote(b.schema.Table), strings.Join(columns, ", "), strings.Join(values, ", "), b.returning())
	return query, b.args
}

// Update sempre toca updated_at, mesmo sem colunas alteradas (ex: só mudanças de relação).
func (b *sqlBuilder) Update(id string, input domain.Input) (string, []any) {
	var sets []string
	for _, column := range sortedColumns(input.Values) {
		sets = append(sets, fmt.Sprintf("%s = %s", quote(column), b.bind(postgres.ToParam(input.Values[column]))))
	}
	sets = append(sets, fmt.Sprintf("%s = NOW()", quote("updated_at")))

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s RETURNING %s",
		quote(b.schema.Table), strings.Join(sets, ", "), quote("id"), b.bind(id), b.returning())
	return query, b.args
}

func (b *sqlBuilder) Delete(id string) (string, []any) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s RETURNING %s",
		quote(b.schema.Table), quote("id"), b.bind(id), b.returning())
	return query, b.args
}

func (b *sqlBuilder) where(conditions []domain.Condition) string {
	if len(conditions) == 0 {
		return ""
	}

	clauses := make([]string, 0, len(conditions))
	for _, c := range conditions {
		clauses = append(clauses, b.condition(c))
	}
	return strings.Join(clauses, " AND ")
}

func (b *sqlBuilder) condition(c domain.Condition) string {
	column := quote(c.Column)

	switch c.Operator {
	case domain.OpEquals:
		if c.Value == nil {
			return column + " IS NULL"
		}
		return fmt.Sprintf("%s = %s", column, b.bind(c.Value))
	case domain.OpNot:
		if c.Value == nil {
			return column + " IS NOT NULL"
		}
		return fmt.Sprintf("%s IS DISTINCT FROM %s", column, b.bind(c.Value))
	case domain.OpIn:
		return fmt.Sprintf("%s = ANY(%s)", column, b.bind(c.Value))
	case domain.OpNotIn:
		return fmt.Sprintf("NOT (%s = ANY(%s))", column, b.bind(c.Value))
	case domain.OpLt:
		return fmt.Sprintf("%s < %s", column, b.bind(c.Value))
	case domain.OpLte:
		return fmt.Sprintf("%s <= %s", column, b.bind(c.Value))
	case domain.OpGt:
		return fmt.Sprintf("%s > %s", column, b.bind(c.Value))
	case domain.OpGte:
		return fmt.Sprintf("%s >= %s", column, b.bind(c.Value))
	case domain.OpContains:
		return fmt.Sprintf("%s LIKE %s", column, b.bind("%"+escapeLike(c.Value)+"%"))
	case domain.OpStartsWith:
		return fmt.Sprintf("%s LIKE %s", column, b.bind(escapeLike(c.Value)+"%"))
	case domain.OpEndsWith:
		return fmt.Sprintf("%s LIKE %s", column, b.bind("%"+escapeLike(c.Value)))
	}

	// Operadores desconhecidos já são rejeitados no parse; aqui não casa nada.
	return "FALSE"
}

// escapeLike neutraliza os curingas do LIKE (o escape padrão do PostgreSQL é a barra invertida).
func escapeLike(value any) string {
	s, _ := value.(string)
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func sortedColumns(values map[string]any) []string {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

// Queries das relações to_many: a FK fica na tabela alvo.

func connectQuery(relation domain.Relation) string {
	return fmt.Sprintf("UPDATE %s SET %s = $1, %s = NOW() WHERE %s = ANY($2) RETURNING %s",
		quote(relation.TargetTable), quote(relation.Column), quote("updated_at"), quote("id"), quote("id"))
}

func disconnectQuery(relation domain.Relation) string {
	return fmt.Sprintf("UPDATE %s SET %s = NULL, %s = NOW() WHERE %s = $1 AND %s = ANY($2)",
		quote(relation.TargetTable), quote(relation.Column), quote("updated_at"), quote(relation.Column), quote("id"))
}

// releaseOthersQuery desvincula tudo que não está na lista (primeira etapa do set).
func releaseOthersQuery(relation domain.Relation) string {
	return fmt.Sprintf("UPDATE %s SET %s = NULL, %s = NOW() WHERE %s = $1 AND NOT (%s = ANY($2))",
		quote(relation.TargetTable), quote(relation.Column), quote("updated_at"), quote(relation.Column), quote("id"))
}
