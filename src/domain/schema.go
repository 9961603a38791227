package domain

type FieldType string

const (
	FieldTypeID       FieldType = "id"
	FieldTypeString   FieldType = "string"
	FieldTypeInt      FieldType = "int"
	FieldTypeFloat    FieldType = "float"
	FieldTypeDateTime FieldType = "datetime"
)

// Field descreve uma coluna escalar da entidade.
type Field struct {
	Name     string // nome exposto no JSON/GraphQL (ex: "firstName").
	Column   string // nome da coluna no banco (ex: "first_name").
	Label    string
	Type     FieldType
	ReadOnly bool // gerenciado pelo servidor (createdAt, updatedAt).
	Unique   bool
}

type RelationKind string

const (
	// RelationToOne guarda a chave estrangeira na própria tabela.
	RelationToOne RelationKind = "to_one"
	// RelationToMany guarda a chave estrangeira na tabela do alvo.
	RelationToMany RelationKind = "to_many"
)

type Relation struct {
	Name        string // ex: "customer", "orders".
	Label       string
	Kind        RelationKind
	Target      string // nome da entidade alvo (ex: "Customer").
	TargetTable string
	Column      string // to_one: FK local; to_many: FK na tabela alvo.
}

// EntitySchema é a configuração que parametriza todo o pipeline genérico de CRUD.
type EntitySchema struct {
	Name       string // "Customer"
	Plural     string // "Customers"
	Route      string // "customers"
	Table      string
	TitleField string
	Fields     []Field
	Relations  []Relation
}

func (s EntitySchema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s EntitySchema) Relation(name string) (Relation, bool) {
	for _, r := range s.Relations {
		if r.Name == name {
			return r, true
		}
	}
	return Relation{}, false
}

// RelationTo retorna a relação to_one que aponta para a entidade informada.
func (s EntitySchema) RelationTo(target string) (Relation, bool) {
	for _, r := range s.Relations {
		if r.Kind == RelationToOne && r.Target == target {
			return r, true
		}
	}
	return Relation{}, false
}

func (s EntitySchema) ToManyRelations() []Relation {
	relations := make([]Relation, 0, len(s.Relations))
	for _, r := range s.Relations {
		if r.Kind == RelationToMany {
			relations = append(relations, r)
		}
	}
	return relations
}

// Columns lista as colunas selecionadas para montar um registro, na ordem do schema.
func (s EntitySchema) Columns() []string {
	columns := make([]string, 0, len(s.Fields)+len(s.Relations))
	for _, f := range s.Fields {
		columns = append(columns, f.Column)
	}
	for _, r := range s.Relations {
		if r.Kind == RelationToOne {
			columns = append(columns, r.Column)
		}
	}
	return columns
}

func (s EntitySchema) UniqueFields() []Field {
	var unique []Field
	for _, f := range s.Fields {
		if f.Unique || f.Type == FieldTypeID {
			unique = append(unique, f)
		}
	}
	return unique
}
