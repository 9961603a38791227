package domain

// Identifiable é implementado por todos os registros das entidades.
type Identifiable interface {
	GetID() string
}

// Titled resolve o texto de exibição do registro no admin.
type Titled interface {
	Title() string
}

// RelationLinker é chamado pelo repositório depois do scan para montar as referências to_one.
type RelationLinker interface {
	LinkRelations()
}
