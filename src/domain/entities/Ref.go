package entities

// Ref é a forma serializada de uma relação to_one: {"id": "..."}.
type Ref struct {
	ID string `json:"id"`
}

func NewRef(id *string) *Ref {
	if id == nil || *id == "" {
		return nil
	}
	return &Ref{ID: *id}
}

func titleOr(value *string, id string) string {
	if value != nil && *value != "" {
		return *value
	}
	return id
}
