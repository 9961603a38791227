package admin

import (
	"sort"

	"storeadmin/src/domain"
)

type WidgetKind string

const (
	WidgetText          WidgetKind = "text"
	WidgetDate          WidgetKind = "date"
	WidgetReference     WidgetKind = "reference"
	WidgetReferenceMany WidgetKind = "referenceMany"
)

// Widget liga um campo do registro a um componente de exibição.
type Widget struct {
	Kind   WidgetKind
	Label  string
	Source string // campo do registro; em reference é a relação ("customer" → customer.id)

	// reference / referenceMany
	Reference string
	Target    string
	Columns   []Widget
}

// ShowScreen é a tela de detalhe somente leitura de uma entidade.
type ShowScreen struct {
	Entity  string
	Widgets []Widget
}

// NewShowScreen deriva a tela do schema: campos e relações to_one em ordem alfabética,
// seguidos de uma grade por relação to_many.
func NewShowScreen(schema domain.EntitySchema, schemas map[string]domain.EntitySchema) ShowScreen {
	screen := ShowScreen{Entity: schema.Name, Widgets: fieldWidgets(schema)}

	for _, relation := range schema.ToManyRelations() {
		target, ok := schemas[relation.Target]
		if !ok {
			continue
		}

		inverse, _ := target.RelationTo(schema.Name)

		screen.Widgets = append(screen.Widgets, Widget{
			Kind:      WidgetReferenceMany,
			Label:     relation.Label,
			Source:    relation.Name,
			Reference: relation.Target,
			Target:    inverse.Name,
			Columns:   fieldWidgets(target),
		})
	}

	return screen
}

func fieldWidgets(schema domain.EntitySchema) []Widget {
	var widgets []Widget

	for _, f := range schema.Fields {
		kind := WidgetText
		if f.Type == domain.FieldTypeDateTime {
			kind = WidgetDate
		}
		widgets = append(widgets, Widget{Kind: kind, Label: f.Label, Source: f.Name})
	}

	for _, relation := range schema.Relations {
		if relation.Kind != domain.RelationToOne {
			continue
		}
		widgets = append(widgets, Widget{
			Kind:      WidgetReference,
			Label:     relation.Label,
			Source:    relation.Name,
			Reference: relation.Target,
		})
	}

	sort.SliceStable(widgets, func(i, j int) bool {
		return widgets[i].Source < widgets[j].Source
	})

	return widgets
}
