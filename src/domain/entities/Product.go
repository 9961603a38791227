package entities

import (
	"storeadmin/src/domain"
	"time"
)

const ProductTitleField = "name"

type Product struct {
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	Description *string   `json:"description" db:"description"`
	ID          string    `json:"id" db:"id"`
	ItemPrice   *float64  `json:"itemPrice" db:"item_price"`
	Name        *string   `json:"name" db:"name"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

func (p Product) GetID() string { return p.ID }

func (p Product) Title() string {
	return titleOr(p.Name, p.ID)
}

var ProductSchema = domain.EntitySchema{
	Name:       "Product",
	Plural:     "Products",
	Route:      "products",
	Table:      "products",
	TitleField: ProductTitleField,
	Fields: baseFields(
		domain.Field{Name: "description", Column: "description", Label: "Description", Type: domain.FieldTypeString},
		domain.Field{Name: "itemPrice", Column: "item_price", Label: "Item Price", Type: domain.FieldTypeFloat},
		domain.Field{Name: "name", Column: "name", Label: "Name", Type: domain.FieldTypeString},
	),
	Relations: []domain.Relation{
		{Name: "orders", Label: "Orders", Kind: domain.RelationToMany, Target: "Order", TargetTable: "orders", Column: "product_id"},
	},
}
