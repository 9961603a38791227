package entities

import (
	"storeadmin/src/domain"
	"time"
)

// Pedidos não têm campo descritivo; o título é o próprio id.
const OrderTitleField = "id"

type Order struct {
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	Customer   *Ref      `json:"customer" db:"-"`
	CustomerID *string   `json:"-" db:"customer_id"`
	Discount   *float64  `json:"discount" db:"discount"`
	ID         string    `json:"id" db:"id"`
	Product    *Ref      `json:"product" db:"-"`
	ProductID  *string   `json:"-" db:"product_id"`
	Quantity   *int      `json:"quantity" db:"quantity"`
	TotalPrice *int      `json:"totalPrice" db:"total_price"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

func (o Order) GetID() string { return o.ID }

func (o Order) Title() string {
	return o.ID
}

func (o *Order) LinkRelations() {
	o.Customer = NewRef(o.CustomerID)
	o.Product = NewRef(o.ProductID)
}

var OrderSchema = domain.EntitySchema{
	Name:       "Order",
	Plural:     "Orders",
	Route:      "orders",
	Table:      "orders",
	TitleField: OrderTitleField,
	Fields: baseFields(
		domain.Field{Name: "discount", Column: "discount", Label: "Discount", Type: domain.FieldTypeFloat},
		domain.Field{Name: "quantity", Column: "quantity", Label: "Quantity", Type: domain.FieldTypeInt},
		domain.Field{Name: "totalPrice", Column: "total_price", Label: "Total Price", Type: domain.FieldTypeInt},
	),
	Relations: []domain.Relation{
		{Name: "customer", Label: "Customer", Kind: domain.RelationToOne, Target: "Customer", TargetTable: "customers", Column: "customer_id"},
		{Name: "product", Label: "Product", Kind: domain.RelationToOne, Target: "Product", TargetTable: "products", Column: "product_id"},
	},
}
