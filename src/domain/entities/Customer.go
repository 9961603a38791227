package entities

import (
	"storeadmin/src/domain"
	"time"
)

const CustomerTitleField = "firstName"

type Customer struct {
	Address   *Ref      `json:"address" db:"-"`
	AddressID *string   `json:"-" db:"address_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Email     *string   `json:"email" db:"email"`
	FirstName *string   `json:"firstName" db:"first_name"`
	ID        string    `json:"id" db:"id"`
	LastName  *string   `json:"lastName" db:"last_name"`
	Phone     *string   `json:"phone" db:"phone"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (c Customer) GetID() string { return c.ID }

func (c Customer) Title() string {
	return titleOr(c.FirstName, c.ID)
}

func (c *Customer) LinkRelations() {
	c.Address = NewRef(c.AddressID)
}

var CustomerSchema = domain.EntitySchema{
	Name:       "Customer",
	Plural:     "Customers",
	Route:      "customers",
	Table:      "customers",
	TitleField: CustomerTitleField,
	Fields: baseFields(
		domain.Field{Name: "email", Column: "email", Label: "Email", Type: domain.FieldTypeString},
		domain.Field{Name: "firstName", Column: "first_name", Label: "First Name", Type: domain.FieldTypeString},
		domain.Field{Name: "lastName", Column: "last_name", Label: "Last Name", Type: domain.FieldTypeString},
		domain.Field{Name: "phone", Column: "phone", Label: "Phone", Type: domain.FieldTypeString},
	),
	Relations: []domain.Relation{
		{Name: "address", Label: "Address", Kind: domain.RelationToOne, Target: "Address", TargetTable: "addresses", Column: "address_id"},
		{Name: "orders", Label: "Orders", Kind: domain.RelationToMany, Target: "Order", TargetTable: "orders", Column: "customer_id"},
	},
}
