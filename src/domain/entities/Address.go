package entities

import (
	"storeadmin/src/domain"
	"time"
)

const AddressTitleField = "address_1"

type Address struct {
	Address1  *string   `json:"address_1" db:"address_1"`
	Address2  *string   `json:"address_2" db:"address_2"`
	City      *string   `json:"city" db:"city"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	State     *string   `json:"state" db:"state"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Zip       *int      `json:"zip" db:"zip"`
}

func (a Address) GetID() string { return a.ID }

// Title usa address_1 e cai para o id quando vazio.
func (a Address) Title() string {
	return titleOr(a.Address1, a.ID)
}

var AddressSchema = domain.EntitySchema{
	Name:       "Address",
	Plural:     "Addresses",
	Route:      "addresses",
	Table:      "addresses",
	TitleField: AddressTitleField,
	Fields: baseFields(
		domain.Field{Name: "address_1", Column: "address_1", Label: "Address 1", Type: domain.FieldTypeString},
		domain.Field{Name: "address_2", Column: "address_2", Label: "Address 2", Type: domain.FieldTypeString},
		domain.Field{Name: "city", Column: "city", Label: "City", Type: domain.FieldTypeString},
		domain.Field{Name: "state", Column: "state", Label: "State", Type: domain.FieldTypeString},
		domain.Field{Name: "zip", Column: "zip", Label: "Zip", Type: domain.FieldTypeInt},
	),
	Relations: []domain.Relation{
		{Name: "customers", Label: "Customers", Kind: domain.RelationToMany, Target: "Customer", TargetTable: "customers", Column: "address_id"},
	},
}
