package stubs

import (
	"time"

	"storeadmin/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type CustomerStub struct {
	customer entities.Customer
}

func NewCustomerStub() CustomerStub {
	now := time.Now().UTC()

	email := gofakeit.Email()
	firstName := gofakeit.FirstName()
	lastName := gofakeit.LastName()
	phone := gofakeit.Phone()

	return CustomerStub{customer: entities.Customer{
		ID:        gofakeit.UUID(),
		Email:     &email,
		FirstName: &firstName,
		LastName:  &lastName,
		Phone:     &phone,
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

func (cs CustomerStub) WithID(id string) CustomerStub {
	cs.customer.ID = id
	return cs
}

func (cs CustomerStub) WithFirstName(firstName *string) CustomerStub {
	cs.customer.FirstName = firstName
	return cs
}

func (cs CustomerStub) WithAddress(addressID string) CustomerStub {
	cs.customer.AddressID = &addressID
	cs.customer.LinkRelations()
	return cs
}

func (cs CustomerStub) Get() entities.Customer {
	return cs.customer
}
