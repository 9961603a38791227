package stubs

import (
	"time"

	"storeadmin/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type AddressStub struct {
	address entities.Address
}

func NewAddressStub() AddressStub {
	now := time.Now().UTC()

	address1 := gofakeit.Street()
	address2 := gofakeit.StreetNumber()
	city := gofakeit.City()
	state := gofakeit.StateAbr()
	zip := gofakeit.Number(10000, 99999)

	return AddressStub{address: entities.Address{
		ID:        gofakeit.UUID(),
		Address1:  &address1,
		Address2:  &address2,
		City:      &city,
		State:     &state,
		Zip:       &zip,
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

func (as AddressStub) WithID(id string) AddressStub {
	as.address.ID = id
	return as
}

func (as AddressStub) WithAddress1(address1 *string) AddressStub {
	as.address.Address1 = address1
	return as
}

func (as AddressStub) WithCity(city string) AddressStub {
	as.address.City = &city
	return as
}

func (as AddressStub) Get() entities.Address {
	return as.address
}
