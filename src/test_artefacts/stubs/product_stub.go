package stubs

import (
	"time"

	"storeadmin/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type ProductStub struct {
	product entities.Product
}

func NewProductStub() ProductStub {
	now := time.Now().UTC()

	name := gofakeit.ProductName()
	description := gofakeit.ProductDescription()
	itemPrice := gofakeit.Price(1, 500)

	return ProductStub{product: entities.Product{
		ID:          gofakeit.UUID(),
		Name:        &name,
		Description: &description,
		ItemPrice:   &itemPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}}
}

func (ps ProductStub) WithID(id string) ProductStub {
	ps.product.ID = id
	return ps
}

func (ps ProductStub) WithName(name *string) ProductStub {
	ps.product.Name = name
	return ps
}

func (ps ProductStub) WithItemPrice(itemPrice float64) ProductStub {
	ps.product.ItemPrice = &itemPrice
	return ps
}

func (ps ProductStub) WithDescription(description *string) ProductStub {
	ps.product.Description = description
	return ps
}

func (ps ProductStub) WithTimestamps(createdAt time.Time, updatedAt time.Time) ProductStub {
	ps.product.CreatedAt = createdAt
	ps.product.UpdatedAt = updatedAt
	return ps
}

func (ps ProductStub) Get() entities.Product {
	return ps.product
}
