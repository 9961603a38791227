package stubs

import (
	"time"

	"storeadmin/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type OrderStub struct {
	order entities.Order
}

func NewOrderStub() OrderStub {
	now := time.Now().UTC()

	quantity := gofakeit.Number(1, 20)
	discount := gofakeit.Float64Range(0, 0.5)
	totalPrice := gofakeit.Number(10, 10000)

	return OrderStub{order: entities.Order{
		ID:         gofakeit.UUID(),
		Quantity:   &quantity,
		Discount:   &discount,
		TotalPrice: &totalPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}}
}

func (o OrderStub) WithID(id string) OrderStub {
	o.order.ID = id
	return o
}

func (o OrderStub) WithCustomer(customerID string) OrderStub {
	o.order.CustomerID = &customerID
	o.order.LinkRelations()
	return o
}

func (o OrderStub) WithProduct(productID string) OrderStub {
	o.order.ProductID = &productID
	o.order.LinkRelations()
	return o
}

func (o OrderStub) Get() entities.Order {
	return o.order
}
