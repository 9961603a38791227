package fakes

import (
	"io"
	"log/slog"

	"storeadmin/src/domain/entities"
	"storeadmin/src/services/crud"
)

// Stores dá acesso aos stores em memória por trás de um registry de teste.
type Stores struct {
	Addresses *MemoryStore[entities.Address]
	Customers *MemoryStore[entities.Customer]
	Orders    *MemoryStore[entities.Order]
	Products  *MemoryStore[entities.Product]
}

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewMemoryRegistry monta as quatro entidades sobre stores em memória.
// publisher pode ser nil.
func NewMemoryRegistry(publisher crud.EventPublisher) (*crud.Registry, Stores) {
	logger := DiscardLogger()

	stores := Stores{
		Addresses: NewMemoryStore[entities.Address](entities.AddressSchema),
		Customers: NewMemoryStore[entities.Customer](entities.CustomerSchema),
		Orders:    NewMemoryStore[entities.Order](entities.OrderSchema),
		Products:  NewMemoryStore[entities.Product](entities.ProductSchema),
	}

	registry := crud.NewRegistry(
		crud.NewService[entities.Address](logger, entities.AddressSchema, stores.Addresses, publisher).Collection(),
		crud.NewService[entities.Customer](logger, entities.CustomerSchema, stores.Customers, publisher).Collection(),
		crud.NewService[entities.Order](logger, entities.OrderSchema, stores.Orders, publisher).Collection(),
		crud.NewService[entities.Product](logger, entities.ProductSchema, stores.Products, publisher).Collection(),
	)

	return registry, stores
}
