package test_seeder

import (
	"context"
	"fmt"

	"storeadmin/src/domain/entities"
)

func (ts TestSeeder) InsertAddress(ctx context.Context, address entities.Address) {
	query := `
		INSERT INTO addresses (id, address_1, address_2, city, state, zip, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ts.pool.Exec(ctx, query,
		address.ID,
		address.Address1,
		address.Address2,
		address.City,
		address.State,
		address.Zip,
		address.CreatedAt,
		address.UpdatedAt,
	)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertAddress failed: %v", err))
	}
}

func (ts TestSeeder) InsertCustomer(ctx context.Context, customer entities.Customer) {
	query := `
		INSERT INTO customers (id, email, first_name, last_name, phone, address_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ts.pool.Exec(ctx, query,
		customer.ID,
		customer.Email,
		customer.FirstName,
		customer.LastName,
		customer.Phone,
		customer.AddressID,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertCustomer failed: %v", err))
	}
}

func (ts TestSeeder) InsertProduct(ctx context.Context, product entities.Product) {
	query := `
		INSERT INTO products (id, name, description, item_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := ts.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.ItemPrice,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertProduct failed: %v", err))
	}
}

func (ts TestSeeder) InsertOrder(ctx context.Context, order entities.Order) {
	query := `
		INSERT INTO orders (id, quantity, discount, total_price, customer_id, product_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ts.pool.Exec(ctx, query,
		order.ID,
		order.Quantity,
		order.Discount,
		order.TotalPrice,
		order.CustomerID,
		order.ProductID,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertOrder failed: %v", err))
	}
}
