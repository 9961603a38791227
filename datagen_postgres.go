//go:build datagen_postgres
// +build datagen_postgres

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"storeadmin/src/helper/env"
	"storeadmin/src/infra/postgres"

	"github.com/go-faker/faker/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DataBundle é um cliente completo: endereço, cliente, produtos novos e pedidos.
type DataBundle struct {
	Address  []any
	Customer []any
	Products [][]any
	Orders   [][]any
}

var (
	addressColumns  = []string{"id", "created_at", "updated_at", "address_1", "address_2", "city", "state", "zip"}
	customerColumns = []string{"id", "created_at", "updated_at", "email", "first_name", "last_name", "phone", "address_id"}
	productColumns  = []string{"id", "created_at", "updated_at", "description", "item_price", "name"}
	orderColumns    = []string{"id", "created_at", "updated_at", "discount", "quantity", "total_price", "customer_id", "product_id"}
)

func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 20)
	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func main() {
	numCustomers := flag.Int("customers", 1000, "Número de clientes a serem criados. Use -1 para infinito.")
	maxOrders := flag.Int("orders", 5, "Máximo de pedidos por cliente")
	bulkSize := flag.Int("bulk-size", 500, "Clientes por COPY")
	numConsumers := flag.Int("consumers", 4, "Número de consumers")
	migrate := flag.Bool("migrate", false, "Aplica o schema antes de gerar os dados")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := newSQLClient()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	if *migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatalf("Failed to migrate: %v", err)
		}
	}

	dataChan := make(chan DataBundle, (*bulkSize)*(*numConsumers))

	var wg sync.WaitGroup
	var totalProcessed, totalErrors int64
	startTime := time.Now()

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				processed := atomic.LoadInt64(&totalProcessed)
				errors := atomic.LoadInt64(&totalErrors)
				elapsed := time.Since(startTime)
				rate := float64(processed) / elapsed.Seconds()

				fmt.Printf("📊 Processed: %d | Errors: %d | Rate: %.1f/s | Elapsed: %v\n",
					processed, errors, rate, elapsed.Round(time.Second))
			}
		}
	}()

	var consumers sync.WaitGroup
	for i := 0; i < *numConsumers; i++ {
		consumers.Add(1)
		go consumer(ctx, &consumers, db, dataChan, *bulkSize, i+1, &totalProcessed, &totalErrors)
	}

	wg.Add(1)
	go producer(ctx, &wg, dataChan, *numCustomers, *maxOrders)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Shutdown signal received, stopping...")
		cancel()
	}()

	wg.Wait()
	consumers.Wait()

	elapsed := time.Since(startTime)
	processed := atomic.LoadInt64(&totalProcessed)
	errors := atomic.LoadInt64(&totalErrors)

	fmt.Printf("\n🏁 Seeding finished!\n")
	fmt.Printf("📊 Customers inserted: %d\n", processed)
	fmt.Printf("❌ Failed batches: %d\n", errors)
	fmt.Printf("⏱️  Total time: %v\n", elapsed.Round(time.Second))
	fmt.Printf("🚀 Average rate: %.1f customers/s\n", float64(processed)/elapsed.Seconds())
}

func producer(ctx context.Context, wg *sync.WaitGroup, dataChan chan<- DataBundle, numCustomers, maxOrders int) {
	defer wg.Done()
	defer close(dataChan)

	isInfinite := numCustomers == -1

	for count := 0; isInfinite || count < numCustomers; count++ {
		select {
		case dataChan <- generateBundle(maxOrders):
			if (count+1)%1000 == 0 {
				fmt.Printf("Generated %d customers\n", count+1)
			}
		case <-ctx.Done():
			fmt.Println("Producer stopping.")
			return
		}
	}
}

func consumer(ctx context.Context, wg *sync.WaitGroup, db *pgxpool.Pool, dataChan <-chan DataBundle, bulkSize, consumerID int, totalProcessed, totalErrors *int64) {
	defer wg.Done()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	bundles := make([]DataBundle, 0, bulkSize)

	flush := func(reason string) {
		if len(bundles) == 0 {
			return
		}
		if err := bulkInsert(ctx, db, bundles); err != nil {
			log.Printf("❌ Consumer %d: ERROR on %s: %v", consumerID, reason, err)
			atomic.AddInt64(totalErrors, 1)
		} else {
			atomic.AddInt64(totalProcessed, int64(len(bundles)))
		}
		bundles = make([]DataBundle, 0, bulkSize)
	}

	for {
		select {
		case b, ok := <-dataChan:
			if !ok {
				flush("final flush")
				return
			}
			bundles = append(bundles, b)
			if len(bundles) >= bulkSize {
				flush("bulk insert")
			}

		case <-ticker.C:
			flush("ticker flush")

		case <-ctx.Done():
			log.Printf("🛑 Consumer %d received stop signal.", consumerID)
			return
		}
	}
}

// bulkInsert grava um lote com um COPY por tabela, na ordem das chaves estrangeiras.
func bulkInsert(ctx context.Context, db *pgxpool.Pool, bundles []DataBundle) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var addresses, customers, products, orders [][]any
	for _, b := range bundles {
		addresses = append(addresses, b.Address)
		customers = append(customers, b.Customer)
		products = append(products, b.Products...)
		orders = append(orders, b.Orders...)
	}

	copies := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{"addresses", addressColumns, addresses},
		{"products", productColumns, products},
		{"customers", customerColumns, customers},
		{"orders", orderColumns, orders},
	}

	for _, c := range copies {
		if len(c.rows) == 0 {
			continue
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows)); err != nil {
			return fmt.Errorf("failed to copy %s: %w", c.table, err)
		}
	}

	return tx.Commit(ctx)
}

// ==== FAKE DATA ====

func generateBundle(maxOrders int) DataBundle {
	now := time.Now().UTC()
	createdAt := now.AddDate(0, 0, -rand.Intn(365))

	location := faker.GetRealAddress()
	addressID := faker.UUIDHyphenated()
	address := []any{addressID, createdAt, createdAt, location.Address, optional(faker.Word()), location.City, location.State, zipOf(location.PostalCode)}

	customerID := faker.UUIDHyphenated()
	customer := []any{customerID, createdAt, createdAt, faker.Email(), faker.FirstName(), faker.LastName(), faker.Phonenumber(), addressID}

	bundle := DataBundle{Address: address, Customer: customer}

	numOrders := 0
	if maxOrders > 0 {
		numOrders = rand.Intn(maxOrders + 1)
	}

	for i := 0; i < numOrders; i++ {
		price := float64(rand.Intn(50000)+100) / 100
		productID := faker.UUIDHyphenated()
		bundle.Products = append(bundle.Products, []any{productID, createdAt, createdAt, faker.Sentence(), price, faker.Word()})

		orderedAt := createdAt.Add(time.Duration(rand.Int63n(int64(now.Sub(createdAt)) + 1)))
		quantity := rand.Intn(5) + 1
		discount := float64(rand.Intn(20)) / 100
		total := int(price * float64(quantity) * (1 - discount))

		bundle.Orders = append(bundle.Orders, []any{faker.UUIDHyphenated(), orderedAt, orderedAt, discount, quantity, total, customerID, productID})
	}

	return bundle
}

// optional devolve nil em metade dos casos para exercitar colunas nulas.
func optional(s string) any {
	if rand.Intn(2) == 0 {
		return nil
	}
	return s
}

func zipOf(postalCode string) any {
	zip, err := strconv.Atoi(postalCode)
	if err != nil {
		return nil
	}
	return zip
}
