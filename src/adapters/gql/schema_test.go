package gql_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"storeadmin/src/adapters/gql"
	"storeadmin/src/test_artefacts/fakes"
	"storeadmin/src/test_artefacts/stubs"

	"github.com/graphql-go/graphql"
)

var _ = Describe("Schema", func() {
	var (
		stores    fakes.Stores
		publisher *fakes.RecordingPublisher
		schema    graphql.Schema
		logs      *bytes.Buffer
	)

	run := func(query string) *graphql.Result {
		return graphql.Do(graphql.Params{
			Schema:        schema,
			RequestString: query,
			Context:       context.Background(),
		})
	}

	execute := func(query string) string {
		encoded, err := json.Marshal(run(query))
		Expect(err).NotTo(HaveOccurred())
		return string(encoded)
	}

	BeforeEach(func() {
		var err error
		logs = &bytes.Buffer{}
		publisher = &fakes.RecordingPublisher{}
		registry, memoryStores := fakes.NewMemoryRegistry(publisher)
		stores = memoryStores

		schema, err = gql.NewSchema(slog.New(slog.NewJSONHandler(logs, nil)), registry)
		Expect(err).NotTo(HaveOccurred())
	})

	It("exposes plural and singular queries and the three mutations per entity", func() {
		queryFields := schema.QueryType().Fields()
		for _, name := range []string{"addresses", "address", "customers", "customer", "orders", "order", "products", "product"} {
			Expect(queryFields).To(HaveKey(name))
		}

		mutationFields := schema.MutationType().Fields()
		for _, entity := range []string{"Address", "Customer", "Order", "Product"} {
			Expect(mutationFields).To(HaveKey("create" + entity))
			Expect(mutationFields).To(HaveKey("update" + entity))
			Expect(mutationFields).To(HaveKey("delete" + entity))
		}
	})

	Context("queries", func() {
		BeforeEach(func() {
			ana, bia, caio := "Ana", "Bia", "Caio"
			stores.Addresses.Seed(stubs.NewAddressStub().WithID("a1").WithCity("Porto").Get())
			stores.Customers.Seed(
				stubs.NewCustomerStub().WithID("c1").WithFirstName(&caio).WithAddress("a1").Get(),
				stubs.NewCustomerStub().WithID("c2").WithFirstName(&ana).Get(),
				stubs.NewCustomerStub().WithID("c3").WithFirstName(&bia).WithAddress("gone").Get(),
			)
			stores.Orders.Seed(
				stubs.NewOrderStub().WithID("o1").WithCustomer("c1").Get(),
				stubs.NewOrderStub().WithID("o2").WithCustomer("c2").Get(),
			)
		})

		It("filters, orders and paginates lists", func() {
			// ACT
			result := execute(`{
				customers(where: {firstName: {in: ["Ana", "Bia", "Caio"]}}, orderBy: [{firstName: desc}], skip: 1, take: 1) {
					id
					firstName
				}
			}`)

			// ASSERT
			Expect(result).To(MatchJSON(`{"data":{"customers":[{"id":"c3","firstName":"Bia"}]}}`))
		})

		It("resolves to-one relations and nulls dangling references", func() {
			// ACT
			result := execute(`{
				customers(orderBy: [{id: asc}]) {
					id
					address { id city }
				}
			}`)

			// ASSERT
			Expect(result).To(MatchJSON(`{"data":{"customers":[
				{"id":"c1","address":{"id":"a1","city":"Porto"}},
				{"id":"c2","address":null},
				{"id":"c3","address":null}
			]}}`))
		})

		It("resolves to-many relations", func() {
			// ACT
			result := execute(`{ customer(where: {id: "c1"}) { id orders { id customer { id } } } }`)

			// ASSERT
			Expect(result).To(MatchJSON(`{"data":{"customer":{"id":"c1","orders":[{"id":"o1","customer":{"id":"c1"}}]}}}`))
		})

		It("answers null for a missing record", func() {
			// ACT
			result := execute(`{ customer(where: {id: "missing"}) { id } }`)

			// ASSERT
			Expect(result).To(MatchJSON(`{"data":{"customer":null}}`))
		})

		It("reports invalid arguments as BAD_USER_INPUT", func() {
			// ACT
			result := run(`{ orders(take: -1) { id } }`)

			// ASSERT
			Expect(result.Errors).To(HaveLen(1))
			Expect(result.Errors[0].Message).To(Equal("take must be a non-negative integer"))
			Expect(result.Errors[0].Extensions).To(Equal(map[string]interface{}{"code": "BAD_USER_INPUT", "statusCode": 400}))
		})
	})

	Context("mutations", func() {
		It("creates with nested to-one input", func() {
			// ARRANGE
			stores.Addresses.Seed(stubs.NewAddressStub().WithID("a1").WithCity("Porto").Get())

			// ACT
			result := execute(`mutation {
				createCustomer(data: {id: "c1", firstName: "Ana", address: {id: "a1"}}) {
					id
					firstName
					address { city }
				}
			}`)

			// ASSERT
			Expect(result).To(MatchJSON(`{"data":{"createCustomer":{"id":"c1","firstName":"Ana","address":{"city":"Porto"}}}}`))
			Expect(publisher.Events()).To(HaveLen(1))
		})

		It("passes to-many connect to the store", func() {
			// ACT
			result := execute(`mutation {
				createCustomer(data: {id: "c1", orders: {connect: [{id: "o1"}]}}) { id }
			}`)

			// ASSERT
			Expect(result).To(MatchJSON(`{"data":{"createCustomer":{"id":"c1"}}}`))
			Expect(stores.Customers.LastInput.Relations).To(HaveLen(1))
			Expect(stores.Customers.LastInput.Relations[0].Connect).To(Equal([]string{"o1"}))
		})

		It("reports duplicates as CONFLICT", func() {
			// ARRANGE
			stores.Products.Seed(stubs.NewProductStub().WithID("p1").Get())

			// ACT
			result := run(`mutation { createProduct(data: {id: "p1", name: "Chair"}) { id } }`)

			// ASSERT
			Expect(result.Errors).To(HaveLen(1))
			Expect(result.Errors[0].Extensions).To(HaveKeyWithValue("code", "CONFLICT"))
			Expect(result.Errors[0].Extensions).To(HaveKeyWithValue("statusCode", 409))
		})

		It("reports updates of missing records as NOT_FOUND", func() {
			// ACT
			result := run(`mutation { updateProduct(where: {id: "missing"}, data: {name: "Chair"}) { id } }`)

			// ASSERT
			Expect(result.Errors).To(HaveLen(1))
			Expect(result.Errors[0].Message).To(Equal(`No resource was found for {"id":"missing"}`))
			Expect(result.Errors[0].Extensions).To(HaveKeyWithValue("code", "NOT_FOUND"))
			Expect(stores.Products.Calls("Update")).To(Equal(0))
		})

		It("deletes and returns the previous record", func() {
			// ARRANGE
			name := "Chair"
			stores.Products.Seed(stubs.NewProductStub().WithID("p1").WithName(&name).Get())

			// ACT
			result := execute(`mutation { deleteProduct(where: {id: "p1"}) { id name } }`)

			// ASSERT
			Expect(result).To(MatchJSON(`{"data":{"deleteProduct":{"id":"p1","name":"Chair"}}}`))
		})

		It("hides unexpected failures behind INTERNAL_SERVER_ERROR", func() {
			// ARRANGE
			stores.Products.FailWith("FindMany", errors.New("connection reset"))

			// ACT
			result := run(`{ products { id } }`)

			// ASSERT
			Expect(result.Errors).To(HaveLen(1))
			Expect(result.Errors[0].Message).To(Equal("Internal server error"))
			Expect(result.Errors[0].Extensions).To(HaveKeyWithValue("code", "INTERNAL_SERVER_ERROR"))
			Expect(logs.String()).To(ContainSubstring("GraphQL resolver failed"))
			Expect(logs.String()).To(ContainSubstring("connection reset"))
		})
	})
})
