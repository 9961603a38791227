package crud_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"storeadmin/src/domain"
	"storeadmin/src/domain/entities"
	"storeadmin/src/services/crud"
	"storeadmin/src/test_artefacts/fakes"
	"storeadmin/src/test_artefacts/stubs"
)

var _ = Describe("Registry", func() {
	var (
		ctx       context.Context
		registry  *crud.Registry
		stores    fakes.Stores
		customers crud.Collection
	)

	BeforeEach(func() {
		ctx = context.Background()
		registry, stores = fakes.NewMemoryRegistry(nil)
		customers, _ = registry.Get("Customer")
	})

	It("lists collections in registration order", func() {
		// ACT
		all := registry.All()

		// ASSERT
		names := make([]string, 0, len(all))
		for _, c := range all {
			names = append(names, c.Schema().Name)
		}
		Expect(names).To(Equal([]string{"Address", "Customer", "Order", "Product"}))
	})

	It("does not know unregistered entities", func() {
		_, ok := registry.Get("Invoice")
		Expect(ok).To(BeFalse())
	})

	Context("when finding related records", func() {
		It("returns only the records pointing at the owner", func() {
			// ARRANGE
			stores.Customers.Seed(
				stubs.NewCustomerStub().WithID("c1").Get(),
				stubs.NewCustomerStub().WithID("c2").Get(),
			)
			stores.Orders.Seed(
				stubs.NewOrderStub().WithID("o1").WithCustomer("c1").Get(),
				stubs.NewOrderStub().WithID("o2").WithCustomer("c2").Get(),
				stubs.NewOrderStub().WithID("o3").WithCustomer("c1").Get(),
			)

			// ACT
			related, err := registry.FindRelated(ctx, customers, "c1", "orders", domain.FindManyArgs{})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(related).To(HaveLen(2))

			ids := []string{}
			for _, item := range related {
				ids = append(ids, item.(*entities.Order).ID)
			}
			Expect(ids).To(ConsistOf("o1", "o3"))
		})

		It("keeps the caller filters", func() {
			// ARRANGE
			stores.Customers.Seed(stubs.NewCustomerStub().WithID("c1").Get())
			stores.Orders.Seed(
				stubs.NewOrderStub().WithID("o1").WithCustomer("c1").Get(),
				stubs.NewOrderStub().WithID("o2").WithCustomer("c1").Get(),
			)
			args := domain.FindManyArgs{Where: []domain.Condition{
				{Field: "id", Column: "id", Operator: domain.OpEquals, Value: "o2"},
			}}

			// ACT
			related, err := registry.FindRelated(ctx, customers, "c1", "orders", args)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(related).To(HaveLen(1))
			Expect(related[0].(*entities.Order).ID).To(Equal("o2"))
		})

		It("fails with not found when the owner does not exist", func() {
			// ACT
			_, err := registry.FindRelated(ctx, customers, "missing", "orders", domain.FindManyArgs{})

			// ASSERT
			Expect(err).To(MatchError(`No resource was found for {"id":"missing"}`))
			Expect(stores.Orders.Calls("FindMany")).To(Equal(0))
		})

		It("rejects relations that are not to-many", func() {
			// ACT
			_, err := registry.FindRelated(ctx, customers, "c1", "address", domain.FindManyArgs{})

			// ASSERT
			Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
		})
	})

	Context("when changing related records", func() {
		It("sends the relation change through an update of the owner", func() {
			// ARRANGE
			stores.Customers.Seed(stubs.NewCustomerStub().WithID("c1").Get())

			// ACT
			err := registry.ChangeRelated(ctx, customers, "c1", domain.RelationChange{
				Relation: domain.Relation{Name: "orders"},
				Connect:  []string{"o1", "o2"},
			})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(stores.Customers.Calls("Update")).To(Equal(1))

			input := stores.Customers.LastInput
			Expect(input.Relations).To(HaveLen(1))
			Expect(input.Relations[0].Relation.Column).To(Equal("customer_id"))
			Expect(input.Relations[0].Relation.TargetTable).To(Equal("orders"))
			Expect(input.Relations[0].Connect).To(Equal([]string{"o1", "o2"}))
			Expect(input.Fields).To(Equal([]string{"orders"}))
		})

		It("does not update a missing owner", func() {
			// ACT
			err := registry.ChangeRelated(ctx, customers, "missing", domain.RelationChange{
				Relation: domain.Relation{Name: "orders"},
				Set:      []string{},
				Replace:  true,
			})

			// ASSERT
			Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
			Expect(stores.Customers.Calls("Update")).To(Equal(0))
		})
	})
})
