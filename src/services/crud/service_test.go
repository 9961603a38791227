package crud_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"storeadmin/src/domain"
	"storeadmin/src/domain/entities"
	"storeadmin/src/repositories"
	"storeadmin/src/services/crud"
	"storeadmin/src/test_artefacts/comparer"
	"storeadmin/src/test_artefacts/fakes"
	"storeadmin/src/test_artefacts/stubs"
)

var _ = Describe("Service", func() {
	var (
		ctx       context.Context
		store     *fakes.MemoryStore[entities.Product]
		publisher *fakes.RecordingPublisher
		service   *crud.Service[entities.Product]
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = fakes.NewMemoryStore[entities.Product](entities.ProductSchema)
		publisher = &fakes.RecordingPublisher{}
		service = crud.NewService[entities.Product](fakes.DiscardLogger(), entities.ProductSchema, store, publisher)
	})

	Context("when creating", func() {
		It("returns the stored record and publishes a created event", func() {
			// ARRANGE
			name := "Chair"
			input := domain.Input{
				ID:     "p1",
				Values: map[string]any{"name": &name},
				Fields: []string{"name"},
			}

			// ACT
			product, err := service.Create(ctx, input)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(product.ID).To(Equal("p1"))
			Expect(product.Name).To(HaveValue(Equal("Chair")))

			events := publisher.Events()
			Expect(events).To(HaveLen(1))
			Expect(events[0].EventType).To(Equal("product.created"))
			Expect(events[0].EntityID).To(Equal("p1"))
			Expect(events[0].FieldsChanged).To(Equal([]string{"name"}))
			Expect(events[0].Data).NotTo(BeEmpty())
		})

		It("surfaces a uniqueness violation as conflict", func() {
			// ARRANGE
			store.Seed(stubs.NewProductStub().WithID("p1").Get())

			// ACT
			_, err := service.Create(ctx, domain.Input{ID: "p1", Values: map[string]any{}})

			// ASSERT
			Expect(errors.Is(err, domain.ErrConflict)).To(BeTrue())
			Expect(publisher.Events()).To(BeEmpty())
		})

		It("keeps unclassified store errors unclassified", func() {
			// ARRANGE
			store.FailWith("Create", fmt.Errorf("connection reset"))

			// ACT
			_, err := service.Create(ctx, domain.Input{Values: map[string]any{}})

			// ASSERT
			Expect(err).To(MatchError(ContainSubstring("connection reset")))
			Expect(errors.Is(err, domain.ErrConflict)).To(BeFalse())
			Expect(errors.Is(err, domain.ErrNotFound)).To(BeFalse())
		})

		It("does not fail the request when publishing fails", func() {
			// ARRANGE
			publisher.Err = fmt.Errorf("broker down")

			// ACT
			_, err := service.Create(ctx, domain.Input{Values: map[string]any{}})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(store.Calls("Create")).To(Equal(1))
		})
	})

	Context("when finding many", func() {
		It("returns an empty list instead of not found", func() {
			// ACT
			products, err := service.FindMany(ctx, domain.FindManyArgs{})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(products).NotTo(BeNil())
			Expect(products).To(BeEmpty())
		})

		It("forwards filters, order and pagination verbatim", func() {
			// ARRANGE
			cheap := stubs.NewProductStub().WithID("p1").WithItemPrice(5).Get()
			mid := stubs.NewProductStub().WithID("p2").WithItemPrice(50).Get()
			expensive := stubs.NewProductStub().WithID("p3").WithItemPrice(500).Get()
			store.Seed(cheap, mid, expensive)

			take := 1
			args := domain.FindManyArgs{
				Where:   []domain.Condition{{Field: "itemPrice", Column: "item_price", Operator: domain.OpGt, Value: float64(10)}},
				OrderBy: []domain.OrderBy{{Field: "itemPrice", Column: "item_price", Direction: domain.SortDesc}},
				Skip:    1,
				Take:    &take,
			}

			// ACT
			products, err := service.FindMany(ctx, args)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(HaveLen(1))
			Expect(products[0]).To(BeComparableTo(mid, comparer.TimeWithinTolerance(1)))
		})
	})

	Context("when finding one", func() {
		It("returns not found naming the id", func() {
			// ACT
			_, err := service.FindOne(ctx, "missing")

			// ASSERT
			var notFoundErr *domain.NotFoundError
			Expect(errors.As(err, &notFoundErr)).To(BeTrue())
			Expect(notFoundErr.Error()).To(Equal(`No resource was found for {"id":"missing"}`))
		})
	})

	Context("when updating", func() {
		It("never calls the store update for a missing record", func() {
			// ACT
			_, err := service.Update(ctx, "missing", domain.Input{Values: map[string]any{}})

			// ASSERT
			Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
			Expect(store.Calls("Update")).To(Equal(0))
			Expect(publisher.Events()).To(BeEmpty())
		})

		It("updates an existing record and publishes the changed fields", func() {
			// ARRANGE
			store.Seed(stubs.NewProductStub().WithID("p1").Get())
			name := "Table"

			// ACT
			product, err := service.Update(ctx, "p1", domain.Input{
				Values: map[string]any{"name": &name},
				Fields: []string{"name"},
			})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(product.Name).To(HaveValue(Equal("Table")))
			Expect(publisher.Events()).To(ConsistOf(
				HaveField("EventType", "product.updated"),
			))
		})
	})

	Context("when deleting", func() {
		It("never calls the store delete for a missing record", func() {
			// ACT
			_, err := service.Delete(ctx, "missing")

			// ASSERT
			Expect(err).To(MatchError(`No resource was found for {"id":"missing"}`))
			Expect(store.Calls("Delete")).To(Equal(0))
		})

		It("returns the prior record", func() {
			// ARRANGE
			existing := stubs.NewProductStub().WithID("p1").Get()
			store.Seed(existing)

			// ACT
			deleted, err := service.Delete(ctx, "p1")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(*deleted).To(BeComparableTo(existing, comparer.TimeWithinTolerance(1)))

			_, err = service.FindOne(ctx, "p1")
			Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
		})
	})

	Context("when the store is cached", func() {
		var cache *fakes.MemoryCache

		BeforeEach(func() {
			cache = fakes.NewMemoryCache()
			cache.SetDelay = 50 * time.Millisecond
			cached := repositories.NewCachedEntityRepository[entities.Product](
				fakes.DiscardLogger(), entities.ProductSchema, store, cache)
			service = crud.NewService[entities.Product](fakes.DiscardLogger(), entities.ProductSchema, cached, publisher)

			store.Seed(stubs.NewProductStub().WithID("p1").Get())
		})

		It("does not serve a deleted record", func() {
			// ACT
			_, err := service.Delete(ctx, "p1")
			Expect(err).NotTo(HaveOccurred())
			time.Sleep(150 * time.Millisecond)

			_, err = service.FindOne(ctx, "p1")

			// ASSERT
			Expect(err).To(MatchError(`No resource was found for {"id":"p1"}`))
			Expect(cache.Has("entity:Product:p1")).To(BeFalse())
		})

		It("does not serve the prior state after an update racing a read", func() {
			// ARRANGE
			_, err := service.FindOne(ctx, "p1")
			Expect(err).NotTo(HaveOccurred())
			name := "Renamed"

			// ACT
			_, err = service.Update(ctx, "p1", domain.Input{
				Values: map[string]any{"name": &name},
				Fields: []string{"name"},
			})
			Expect(err).NotTo(HaveOccurred())
			time.Sleep(150 * time.Millisecond)

			product, err := service.FindOne(ctx, "p1")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(product.Name).To(HaveValue(Equal("Renamed")))
		})
	})
})
