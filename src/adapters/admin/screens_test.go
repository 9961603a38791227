package admin_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"storeadmin/src/adapters/admin"
	"storeadmin/src/domain"
	"storeadmin/src/domain/entities"
)

var _ = Describe("NewShowScreen", func() {
	var schemas map[string]domain.EntitySchema

	sources := func(widgets []admin.Widget) []string {
		names := make([]string, 0, len(widgets))
		for _, w := range widgets {
			names = append(names, w.Source)
		}
		return names
	}

	BeforeEach(func() {
		schemas = map[string]domain.EntitySchema{}
		for _, schema := range entities.Schemas() {
			schemas[schema.Name] = schema
		}
	})

	It("lists fields and references alphabetically before the grids", func() {
		// ACT
		screen := admin.NewShowScreen(entities.CustomerSchema, schemas)

		// ASSERT
		Expect(screen.Entity).To(Equal("Customer"))
		Expect(sources(screen.Widgets)).To(Equal([]string{
			"address", "createdAt", "email", "firstName", "id", "lastName", "phone", "updatedAt", "orders",
		}))
	})

	It("picks widget kinds from the field types", func() {
		// ACT
		screen := admin.NewShowScreen(entities.OrderSchema, schemas)

		// ASSERT
		kinds := map[string]admin.WidgetKind{}
		for _, w := range screen.Widgets {
			kinds[w.Source] = w.Kind
		}
		Expect(kinds).To(Equal(map[string]admin.WidgetKind{
			"createdAt":  admin.WidgetDate,
			"customer":   admin.WidgetReference,
			"discount":   admin.WidgetText,
			"id":         admin.WidgetText,
			"product":    admin.WidgetReference,
			"quantity":   admin.WidgetText,
			"totalPrice": admin.WidgetText,
			"updatedAt":  admin.WidgetDate,
		}))
	})

	It("describes to-many grids with the target columns", func() {
		// ACT
		screen := admin.NewShowScreen(entities.AddressSchema, schemas)

		// ASSERT
		grid := screen.Widgets[len(screen.Widgets)-1]
		Expect(grid.Kind).To(Equal(admin.WidgetReferenceMany))
		Expect(grid.Label).To(Equal("Customers"))
		Expect(grid.Reference).To(Equal("Customer"))
		Expect(grid.Target).To(Equal("address"))
		Expect(sources(grid.Columns)).To(ContainElements("address", "firstName", "id"))
	})

	It("skips grids for unknown targets", func() {
		// ARRANGE
		delete(schemas, "Order")

		// ACT
		screen := admin.NewShowScreen(entities.ProductSchema, schemas)

		// ASSERT
		for _, w := range screen.Widgets {
			Expect(w.Kind).NotTo(Equal(admin.WidgetReferenceMany))
		}
	})
})
