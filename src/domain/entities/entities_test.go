package entities_test

import (
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"storeadmin/src/domain"
	"storeadmin/src/domain/entities"
)

func dbColumns(record any) []string {
	var columns []string
	t := reflect.TypeOf(record)
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}
	return columns
}

var _ = Describe("Entities", func() {
	Context("when resolving titles", func() {
		It("uses the title field when present", func() {
			// ARRANGE
			street := "Rua Augusta"
			name := "Chair"
			firstName := "Ana"

			// ASSERT
			Expect(entities.Address{ID: "a1", Address1: &street}.Title()).To(Equal("Rua Augusta"))
			Expect(entities.Product{ID: "p1", Name: &name}.Title()).To(Equal("Chair"))
			Expect(entities.Customer{ID: "c1", FirstName: &firstName}.Title()).To(Equal("Ana"))
		})

		It("falls back to the id when the title field is empty", func() {
			// ARRANGE
			empty := ""

			// ASSERT
			Expect(entities.Address{ID: "a1"}.Title()).To(Equal("a1"))
			Expect(entities.Product{ID: "p1", Name: &empty}.Title()).To(Equal("p1"))
			Expect(entities.Customer{ID: "c1"}.Title()).To(Equal("c1"))
			Expect(entities.Order{ID: "o1"}.Title()).To(Equal("o1"))
		})
	})

	Context("when linking relations", func() {
		It("builds the reference from the foreign key", func() {
			// ARRANGE
			customerID := "c1"
			order := entities.Order{ID: "o1", CustomerID: &customerID}

			// ACT
			order.LinkRelations()

			// ASSERT
			Expect(order.Customer).To(Equal(&entities.Ref{ID: "c1"}))
			Expect(order.Product).To(BeNil())
		})
	})

	DescribeTable("schema columns match the scanned struct",
		func(schema domain.EntitySchema, record any) {
			Expect(schema.Columns()).To(ConsistOf(dbColumns(record)))
		},
		Entry("Address", entities.AddressSchema, entities.Address{}),
		Entry("Customer", entities.CustomerSchema, entities.Customer{}),
		Entry("Order", entities.OrderSchema, entities.Order{}),
		Entry("Product", entities.ProductSchema, entities.Product{}),
	)

	It("declares the title field of every entity", func() {
		for _, schema := range entities.Schemas() {
			_, ok := schema.Field(schema.TitleField)
			Expect(ok).To(BeTrue(), schema.Name)
		}
	})

	It("points every to-many relation at a to-one on the target", func() {
		byName := map[string]domain.EntitySchema{}
		for _, schema := range entities.Schemas() {
			byName[schema.Name] = schema
		}

		for _, schema := range entities.Schemas() {
			for _, relation := range schema.ToManyRelations() {
				inverse, ok := byName[relation.Target].RelationTo(schema.Name)
				Expect(ok).To(BeTrue(), schema.Name+"."+relation.Name)
				Expect(inverse.Column).To(Equal(relation.Column))
			}
		}
	})
})
