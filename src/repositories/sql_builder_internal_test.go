package repositories

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"storeadmin/src/domain"
	"storeadmin/src/domain/entities"

	"github.com/jackc/pgtype"
)

var _ = Describe("sqlBuilder", func() {
	const productColumns = `"id", "created_at", "updated_at", "description", "item_price", "name"`

	Context("Select", func() {
		It("selects every schema column without clauses", func() {
			// ACT
			query, args := newSQLBuilder(entities.ProductSchema).Select(domain.FindManyArgs{})

			// ASSERT
			Expect(query).To(Equal(`SELECT ` + productColumns + ` FROM "products"`))
			Expect(args).To(BeEmpty())
		})

		It("combines filters, order and pagination with positional arguments", func() {
			// ARRANGE
			take := 10
			args := domain.FindManyArgs{
				Where: []domain.Condition{
					{Field: "name", Column: "name", Operator: domain.OpContains, Value: "50%_off"},
					{Field: "itemPrice", Column: "item_price", Operator: domain.OpGte, Value: float64(10)},
				},
				OrderBy: []domain.OrderBy{
					{Field: "itemPrice", Column: "item_price", Direction: domain.SortDesc},
					{Field: "name", Column: "name", Direction: domain.SortAsc},
				},
				Skip: 20,
				Take: &take,
			}

			// ACT
			query, params := newSQLBuilder(entities.ProductSchema).Select(args)

			// ASSERT
			Expect(query).To(Equal(`SELECT ` + productColumns + ` FROM "products"` +
				` WHERE "name" LIKE $1 AND "item_price" >= $2` +
				` ORDER BY "item_price" DESC, "name" ASC LIMIT $3 OFFSET $4`))
			Expect(params).To(Equal([]any{`%50\%\_off%`, float64(10), 10, 20}))
		})

		It("omits OFFSET when skip is zero", func() {
			// ARRANGE
			take := 0

			// ACT
			query, params := newSQLBuilder(entities.ProductSchema).Select(domain.FindManyArgs{Take: &take})

			// ASSERT
			Expect(query).To(HaveSuffix(` LIMIT $1`))
			Expect(params).To(Equal([]any{0}))
		})

		It("selects to-one foreign keys alongside the fields", func() {
			// ACT
			query, _ := newSQLBuilder(entities.OrderSchema).Select(domain.FindManyArgs{})

			// ASSERT
			Expect(query).To(ContainSubstring(`"customer_id", "product_id" FROM "orders"`))
		})
	})

	DescribeTable("condition",
		func(c domain.Condition, expectedSQL string, expectedArgs []any) {
			b := newSQLBuilder(entities.CustomerSchema)

			Expect(b.condition(c)).To(Equal(expectedSQL))
			if expectedArgs == nil {
				Expect(b.args).To(BeEmpty())
			} else {
				Expect(b.args).To(Equal(expectedArgs))
			}
		},
		Entry("equals null", domain.Condition{Column: "email", Operator: domain.OpEquals}, `"email" IS NULL`, nil),
		Entry("not null", domain.Condition{Column: "email", Operator: domain.OpNot}, `"email" IS NOT NULL`, nil),
		Entry("equals", domain.Condition{Column: "email", Operator: domain.OpEquals, Value: "a@b.c"}, `"email" = $1`, []any{"a@b.c"}),
		Entry("not", domain.Condition{Column: "email", Operator: domain.OpNot, Value: "a@b.c"}, `"email" IS DISTINCT FROM $1`, []any{"a@b.c"}),
		Entry("in", domain.Condition{Column: "id", Operator: domain.OpIn, Value: []string{"a", "b"}}, `"id" = ANY($1)`, []any{[]string{"a", "b"}}),
		Entry("notIn", domain.Condition{Column: "id", Operator: domain.OpNotIn, Value: []string{"a"}}, `NOT ("id" = ANY($1))`, []any{[]string{"a"}}),
		Entry("lt", domain.Condition{Column: "first_name", Operator: domain.OpLt, Value: "M"}, `"first_name" < $1`, []any{"M"}),
		Entry("lte", domain.Condition{Column: "first_name", Operator: domain.OpLte, Value: "M"}, `"first_name" <= $1`, []any{"M"}),
		Entry("gt", domain.Condition{Column: "first_name", Operator: domain.OpGt, Value: "M"}, `"first_name" > $1`, []any{"M"}),
		Entry("startsWith", domain.Condition{Column: "first_name", Operator: domain.OpStartsWith, Value: "Jo"}, `"first_name" LIKE $1`, []any{"Jo%"}),
		Entry("endsWith", domain.Condition{Column: "email", Operator: domain.OpEndsWith, Value: "@b.c"}, `"email" LIKE $1`, []any{"%@b.c"}),
		Entry("to-one foreign key", domain.Condition{Field: "address", Column: "address_id", Operator: domain.OpEquals, Value: "a1"}, `"address_id" = $1`, []any{"a1"}),
	)

	Context("writes", func() {
		It("inserts the id first and the remaining columns sorted", func() {
			// ARRANGE
			first := "Ana"
			input := domain.Input{Values: map[string]any{
				"first_name": &first,
				"email":      (*string)(nil),
			}}

			// ACT
			query, params := newSQLBuilder(entities.CustomerSchema).Insert("c1", input)

			// ASSERT
			Expect(query).To(HavePrefix(`INSERT INTO "customers" ("id", "email", "first_name") VALUES ($1, $2, $3) RETURNING "id"`))
			Expect(params).To(HaveLen(3))
			Expect(params[0]).To(Equal("c1"))
			Expect(params[1]).To(Equal(pgtype.Text{Status: pgtype.Null}))
			Expect(params[2]).To(Equal(pgtype.Text{String: "Ana", Status: pgtype.Present}))
		})

		It("always refreshes updated_at on update", func() {
			// ACT
			query, params := newSQLBuilder(entities.CustomerSchema).Update("c1", domain.Input{Values: map[string]any{}})

			// ASSERT
			Expect(query).To(HavePrefix(`UPDATE "customers" SET "updated_at" = NOW() WHERE "id" = $1 RETURNING`))
			Expect(params).To(Equal([]any{"c1"}))
		})

		It("binds typed values on update", func() {
			// ARRANGE
			at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
			zip := int64(12345)
			input := domain.Input{Values: map[string]any{"zip": &zip, "created_at": &at}}

			// ACT
			query, params := newSQLBuilder(entities.AddressSchema).Update("a1", input)

			// ASSERT
			Expect(query).To(HavePrefix(`UPDATE "addresses" SET "created_at" = $1, "zip" = $2, "updated_at" = NOW() WHERE "id" = $3`))
			Expect(params[1]).To(Equal(pgtype.Int8{Int: 12345, Status: pgtype.Present}))
			Expect(params[2]).To(Equal("a1"))
		})

		It("deletes by id returning the row", func() {
			// ACT
			query, params := newSQLBuilder(entities.ProductSchema).Delete("p1")

			// ASSERT
			Expect(query).To(Equal(`DELETE FROM "products" WHERE "id" = $1 RETURNING ` + productColumns))
			Expect(params).To(Equal([]any{"p1"}))
		})
	})

	Context("relation queries", func() {
		relation, _ := entities.CustomerSchema.Relation("orders")

		It("connects by pointing the target foreign key at the owner", func() {
			Expect(connectQuery(relation)).To(Equal(
				`UPDATE "orders" SET "customer_id" = $1, "updated_at" = NOW() WHERE "id" = ANY($2) RETURNING "id"`))
		})

		It("disconnects only targets owned by the record", func() {
			Expect(disconnectQuery(relation)).To(Equal(
				`UPDATE "orders" SET "customer_id" = NULL, "updated_at" = NOW() WHERE "customer_id" = $1 AND "id" = ANY($2)`))
		})

		It("releases everything outside the kept list", func() {
			Expect(releaseOthersQuery(relation)).To(Equal(
				`UPDATE "orders" SET "customer_id" = NULL, "updated_at" = NOW() WHERE "customer_id" = $1 AND NOT ("id" = ANY($2))`))
		})
	})
})
