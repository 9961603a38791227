package admin_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"storeadmin/src/adapters/admin"
)

var _ = DescribeTable("Title",
	func(record map[string]any, titleField string, expected string) {
		Expect(admin.Title(record, titleField)).To(Equal(expected))
	},
	Entry("uses the title field", map[string]any{"id": "p1", "name": "Chair"}, "name", "Chair"),
	Entry("falls back to the id when empty", map[string]any{"id": "p1", "name": ""}, "name", "p1"),
	Entry("falls back to the id when null", map[string]any{"id": "c1", "firstName": nil}, "firstName", "c1"),
	Entry("falls back to the id when absent", map[string]any{"id": "a1"}, "address_1", "a1"),
	Entry("formats numbers without exponent", map[string]any{"id": "a1", "zip": float64(4000)}, "zip", "4000"),
	Entry("formats decimals", map[string]any{"id": "p1", "itemPrice": 9.5}, "itemPrice", "9.5"),
	Entry("uses the id of a reference", map[string]any{"id": "o1", "customer": map[string]any{"id": "c1"}}, "customer", "c1"),
	Entry("is the id itself for orders", map[string]any{"id": "o1"}, "id", "o1"),
)
