package http

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"storeadmin/src/domain"
	"storeadmin/src/domain/entities"
)

var _ = Describe("parseFindManyQuery", func() {
	It("nests bracket keys into filters", func() {
		// ACT
		query, err := parseFindManyQuery("where[city][equals]=Lisbon&where[zip][gte]=1000&where[state]=LX")

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(query.Where).To(Equal(map[string]any{
			"city":  map[string]any{"equals": "Lisbon"},
			"zip":   map[string]any{"gte": "1000"},
			"state": "LX",
		}))
	})

	It("collects lists from [] and repeated keys", func() {
		// ACT
		query, err := parseFindManyQuery("where[id][in][]=a&where[id][in][]=b&where[city][notIn]=x&where[city][notIn]=y")

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(query.Where["id"]).To(Equal(map[string]any{"in": []any{"a", "b"}}))
		Expect(query.Where["city"]).To(Equal(map[string]any{"notIn": []any{"x", "y"}}))
	})

	It("keeps the orderBy sequence", func() {
		// ACT
		query, err := parseFindManyQuery("orderBy[zip]=desc&orderBy[1][city]=asc")

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(query.OrderBy).To(Equal([]map[string]any{{"zip": "desc"}, {"city": "asc"}}))
	})

	It("unescapes keys and values", func() {
		// ACT
		query, err := parseFindManyQuery("where%5Bcity%5D%5Bcontains%5D=S%C3%A3o+Paulo&skip=2&take=3")

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(query.Where["city"]).To(Equal(map[string]any{"contains": "São Paulo"}))
		Expect(query.Skip).To(Equal("2"))
		Expect(query.Take).To(Equal("3"))
	})

	It("rejects malformed brackets", func() {
		// ACT
		_, err := parseFindManyQuery("where[city=Lisbon")

		// ASSERT
		Expect(err).To(MatchError(ContainSubstring("invalid query parameter")))
	})

	It("turns the parsed query into typed args", func() {
		// ARRANGE
		query, err := parseFindManyQuery("where[zip][in]=1000,2000")
		Expect(err).NotTo(HaveOccurred())

		// ACT
		args, err := query.Args(entities.AddressSchema)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(args.Where).To(Equal([]domain.Condition{
			{Field: "zip", Column: "zip", Operator: domain.OpIn, Value: []int64{1000, 2000}},
		}))
	})
})

var _ = Describe("splitBrackets", func() {
	DescribeTable("paths",
		func(key string, expected []string, ok bool) {
			path, valid := splitBrackets(key)
			Expect(valid).To(Equal(ok))
			if ok {
				Expect(path).To(Equal(expected))
			}
		},
		Entry("plain key", "skip", []string{"skip"}, true),
		Entry("nested", "where[city][in][]", []string{"where", "city", "in", ""}, true),
		Entry("missing head", "[city]", nil, false),
		Entry("unclosed", "where[city", nil, false),
		Entry("garbage between brackets", "where[a]x[b]", nil, false),
	)
})
