package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"storeadmin/src/infra/postgres"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ = Describe("Postgres helpers", func() {
	Context("error classification", func() {
		It("recognizes no rows from pgx and database/sql, wrapped or not", func() {
			Expect(postgres.IsNoRows(pgx.ErrNoRows)).To(BeTrue())
			Expect(postgres.IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows))).To(BeTrue())
			Expect(postgres.IsNoRows(sql.ErrNoRows)).To(BeTrue())
			Expect(postgres.IsNoRows(errors.New("connection reset"))).To(BeFalse())
		})

		It("reads the SQLSTATE and constraint of PostgreSQL errors", func() {
			// ARRANGE
			unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "customers_pkey"})
			foreignKey := &pgconn.PgError{Code: "23503", ConstraintName: "orders_customer_id_fkey"}

			// ASSERT
			Expect(postgres.IsUniqueViolation(unique)).To(BeTrue())
			Expect(postgres.IsForeignKeyViolation(unique)).To(BeFalse())
			Expect(postgres.ConstraintName(unique)).To(Equal("customers_pkey"))

			Expect(postgres.IsForeignKeyViolation(foreignKey)).To(BeTrue())
			Expect(postgres.ConstraintName(errors.New("plain"))).To(BeEmpty())
		})
	})

	Context("ToParam", func() {
		It("turns nil pointers into NULL parameters", func() {
			Expect(postgres.ToParam((*string)(nil))).To(Equal(pgtype.Text{Status: pgtype.Null}))
			Expect(postgres.ToParam((*int64)(nil))).To(Equal(pgtype.Int8{Status: pgtype.Null}))
			Expect(postgres.ToParam((*float64)(nil))).To(Equal(pgtype.Float8{Status: pgtype.Null}))
			Expect(postgres.ToParam((*time.Time)(nil))).To(Equal(pgtype.Timestamptz{Status: pgtype.Null}))
		})

		It("keeps present values and passes other types through", func() {
			// ARRANGE
			name := "Lamp"
			quantity := int64(3)

			// ASSERT
			Expect(postgres.ToParam(&name)).To(Equal(pgtype.Text{String: "Lamp", Status: pgtype.Present}))
			Expect(postgres.ToParam(&quantity)).To(Equal(pgtype.Int8{Int: 3, Status: pgtype.Present}))
			Expect(postgres.ToParam("raw")).To(Equal("raw"))
		})
	})
})
