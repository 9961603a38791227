package test_seeder

import (
	"context"
	"fmt"
)

// CountRows retorna quantas linhas existem na tabela.
func (ts TestSeeder) CountRows(ctx context.Context, table string) int {
	var count int
	if err := ts.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
		panic(fmt.Sprintf("Seeder.CountRows failed: %v", err))
	}
	return count
}

// SelectForeignKey lê a FK de uma linha; nil quando a coluna está NULL.
func (ts TestSeeder) SelectForeignKey(ctx context.Context, table string, column string, id string) *string {
	var value *string
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", column, table)
	if err := ts.pool.QueryRow(ctx, query, id).Scan(&value); err != nil {
		panic(fmt.Sprintf("Seeder.SelectForeignKey failed: %v", err))
	}
	return value
}
