package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storeadmin/src/domain"
	"storeadmin/src/infra/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EntityStore é o contrato de persistência de uma entidade.
// Registro ausente vira domain.ErrNotFound, unicidade violada vira domain.ErrConflict.
type EntityStore[T any] interface {
	Create(ctx context.Context, input domain.Input) (*T, error)
	FindMany(ctx context.Context, args domain.FindManyArgs) ([]T, error)
	FindOne(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, input domain.Input) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// EntityRepository implementa EntityStore para qualquer entidade descrita por um EntitySchema.
// T precisa ter tags `db` que casem exatamente com schema.Columns().
type EntityRepository[T any] struct {
	schema domain.EntitySchema
	client *postgres.ReadWriteClient
}

func NewEntityRepository[T any](schema domain.EntitySchema, client *postgres.ReadWriteClient) *EntityRepository[T] {
	return &EntityRepository[T]{schema: schema, client: client}
}

func (r *EntityRepository[T]) Schema() domain.EntitySchema {
	return r.schema
}

func (r *EntityRepository[T]) FindMany(ctx context.Context, args domain.FindManyArgs) ([]T, error) {
	query, params := newSQLBuilder(r.schema).Select(args)

	rows, err := r.client.GetReadPool().Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("EntityRepository.FindMany - %s query failed: %w", r.schema.Name, err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("EntityRepository.FindMany - failed to scan %s rows: %w", r.schema.Name, err)
	}

	for i := range records {
		linkRelations(&records[i])
	}

	return records, nil
}

func (r *EntityRepository[T]) FindOne(ctx context.Context, id string) (*T, error) {
	query, params := newSQLBuilder(r.schema).SelectByID(id)

	rows, err := r.client.GetReadPool().Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("EntityRepository.FindOne - %s query failed: %w", r.schema.Name, err)
	}

	return r.collectOne(rows, id, "FindOne")
}

func (r *EntityRepository[T]) Create(ctx context.Context, input domain.Input) (*T, error) {
	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	tx, err := r.client.GetWritePool().Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("EntityRepository.Create - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query, params := newSQLBuilder(r.schema).Insert(id, input)

	rows, err := tx.Query(ctx, query, params...)
	if err != nil {
		return nil, r.mapWriteError("Create", input, err)
	}

	record, err := r.collectOne(rows, id, "Create")
	if err != nil {
		return nil, r.mapWriteError("Create", input, err)
	}

	if err := r.applyRelationChanges(ctx, tx, id, input.Relations); err != nil {
		return nil, fmt.Errorf("EntityRepository.Create - %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, r.mapWriteError("Create", input, err)
	}

	return record, nil
}

func (r *EntityRepository[T]) Update(ctx context.Context, id string, input domain.Input) (*T, error) {
	tx, err := r.client.GetWritePool().Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("EntityRepository.Update - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query, params := newSQLBuilder(r.schema).Update(id, input)

	rows, err := tx.Query(ctx, query, params...)
	if err != nil {
		return nil, r.mapWriteError("Update", input, err)
	}

	record, err := r.collectOne(rows, id, "Update")
	if err != nil {
		return nil, r.mapWriteError("Update", input, err)
	}

	if err := r.applyRelationChanges(ctx, tx, id, input.Relations); err != nil {
		return nil, fmt.Errorf("EntityRepository.Update - %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, r.mapWriteError("Update", input, err)
	}

	return record, nil
}

// Delete remove o registro; as FKs que apontam para ele viram NULL (ON DELETE SET NULL).
func (r *EntityRepository[T]) Delete(ctx context.Context, id string) (*T, error) {
	query, params := newSQLBuilder(r.schema).Delete(id)

	rows, err := r.client.GetWritePool().Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("EntityRepository.Delete - %s delete failed: %w", r.schema.Name, err)
	}

	return r.collectOne(rows, id, "Delete")
}

func (r *EntityRepository[T]) collectOne(rows pgx.Rows, id string, method string) (*T, error) {
	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("EntityRepository.%s - %w", method, domain.NewNotFoundError("id", id))
		}
		return nil, err
	}

	linkRelations(&record)
	return &record, nil
}

func (r *EntityRepository[T]) applyRelationChanges(ctx context.Context, tx pgx.Tx, id string, changes []domain.RelationChange) error {
	for _, change := range changes {
		relation := change.Relation

		if len(change.Disconnect) > 0 {
			if _, err := tx.Exec(ctx, disconnectQuery(relation), id, change.Disconnect); err != nil {
				return fmt.Errorf("failed to disconnect %s: %w", relation.Name, err)
			}
		}

		connect := change.Connect
		if change.Replace {
			// slice nil seria enviado como NULL e o ANY não casaria com nada
			keep := append([]string{}, change.Set...)
			if _, err := tx.Exec(ctx, releaseOthersQuery(relation), id, keep); err != nil {
				return fmt.Errorf("failed to set %s: %w", relation.Name, err)
			}
			connect = append(append([]string{}, change.Set...), change.Connect...)
		}

		if len(connect) == 0 {
			continue
		}

		rows, err := tx.Query(ctx, connectQuery(relation), id, connect)
		if err != nil {
			return fmt.Errorf("failed to connect %s: %w", relation.Name, err)
		}

		connected, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("failed to connect %s: %w", relation.Name, err)
		}

		if missing := firstMissing(connect, connected); missing != "" {
			return domain.NewNotFoundError("id", missing)
		}
	}

	return nil
}

// mapWriteError traduz os códigos do PostgreSQL para os erros de domínio.
func (r *EntityRepository[T]) mapWriteError(method string, input domain.Input, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("EntityRepository.%s - %s: %w", method, r.schema.Name, domain.ErrConflict)
	}

	if postgres.IsForeignKeyViolation(err) {
		constraint := postgres.ConstraintName(err)
		for _, relation := range r.schema.Relations {
			if relation.Kind != domain.RelationToOne || !strings.Contains(constraint, relation.Column) {
				continue
			}
			if target, ok := input.Values[relation.Column].(*string); ok && target != nil {
				return fmt.Errorf("EntityRepository.%s - %w", method, domain.NewNotFoundError("id", *target))
			}
		}
		return fmt.Errorf("EntityRepository.%s - %s: %w", method, constraint, domain.ErrNotFound)
	}

	return fmt.Errorf("EntityRepository.%s - %s write failed: %w", method, r.schema.Name, err)
}

func linkRelations[T any](record *T) {
	if linker, ok := any(record).(domain.RelationLinker); ok {
		linker.LinkRelations()
	}
}

func firstMissing(expected []string, found []string) string {
	seen := make(map[string]bool, len(found))
	for _, id := range found {
		seen[id] = true
	}
	for _, id := range expected {
		if !seen[id] {
			return id
		}
	}
	return ""
}
