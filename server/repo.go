package server

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EntityRepo wraps the generic repository with the collection queries
// the REST handlers need.
type EntityRepo[T any] struct {
	repository.Repository[*T]
	db       *bun.DB
	handlers repository.ModelHandlers[*T]
}

// NewEntityRepo builds an EntityRepo from the given model handlers
func NewEntityRepo[T any](db *bun.DB, handlers repository.ModelHandlers[*T]) *EntityRepo[T] {
	return &EntityRepo[T]{
		Repository: repository.NewRepository[*T](db, handlers),
		db:         db,
		handlers:   handlers,
	}
}

// List fetches the whole collection
func (r *EntityRepo[T]) List(ctx context.Context) ([]*T, error) {
	records := []*T{}
	if err := r.db.NewSelect().Model(&records).Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID fetches a single record by primary key
func (r *EntityRepo[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	record := new(T)
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

// DeleteByID removes a record by primary key
func (r *EntityRepo[T]) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*T)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

// UpdateByID replaces a record in place
func (r *EntityRepo[T]) UpdateByID(ctx context.Context, id uuid.UUID, record *T) (*T, error) {
	r.handlers.SetID(record, id)
	return r.Repository.Update(ctx, record, repository.UpdateByID(id.String()))
}

// uuidHandlers builds ModelHandlers for records keyed by a uuid primary key
func uuidHandlers[T any](newRecord func() *T, getID func(*T) uuid.UUID, setID func(*T, uuid.UUID)) repository.ModelHandlers[*T] {
	return repository.ModelHandlers[*T]{
		NewRecord: newRecord,
		GetID: func(record *T) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return getID(record)
		},
		SetID: func(record *T, id uuid.UUID) {
			if record != nil {
				setID(record, id)
			}
		},
	}
}
