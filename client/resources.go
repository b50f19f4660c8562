package client

import (
	"context"
	"fmt"
	"net/http"
)

// Resource is a thin request builder for one REST entity collection.
// The type parameter fixes the record shape; pages that only need raw
// rows can instantiate it with map[string]any.
type Resource[T any] struct {
	base *BaseClient
	path string
}

// NewResource returns a Resource rooted at path (e.g. "/animals")
func NewResource[T any](base *BaseClient, path string) *Resource[T] {
	return &Resource[T]{base: base, path: path}
}

// Path returns the collection path the resource is bound to
func (r *Resource[T]) Path() string {
	return r.path
}

// List fetches the whole collection
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	records := []T{}
	err := r.base.executeRequest(ctx, outboundRequest{
		method:  http.MethodGet,
		path:    r.path,
		respObj: &records,
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Get fetches a single record by id
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	record := new(T)
	err := r.base.executeRequest(ctx, outboundRequest{
		method:  http.MethodGet,
		path:    fmt.Sprintf("%s/%s", r.path, id),
		respObj: record,
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Create posts a new record
func (r *Resource[T]) Create(ctx context.Context, record T) error {
	return r.base.executeRequest(ctx, outboundRequest{
		method:      http.MethodPost,
		path:        r.path,
		reqBodyObj:  record,
		successCode: http.StatusCreated,
	})
}

// Update replaces the record with the given id
func (r *Resource[T]) Update(ctx context.Context, id string, record T) error {
	return r.base.executeRequest(ctx, outboundRequest{
		method:     http.MethodPut,
		path:       fmt.Sprintf("%s/%s", r.path, id),
		reqBodyObj: record,
	})
}

// Delete removes the record with the given id
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.base.executeRequest(ctx, outboundRequest{
		method:      http.MethodDelete,
		path:        fmt.Sprintf("%s/%s", r.path, id),
		successCode: http.StatusNoContent,
	})
}
