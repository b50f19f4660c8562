package client

import (
	"context"
	"net/http"

	"github.com/pettrack/console/model"
)

// Per-entity service constructors. One base path per entity, all
// sharing the same base client and bearer interceptor.

func NewAnimals(base *BaseClient) *Resource[model.Animal] {
	return NewResource[model.Animal](base, "/animals")
}

func NewBreeds(base *BaseClient) *Resource[model.Breed] {
	return NewResource[model.Breed](base, "/breeds")
}

func NewSpecies(base *BaseClient) *Resource[model.Specie] {
	return NewResource[model.Specie](base, "/species")
}

func NewDevices(base *BaseClient) *Resource[model.Device] {
	return NewResource[model.Device](base, "/devices")
}

func NewNotifications(base *BaseClient) *Resource[model.Notification] {
	return NewResource[model.Notification](base, "/notifications")
}

func NewTelemetries(base *BaseClient) *Resource[model.Telemetry] {
	return NewResource[model.Telemetry](base, "/telemetries")
}

// UsersClient adds the self-profile endpoints on top of the plain
// users collection.
type UsersClient struct {
	*Resource[model.User]
	base *BaseClient
}

func NewUsers(base *BaseClient) *UsersClient {
	return &UsersClient{
		Resource: NewResource[model.User](base, "/users"),
		base:     base,
	}
}

// Me fetches the authenticated user's own profile
func (c *UsersClient) Me(ctx context.Context) (*model.User, error) {
	record := &model.User{}
	err := c.base.executeRequest(ctx, outboundRequest{
		method:  http.MethodGet,
		path:    "/users/me",
		respObj: record,
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateMe replaces the authenticated user's own profile and returns
// the stored copy so the session cache can be refreshed wholesale.
func (c *UsersClient) UpdateMe(ctx context.Context, record *model.User) (*model.User, error) {
	updated := &model.User{}
	err := c.base.executeRequest(ctx, outboundRequest{
		method:     http.MethodPut,
		path:       "/users/me",
		reqBodyObj: record,
		respObj:    updated,
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
