package console

import (
	"context"

	"github.com/pettrack/console/client"
	"github.com/pettrack/console/model"
)

// UserProfileService is the profile surface the perfil page needs
type UserProfileService interface {
	UpdateMe(ctx context.Context, record *model.User) (*model.User, error)
}

// Services bundles the API clients the console pages depend on. The
// resource pages work on raw rows so one client type serves them all.
type Services struct {
	Auth  *client.AuthClient
	Users *client.UsersClient

	base  *client.BaseClient
	pages map[string]*client.Resource[map[string]any]
}

// NewServices builds the service bundle over one shared base client
func NewServices(base *client.BaseClient) *Services {
	return &Services{
		Auth:  client.NewAuthClient(base),
		Users: client.NewUsers(base),
		base:  base,
		pages: map[string]*client.Resource[map[string]any]{},
	}
}

// Page returns the raw-row client for a resource slug, e.g. "animals"
func (s *Services) Page(slug string) *client.Resource[map[string]any] {
	if svc, ok := s.pages[slug]; ok {
		return svc
	}

	svc := client.NewResource[map[string]any](s.base, "/"+slug)
	s.pages[slug] = svc
	return svc
}
