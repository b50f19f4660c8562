package server

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/pettrack/console/model"
)

// Bootstrap creates the schema when it does not exist yet. Standalone
// deployments run against a fresh SQLite file; reruns are no-ops.
func (s *Server) Bootstrap(ctx context.Context) error {
	models := []any{
		(*model.User)(nil),
		(*model.Animal)(nil),
		(*model.Specie)(nil),
		(*model.Breed)(nil),
		(*model.Device)(nil),
		(*model.Notification)(nil),
		(*model.Telemetry)(nil),
	}

	for _, m := range models {
		if _, err := s.db.NewCreateTable().
			Model(m).
			IfNotExists().
			Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create schema")
		}
	}

	return nil
}
