package server

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/pettrack/console/model"
)

// Repos bundles every entity repository behind one constructor so the
// route registration stays declarative.
type Repos struct {
	Users         *UsersRepo
	Animals       *EntityRepo[model.Animal]
	Species       *EntityRepo[model.Specie]
	Breeds        *EntityRepo[model.Breed]
	Devices       *EntityRepo[model.Device]
	Notifications *EntityRepo[model.Notification]
	Telemetries   *EntityRepo[model.Telemetry]
}

func NewRepos(db *bun.DB) *Repos {
	return &Repos{
		Users: NewUsersRepo(db),
		Animals: NewEntityRepo(db, uuidHandlers(
			func() *model.Animal { return &model.Animal{} },
			func(m *model.Animal) uuid.UUID { return m.ID },
			func(m *model.Animal, id uuid.UUID) { m.ID = id },
		)),
		Species: NewEntityRepo(db, uuidHandlers(
			func() *model.Specie { return &model.Specie{} },
			func(m *model.Specie) uuid.UUID { return m.ID },
			func(m *model.Specie, id uuid.UUID) { m.ID = id },
		)),
		Breeds: NewEntityRepo(db, uuidHandlers(
			func() *model.Breed { return &model.Breed{} },
			func(m *model.Breed) uuid.UUID { return m.ID },
			func(m *model.Breed, id uuid.UUID) { m.ID = id },
		)),
		Devices: NewEntityRepo(db, uuidHandlers(
			func() *model.Device { return &model.Device{} },
			func(m *model.Device) uuid.UUID { return m.ID },
			func(m *model.Device, id uuid.UUID) { m.ID = id },
		)),
		Notifications: NewEntityRepo(db, uuidHandlers(
			func() *model.Notification { return &model.Notification{} },
			func(m *model.Notification) uuid.UUID { return m.ID },
			func(m *model.Notification, id uuid.UUID) { m.ID = id },
		)),
		Telemetries: NewEntityRepo(db, uuidHandlers(
			func() *model.Telemetry { return &model.Telemetry{} },
			func(m *model.Telemetry) uuid.UUID { return m.ID },
			func(m *model.Telemetry, id uuid.UUID) { m.ID = id },
		)),
	}
}
