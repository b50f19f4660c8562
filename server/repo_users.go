package server

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/pettrack/console/model"
)

// UsersRepo adds the auth-flow queries on top of the generic entity
// repository.
type UsersRepo struct {
	*EntityRepo[model.User]
	db *bun.DB
}

func NewUsersRepo(db *bun.DB) *UsersRepo {
	repo := NewEntityRepo(db, uuidHandlers(
		func() *model.User { return &model.User{} },
		func(m *model.User) uuid.UUID { return m.ID },
		func(m *model.User, id uuid.UUID) { m.ID = id },
	))

	return &UsersRepo{
		EntityRepo: repo,
		db:         db,
	}
}

// GetByEmail fetches a user by email address
func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	record := &model.User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

// Register creates a new account with defaults applied. The ID is
// derived from the email so repeated registrations of the same address
// collide on the primary key as well as the unique email column.
func (r *UsersRepo) Register(ctx context.Context, user *model.User) (*model.User, error) {
	prepareUserDefaults(user)
	return r.Create(ctx, user)
}

// TrackSuccessfulLogin resets the attempt counters and stamps the login
func (r *UsersRepo) TrackSuccessfulLogin(ctx context.Context, user *model.User) error {
	// NOTE: Updating through the ORM won't reset login_attempt_at and
	// login_attempts to their zero values.
	loggedInAt := time.Now()
	_, err := r.db.NewRaw(`
		UPDATE "users" AS "usr"
		SET
			"loggedin_at" = ?,
			"login_attempt_at" = NULL,
			"login_attempts" = 0
		WHERE
			("usr".id = ?)
			AND "usr"."deleted_at" IS NULL;
	`, loggedInAt, user.ID).Exec(ctx)

	return err
}

// TrackAttemptedLogin bumps the failed attempt counter
func (r *UsersRepo) TrackAttemptedLogin(ctx context.Context, user *model.User) error {
	record := &model.User{}
	record.ID = user.ID
	record.LoginAttempts = user.LoginAttempts + 1
	now := time.Now()
	record.LoginAttemptAt = &now

	_, err := r.Repository.Update(ctx, record, repository.UpdateByID(user.ID.String()))

	return err
}

func prepareUserDefaults(record *model.User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = model.RoleUser
	}

	if record.ID == uuid.Nil {
		if id, err := hashid.NewUUID(record.Email); err == nil {
			record.ID = id
		} else {
			record.ID = uuid.New()
		}
	}
}
