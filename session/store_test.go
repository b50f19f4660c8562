package session_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/pettrack/console/model"
	"github.com/pettrack/console/session"
)

func testDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	return bun.NewDB(sqldb, sqlitedialect.New())
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	store, err := session.NewStore(ctx, db)
	require.NoError(t, err)

	assert.True(t, store.Load(ctx).Empty())

	user := &model.User{Name: "Maria", Email: "maria@example.com", Role: model.RoleAdmin}
	require.NoError(t, store.Save(ctx, "token-1", user))

	current := store.Current()
	assert.Equal(t, "token-1", current.AccessToken)
	assert.Equal(t, model.RoleAdmin, current.Role())

	// a fresh store over the same database restores the session
	restored, err := session.NewStore(ctx, db)
	require.NoError(t, err)

	loaded := restored.Load(ctx)
	assert.Equal(t, "token-1", loaded.AccessToken)
	require.NotNil(t, loaded.User)
	assert.Equal(t, "maria@example.com", loaded.User.Email)
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	store, err := session.NewStore(ctx, db)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "token-1", &model.User{Email: "a@example.com", Role: model.RoleUser}))
	require.NoError(t, store.Save(ctx, "token-2", &model.User{Email: "b@example.com", Role: model.RoleEditor}))

	current := store.Current()
	assert.Equal(t, "token-2", current.AccessToken)
	assert.Equal(t, "b@example.com", current.User.Email)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	store, err := session.NewStore(ctx, db)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "token-1", &model.User{Email: "a@example.com"}))
	require.NoError(t, store.Clear(ctx))

	assert.True(t, store.Current().Empty())
	assert.True(t, store.Load(ctx).Empty())

	// clearing twice is a no-op
	require.NoError(t, store.Clear(ctx))
	assert.True(t, store.Current().Empty())
}
