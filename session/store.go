package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/pettrack/console/model"
)

const (
	// StateKeyToken is the persisted key holding the raw bearer token
	StateKeyToken = "token"
	// StateKeyUser is the persisted key holding the serialized user profile
	StateKeyUser = "user"
)

// StateRecord is one persisted key/value pair of console state
type StateRecord struct {
	bun.BaseModel `bun:"table:console_state,alias:cst"`
	Key           string     `bun:"key,pk" json:"key"`
	Value         string     `bun:"value,notnull" json:"value"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Store is the single source of truth for "who is logged in". It keeps
// the current session in memory and mirrors it to a durable key/value
// table so the session survives console restarts. No network calls
// originate here.
type Store struct {
	db *bun.DB

	mu      sync.RWMutex
	current Session
}

// NewStore creates the backing table when missing and returns an
// initialized store. The in-memory session starts empty until Load.
func NewStore(ctx context.Context, db *bun.DB) (*Store, error) {
	if _, err := db.NewCreateTable().
		Model((*StateRecord)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create console state table")
	}

	return &Store{db: db}, nil
}

// Load restores the persisted session. A missing key or a user profile
// that fails to parse yields an empty session; a stale half-written
// pair never surfaces as a partial session.
func (s *Store) Load(ctx context.Context) Session {
	token, ok := s.read(ctx, StateKeyToken)
	if !ok {
		return s.replace(Session{})
	}

	raw, ok := s.read(ctx, StateKeyUser)
	if !ok {
		return s.replace(Session{})
	}

	user := &model.User{}
	if err := json.Unmarshal([]byte(raw), user); err != nil {
		return s.replace(Session{})
	}

	return s.replace(Session{AccessToken: token, User: user})
}

// Current returns the in-memory session
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save overwrites the in-memory and persisted token and user as one
// logical unit. Both rows are written in a single transaction so a
// reader never observes token-present/user-absent.
func (s *Store) Save(ctx context.Context, token string, user *model.User) error {
	serialized, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to serialize user profile")
	}

	err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := upsertState(ctx, tx, StateKeyToken, token); err != nil {
			return err
		}
		return upsertState(ctx, tx, StateKeyUser, string(serialized))
	})
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist session")
	}

	s.replace(Session{AccessToken: token, User: user})
	return nil
}

// Clear resets the in-memory state and removes both persisted keys.
// The in-memory session is dropped even when the delete fails, so the
// caller always ends up logged out.
func (s *Store) Clear(ctx context.Context) error {
	s.replace(Session{})

	_, err := s.db.NewDelete().
		Model((*StateRecord)(nil)).
		Where("?TableAlias.key IN (?, ?)", StateKeyToken, StateKeyUser).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to clear persisted session")
	}

	return nil
}

func (s *Store) replace(next Session) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
	return next
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	record := &StateRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return "", false
	}
	return record.Value, true
}

func upsertState(ctx context.Context, tx bun.Tx, key, value string) error {
	now := time.Now()
	record := &StateRecord{Key: key, Value: value, UpdatedAt: &now}

	_, err := tx.NewInsert().
		Model(record).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	return err
}
