package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// SessionRepositoryImpl implements the SessionRepository interface. The
// session is a single persisted User value; presence alone means logged in.
type SessionRepositoryImpl struct {
	kv ports.KVStore
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(kv ports.KVStore) ports.SessionRepository {
	return &SessionRepositoryImpl{kv: kv}
}

func (r *SessionRepositoryImpl) Current(ctx context.Context) (*entities.User, error) {
	raw, ok, err := r.kv.Get(ctx, ports.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil, entities.ErrNotLoggedIn
	}

	var user entities.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, entities.ErrNotLoggedIn
	}
	return &user, nil
}

func (r *SessionRepositoryImpl) Save(ctx context.Context, user *entities.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := r.kv.Set(ctx, ports.KeyUser, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (r *SessionRepositoryImpl) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, ports.KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// RecordSignup writes the last signup submission. The record is a write-only
// audit trail; nothing ever reads it back for authentication.
func (r *SessionRepositoryImpl) RecordSignup(ctx context.Context, user *entities.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode registered user: %w", err)
	}
	if err := r.kv.Set(ctx, ports.KeyRegisteredUser, raw); err != nil {
		return fmt.Errorf("write registered user: %w", err)
	}
	return nil
}
