// Package session keeps login sessions in redis.
//
// Layout: app:sess:<id> holds the JSON session with a TTL, app:user_sessions:<matricule>
// indexes the ids of one account so they can all be revoked.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound means the session expired, was revoked or never existed.
var ErrNotFound = errors.New("session not found")

type AppSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAppSessionStore(rdb *redis.Client, ttl time.Duration) *AppSessionStore {
	return &AppSessionStore{rdb: rdb, ttl: ttl}
}

type AppSession struct {
	Matricule string `json:"sub"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func key(id string) string               { return fmt.Sprintf("app:sess:%s", id) }
func userSetKey(matricule string) string { return fmt.Sprintf("app:user_sessions:%s", matricule) }

// TTL is the lifetime of new sessions.
func (s *AppSessionStore) TTL() time.Duration { return s.ttl }

// Create stores a new session and returns its opaque id.
func (s *AppSessionStore) Create(ctx context.Context, matricule, role string) (string, error) {
	id := uuid.NewString()
	now := time.Now()
	b, err := json.Marshal(AppSession{
		Matricule: matricule,
		Role:      role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})
	if err != nil {
		return "", err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(id), b, s.ttl)
	pipe.SAdd(ctx, userSetKey(matricule), id)
	pipe.Expire(ctx, userSetKey(matricule), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (s *AppSessionStore) Get(ctx context.Context, id string) (*AppSession, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var as AppSession
	if err := json.Unmarshal(b, &as); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &as, nil
}

func (s *AppSessionStore) Delete(ctx context.Context, id string) error {
	as, _ := s.Get(ctx, id) // already gone is fine
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	if as != nil {
		pipe.SRem(ctx, userSetKey(as.Matricule), id)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForUser drops every session of an account. Used when it is deleted or deactivated.
func (s *AppSessionStore) RevokeAllForUser(ctx context.Context, matricule string) error {
	ids, err := s.rdb.SMembers(ctx, userSetKey(matricule)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, sid := range ids {
		pipe.Del(ctx, key(sid))
	}
	pipe.Del(ctx, userSetKey(matricule))
	_, err = pipe.Exec(ctx)
	return err
}

// MarkSeen reports whether matricule was not marked within window, and marks it.
func (s *AppSessionStore) MarkSeen(ctx context.Context, matricule string, window time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, "user:lastseen:"+matricule, "1", window).Result()
}
