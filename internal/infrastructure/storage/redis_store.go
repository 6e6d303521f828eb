package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CamiloBytes/reportesvc/domain"
)

const (
	userKeyPrefix  = "sess:user:"
	tokenKeyPrefix = "sess:token:"
)

// RedisStore implements domain.SessionStore on Redis. Each session is two
// entries, the serialized user record and the bare token, mirroring the
// original storage layout where absence of either means "logged out". Both
// carry the expiry window as TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) domain.SessionStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Save implements domain.SessionStore.
func (s *RedisStore) Save(ctx context.Context, session *domain.Session) error {
	now := time.Now()
	if session.LoginTime.IsZero() {
		session.LoginTime = now
	}
	if session.LastActivity.IsZero() {
		session.LastActivity = now
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKeyPrefix+session.Token, data, s.ttl)
	pipe.Set(ctx, tokenKeyPrefix+session.Token, session.Token, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Load implements domain.SessionStore. Either entry missing, or an
// unparsable user record, reads as no session.
func (s *RedisStore) Load(ctx context.Context, token string) (*domain.Session, error) {
	values, err := s.client.MGet(ctx, userKeyPrefix+token, tokenKeyPrefix+token).Result()
	if err != nil {
		return nil, err
	}
	if values[0] == nil || values[1] == nil {
		return nil, domain.ErrSessionNotFound
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

// Touch implements domain.SessionStore. It refreshes LastActivity in place
// without extending the key TTL; expiry is measured from login.
func (s *RedisStore) Touch(ctx context.Context, token string) error {
	session, err := s.Load(ctx, token)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return nil
		}
		return err
	}

	session.LastActivity = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.client.Set(ctx, userKeyPrefix+token, data, redis.KeepTTL).Err()
}

// Delete implements domain.SessionStore. Deleting an absent session is not
// an error.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, userKeyPrefix+token, tokenKeyPrefix+token).Err()
}

var _ domain.SessionStore = (*RedisStore)(nil)
