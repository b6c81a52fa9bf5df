package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis, one key per session, expiring with
// the session itself.
type RedisStore struct {
	Client *redis.Client
	Prefix string
	Now    func() time.Time
}

// NewRedisStore returns a session store backed by client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		Client: client,
		Prefix: "imeiwatch:session:",
		Now:    time.Now,
	}
}

type redisSession struct {
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	ttl := sess.ExpiresAt.Sub(s.Now())
	if ttl <= 0 {
		return errors.New("creating session: already expired")
	}

	data, err := json.Marshal(redisSession{
		Admin:     sess.Admin,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	ok, err := s.Client.SetNX(ctx, s.Prefix+sess.ID, data, ttl).Result()
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	if !ok {
		return errors.New("creating session: id already in use")
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.Client.Get(ctx, s.Prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	if !s.Now().Before(rs.ExpiresAt) {
		return nil, nil
	}
	return &Session{
		ID:        id,
		Admin:     rs.Admin,
		CreatedAt: rs.CreatedAt,
		ExpiresAt: rs.ExpiresAt,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.Client.Del(ctx, s.Prefix+id).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
