package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as plain keys "<prefix>:<sid>" holding the
// user id, with the session TTL as key expiry.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "sess"
	}
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (s *RedisStore) key(sid string) string { return s.prefix + ":" + sid }

func (s *RedisStore) Create(ctx context.Context, userID uint64) (string, error) {
	sid := newID()
	if err := s.rdb.Set(ctx, s.key(sid), strconv.FormatUint(userID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisStore) Get(ctx context.Context, sid string) (uint64, error) {
	v, err := s.rdb.Get(ctx, s.key(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return id, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, s.key(sid)).Err()
}

// New picks the Redis store when a client is available and falls back to
// process memory otherwise.
func New(rdb *redis.Client, ttl time.Duration) Store {
	if rdb == nil {
		return NewMemoryStore(ttl)
	}
	return NewRedisStore(rdb, ttl, "sess")
}
