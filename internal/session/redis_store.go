package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultTTL        = 24 * time.Hour
	defaultMaxRetries = 8
)

// RedisStore keeps each game as JSON under game:<id> and indexes
// participants in game:index:user:<id> sets. Update uses WATCH on the game
// key, so a write that raced with another update is retried.
type RedisStore struct {
	rdb        *redis.Client
	ttl        time.Duration
	maxRetries int
	logger     *zap.Logger
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL sets how long an untouched game survives.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxRetries bounds Update attempts before ErrConcurrentUpdate.
func WithMaxRetries(n int) RedisOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithStoreLogger sets the logger for retry diagnostics.
func WithStoreLogger(l *zap.Logger) RedisOption {
	return func(s *RedisStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewRedisStore connects to redisURL (redis:// or rediss://) and pings it.
func NewRedisStore(ctx context.Context, redisURL string, opts ...RedisOption) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for redis store")
	}
	ropts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(ropts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStoreFromClient(rdb, opts...), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(rdb *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{rdb: rdb, ttl: defaultTTL, maxRetries: defaultMaxRetries, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

// Create writes the game and its index entries in one MULTI. The game key
// is watched so a concurrent Create of the same id fails with ErrGameExists.
func (s *RedisStore) Create(ctx context.Context, g *Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	key := gameKey(g.ID)
	err = s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrGameExists
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, s.ttl)
			for _, user := range []string{g.WhiteID, g.BlackID} {
				idx := idxUserKey(user)
				pipe.SAdd(ctx, idx, g.ID)
				pipe.Expire(ctx, idx, s.ttl)
			}
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrGameExists
	}
	return err
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Game, error) {
	raw, err := s.rdb.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeGame(raw)
}

func (s *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*Game, error) {
	key := gameKey(id)
	var out *Game
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}
		cur, err := decodeGame(raw)
		if err != nil {
			return err
		}
		if err := fn(cur); err != nil {
			return err
		}
		next, err := json.Marshal(cur)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, s.ttl)
			for _, user := range []string{cur.WhiteID, cur.BlackID} {
				pipe.Expire(ctx, idxUserKey(user), s.ttl)
			}
			return nil
		})
		if err != nil {
			return err
		}
		out = cur
		return nil
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err := s.rdb.Watch(ctx, txf, key)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		s.logger.Debug("game_update_retry", zap.String("game_id", id), zap.Int("attempt", attempt))
	}
	return nil, ErrConcurrentUpdate
}

func (s *RedisStore) GamesByUser(ctx context.Context, userID string) ([]*Game, error) {
	key := idxUserKey(userID)
	ids, err := s.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*Game, 0, len(ids))
	var stale []any
	for _, id := range ids {
		g, err := s.Load(ctx, id)
		if errors.Is(err, ErrGameNotFound) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if len(stale) > 0 {
		_ = s.rdb.SRem(ctx, key, stale...).Err()
	}
	sortByRecent(out)
	return out, nil
}

func decodeGame(raw []byte) (*Game, error) {
	var g Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	return &g, nil
}

func gameKey(id string) string { return "game:" + strings.TrimSpace(id) }
func idxUserKey(userID string) string { return "game:index:user:" + strings.TrimSpace(userID) }
