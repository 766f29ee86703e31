package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	errx "github.com/food-punch-karachi/server/internal/core/error"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
	logx "github.com/food-punch-karachi/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps carts in Redis. Each session uses a hash of item id to
// quantity, a list recording first-insertion order, and an open flag.
type RedisStore struct {
	rdb     redis.Cmdable
	catalog *catalog.Catalog
	ttl     time.Duration
}

// addScript increments a line and records its position when the increment
// created it.
var addScript = redis.NewScript(`
local n = redis.call('HINCRBY', KEYS[1], ARGV[1], 1)
if n == 1 then
	redis.call('RPUSH', KEYS[2], ARGV[1])
end
return n
`)

// updateScript applies a delta to an existing line with a floor of 1. It
// returns -1 when the line does not exist.
var updateScript = redis.NewScript(`
local q = redis.call('HGET', KEYS[1], ARGV[1])
if not q then
	return -1
end
local n = tonumber(q) + tonumber(ARGV[2])
if n < 1 then
	n = 1
end
redis.call('HSET', KEYS[1], ARGV[1], n)
return n
`)

// removeScript drops a line together with its position.
var removeScript = redis.NewScript(`
local removed = redis.call('HDEL', KEYS[1], ARGV[1])
if removed == 1 then
	redis.call('LREM', KEYS[2], 0, ARGV[1])
end
return removed
`)

func NewRedisStore(rdb redis.Cmdable, cat *catalog.Catalog, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, catalog: cat, ttl: ttl}
}

func (s *RedisStore) linesKey(sessionID string) string { return fmt.Sprintf("cart:%s:lines", sessionID) }
func (s *RedisStore) orderKey(sessionID string) string { return fmt.Sprintf("cart:%s:order", sessionID) }
func (s *RedisStore) openKey(sessionID string) string  { return fmt.Sprintf("cart:%s:open", sessionID) }

func (s *RedisStore) keys(sessionID string) []string {
	return []string{s.linesKey(sessionID), s.orderKey(sessionID), s.openKey(sessionID)}
}

// touch extends the TTL of every key of the session.
func (s *RedisStore) touch(ctx context.Context, sessionID string) error {
	if s.ttl <= 0 {
		return nil
	}
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range s.keys(sessionID) {
			p.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to extend cart ttl")
		return errx.WrapRedis(err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	var (
		order  *redis.StringSliceCmd
		counts *redis.MapStringStringCmd
		open   *redis.StringCmd
	)
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		order = p.LRange(ctx, s.orderKey(sessionID), 0, -1)
		counts = p.HGetAll(ctx, s.linesKey(sessionID))
		open = p.Get(ctx, s.openKey(sessionID))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to load cart from redis")
		return nil, errx.WrapRedis(err)
	}

	c := &Cart{Open: open.Val() == "1"}
	quantities := counts.Val()
	for _, id := range order.Val() {
		qty, err := strconv.Atoi(quantities[id])
		if err != nil || qty <= 0 {
			continue
		}
		item, ok := s.catalog.Find(id)
		if !ok {
			logx.Warn().Str("session_id", sessionID).Str("item_id", id).Msg("cart references unknown item; skipping")
			continue
		}
		c.Lines = append(c.Lines, Line{Item: item, Quantity: qty})
	}
	return c, nil
}

func (s *RedisStore) Add(ctx context.Context, sessionID string, item catalog.Item, open bool) error {
	keys := []string{s.linesKey(sessionID), s.orderKey(sessionID)}
	if err := addScript.Run(ctx, s.rdb, keys, item.ID).Err(); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Str("item_id", item.ID).Msg("failed to increment cart line")
		return errx.WrapRedis(err)
	}
	if open {
		if err := s.rdb.Set(ctx, s.openKey(sessionID), "1", s.ttl).Err(); err != nil {
			return errx.WrapRedis(err)
		}
	}
	return s.touch(ctx, sessionID)
}

func (s *RedisStore) UpdateQuantity(ctx context.Context, sessionID, itemID string, delta int) error {
	n, err := updateScript.Run(ctx, s.rdb, []string{s.linesKey(sessionID)}, itemID, delta).Int()
	if err != nil {
		return errx.WrapRedis(err)
	}
	if n < 0 {
		return ErrLineNotFound
	}
	return s.touch(ctx, sessionID)
}

func (s *RedisStore) Remove(ctx context.Context, sessionID, itemID string) error {
	keys := []string{s.linesKey(sessionID), s.orderKey(sessionID)}
	removed, err := removeScript.Run(ctx, s.rdb, keys, itemID).Int()
	if err != nil {
		return errx.WrapRedis(err)
	}
	if removed == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (s *RedisStore) SetOpen(ctx context.Context, sessionID string, open bool) error {
	v := "0"
	if open {
		v = "1"
	}
	if err := s.rdb.Set(ctx, s.openKey(sessionID), v, s.ttl).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, s.keys(sessionID)...).Err(); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to clear cart")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
