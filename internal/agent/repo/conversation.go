package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/food-punch-karachi/server/internal/agent/model"
	errx "github.com/food-punch-karachi/server/internal/core/error"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

type RedisConversationRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisConversationRepository(rdb redis.Cmdable, ttl time.Duration) *RedisConversationRepository {
	return &RedisConversationRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisConversationRepository) displayKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:display", conversationID)
}

func (r *RedisConversationRepository) turnsKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:turns", conversationID)
}

func (r *RedisConversationRepository) LoadConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	var displayCmd, turnsCmd *redis.StringSliceCmd
	_, err := r.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		displayCmd = p.LRange(ctx, r.displayKey(conversationID), 0, -1)
		turnsCmd = p.LRange(ctx, r.turnsKey(conversationID), 0, -1)
		return nil
	})
	if err != nil && err != redis.Nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to load conversation from redis")
		return nil, errx.WrapRedis(err)
	}

	conv := &model.Conversation{
		ConversationID: conversationID,
		Display:        make([]model.DisplayMessage, 0, len(displayCmd.Val())),
		History:        make([]model.Turn, 0, len(turnsCmd.Val())),
	}
	for i, s := range displayCmd.Val() {
		var m model.DisplayMessage
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("conversationID", conversationID).Int("index", i).Msg("failed to unmarshal display message")
			return nil, fmt.Errorf("unmarshal display message at index %d: %w", i, err)
		}
		conv.Display = append(conv.Display, m)
	}
	for i, s := range turnsCmd.Val() {
		var t model.Turn
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			logx.Error().Err(err).Str("conversationID", conversationID).Int("index", i).Msg("failed to unmarshal turn")
			return nil, fmt.Errorf("unmarshal turn at index %d: %w", i, err)
		}
		conv.History = append(conv.History, t)
	}
	return conv, nil
}

func (r *RedisConversationRepository) AppendDisplay(ctx context.Context, conversationID string, messages ...model.DisplayMessage) error {
	if len(messages) == 0 {
		return nil
	}
	rows, err := marshalAll(messages)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to marshal display messages")
		return err
	}

	key := r.displayKey(conversationID)
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, rows...)
		// extend TTL on touch
		if r.ttl > 0 {
			p.Expire(ctx, key, r.ttl)
			p.Expire(ctx, r.turnsKey(conversationID), r.ttl)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push display messages to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// CommitHistory swaps the stored turns for history in one transaction.
func (r *RedisConversationRepository) CommitHistory(ctx context.Context, conversationID string, history []model.Turn) error {
	rows, err := marshalAll(history)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to marshal turns")
		return err
	}

	key := r.turnsKey(conversationID)
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		if len(rows) > 0 {
			p.RPush(ctx, key, rows...)
			if r.ttl > 0 {
				p.Expire(ctx, key, r.ttl)
			}
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to commit history to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisConversationRepository) ClearConversation(ctx context.Context, conversationID string) error {
	if err := r.rdb.Del(ctx, r.displayKey(conversationID), r.turnsKey(conversationID)).Err(); err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to delete conversation from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func marshalAll[T any](values []T) ([]any, error) {
	rows := make([]any, 0, len(values))
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal row %d: %w", i, err)
		}
		rows = append(rows, b)
	}
	return rows, nil
}

var _ model.ConversationRepository = (*RedisConversationRepository)(nil)
