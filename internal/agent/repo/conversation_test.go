package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/food-punch-karachi/server/internal/agent/model"
)

func newRedisRepo(t *testing.T, ttl time.Duration) (*RedisConversationRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisConversationRepository(rdb, ttl), mr
}

func TestRedisConversationRepository_Unknown(t *testing.T) {
	r, _ := newRedisRepo(t, time.Hour)

	conv, err := r.LoadConversation(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, "unknown", conv.ConversationID)
	assert.Empty(t, conv.Display)
	assert.Empty(t, conv.History)
}

func TestRedisConversationRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r, _ := newRedisRepo(t, time.Hour)

	require.NoError(t, r.AppendDisplay(ctx, "s1", model.DisplayMessage{Role: model.RoleUser, Text: "2 khawsa"}))
	require.NoError(t, r.AppendDisplay(ctx, "s1", model.DisplayMessage{Role: model.RoleModel, Text: "Added!"}))

	history := []model.Turn{
		model.UserTurn("2 khawsa"),
		model.ModelTurn(model.FunctionCallPart(model.FunctionCall{
			ID:   "call_1",
			Name: "addToCart",
			Args: map[string]any{"items": []any{map[string]any{"itemName": "Khawsa", "quantity": float64(2)}}},
		})),
		model.ToolResultTurn(model.FunctionResponse{
			ID:       "call_1",
			Name:     "addToCart",
			Response: map[string]any{"success": true, "message": "Successfully added: 2x Special Chicken Khawsa"},
		}),
		model.ModelTurn(model.TextPart("Added!")),
	}
	require.NoError(t, r.CommitHistory(ctx, "s1", history))

	conv, err := r.LoadConversation(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []model.DisplayMessage{
		{Role: model.RoleUser, Text: "2 khawsa"},
		{Role: model.RoleModel, Text: "Added!"},
	}, conv.Display)
	assert.Equal(t, history, conv.History)
	assert.NoError(t, model.ValidateHistory(conv.History))
}

func TestRedisConversationRepository_CommitReplacesHistory(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRepo(t, time.Hour)

	first := []model.Turn{model.UserTurn("hi"), model.ModelTurn(model.TextPart("hello"))}
	require.NoError(t, r.CommitHistory(ctx, "s1", first))

	second := append(model.CloneHistory(first, 2), model.UserTurn("menu?"), model.ModelTurn(model.TextPart("Khawsa and rice")))
	require.NoError(t, r.CommitHistory(ctx, "s1", second))

	conv, err := r.LoadConversation(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, conv.History, 4)
	assert.Equal(t, "menu?", conv.History[2].Text())

	require.NoError(t, r.CommitHistory(ctx, "s1", nil))
	assert.False(t, mr.Exists("conversation:s1:turns"))
}

func TestRedisConversationRepository_TTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRepo(t, time.Hour)

	require.NoError(t, r.CommitHistory(ctx, "s1", []model.Turn{model.UserTurn("hi")}))
	require.NoError(t, r.AppendDisplay(ctx, "s1", model.DisplayMessage{Role: model.RoleUser, Text: "hi"}))
	assert.Equal(t, time.Hour, mr.TTL("conversation:s1:turns"))
	assert.Equal(t, time.Hour, mr.TTL("conversation:s1:display"))

	mr.FastForward(45 * time.Minute)
	require.NoError(t, r.AppendDisplay(ctx, "s1", model.DisplayMessage{Role: model.RoleModel, Text: "hello"}))
	assert.Equal(t, time.Hour, mr.TTL("conversation:s1:turns"), "appending extends both keys")

	mr.FastForward(2 * time.Hour)
	conv, err := r.LoadConversation(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, conv.Display)
	assert.Empty(t, conv.History)
}

func TestRedisConversationRepository_Clear(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRepo(t, time.Hour)

	require.NoError(t, r.AppendDisplay(ctx, "s1", model.DisplayMessage{Role: model.RoleUser, Text: "hi"}))
	require.NoError(t, r.CommitHistory(ctx, "s1", []model.Turn{model.UserTurn("hi")}))
	require.NoError(t, r.ClearConversation(ctx, "s1"))

	assert.False(t, mr.Exists("conversation:s1:display"))
	assert.False(t, mr.Exists("conversation:s1:turns"))
}

func TestRedisConversationRepository_CorruptRow(t *testing.T) {
	r, mr := newRedisRepo(t, time.Hour)
	_, err := mr.RPush("conversation:s1:turns", "not json")
	require.NoError(t, err)

	_, err = r.LoadConversation(context.Background(), "s1")
	assert.Error(t, err)
}
