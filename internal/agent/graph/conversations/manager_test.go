package conversations

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/food-punch-karachi/server/internal/agent/model"
	"github.com/food-punch-karachi/server/internal/agent/repo"
	errx "github.com/food-punch-karachi/server/internal/core/error"
)

// resolverFunc adapts a function to the Resolver interface.
type resolverFunc func(ctx context.Context, sessionID string, history []model.Turn, cart model.CartMutator) (*model.Resolution, error)

func (f resolverFunc) Resolve(ctx context.Context, sessionID string, history []model.Turn, cart model.CartMutator) (*model.Resolution, error) {
	return f(ctx, sessionID, history, cart)
}

func echoResolver(reply string) resolverFunc {
	return func(_ context.Context, _ string, history []model.Turn, _ model.CartMutator) (*model.Resolution, error) {
		out := append(model.CloneHistory(history, 1), model.ModelTurn(model.TextPart(reply)))
		return &model.Resolution{Text: reply, History: out}, nil
	}
}

func TestSubmitCommitsReply(t *testing.T) {
	ctx := context.Background()
	m := NewMessagesManager(repo.NewMemoryConversationRepository(), echoResolver("Hello!"))

	reply, err := m.Submit(ctx, "s1", "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", reply)

	transcript, err := m.Transcript(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []model.DisplayMessage{
		{Role: model.RoleModel, Text: Greeting},
		{Role: model.RoleUser, Text: "hi"},
		{Role: model.RoleModel, Text: "Hello!"},
	}, transcript)

	history, err := m.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hi", history[0].Text())
}

func TestSubmitSendsPriorHistory(t *testing.T) {
	ctx := context.Background()
	var seen [][]model.Turn
	m := NewMessagesManager(repo.NewMemoryConversationRepository(), resolverFunc(
		func(ctx context.Context, sid string, history []model.Turn, cart model.CartMutator) (*model.Resolution, error) {
			seen = append(seen, history)
			return echoResolver("ok").Resolve(ctx, sid, history, cart)
		}))

	_, err := m.Submit(ctx, "s1", "first", nil)
	require.NoError(t, err)
	_, err = m.Submit(ctx, "s1", "second", nil)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Len(t, seen[0], 1)
	require.Len(t, seen[1], 3)
	assert.Equal(t, "second", seen[1][2].Text())
}

func TestSubmitTrimsMessage(t *testing.T) {
	ctx := context.Background()
	m := NewMessagesManager(repo.NewMemoryConversationRepository(), echoResolver("Sure!"))

	_, err := m.Submit(ctx, "s1", "  2 khawsa please \n", nil)
	require.NoError(t, err)

	transcript, err := m.Transcript(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, transcript, 3)
	assert.Equal(t, "2 khawsa please", transcript[1].Text)

	history, err := m.History(ctx, "s1")
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, "2 khawsa please", history[0].Text())
}

func TestSubmitRejectsEmptyMessage(t *testing.T) {
	ctx := context.Background()
	called := false
	m := NewMessagesManager(repo.NewMemoryConversationRepository(), resolverFunc(
		func(context.Context, string, []model.Turn, model.CartMutator) (*model.Resolution, error) {
			called = true
			return nil, nil
		}))

	_, err := m.Submit(ctx, "s1", "   \n", nil)
	require.ErrorIs(t, err, ErrEmptyMessage)
	assert.Equal(t, http.StatusBadRequest, errx.Status(err))
	assert.False(t, called)

	transcript, err := m.Transcript(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, transcript, 1)
}

func TestSubmitFailureRepliesWithApology(t *testing.T) {
	ctx := context.Background()
	m := NewMessagesManager(repo.NewMemoryConversationRepository(), resolverFunc(
		func(context.Context, string, []model.Turn, model.CartMutator) (*model.Resolution, error) {
			return nil, errx.WrapService(errors.New("timeout"))
		}))

	reply, err := m.Submit(ctx, "s1", "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, Apology, reply)

	transcript, err := m.Transcript(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, transcript, 3)
	assert.Equal(t, Apology, transcript[2].Text)

	history, err := m.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSubmitRejectsWhileInFlight(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	unblock := make(chan struct{})
	m := NewMessagesManager(repo.NewMemoryConversationRepository(), resolverFunc(
		func(ctx context.Context, sid string, history []model.Turn, cart model.CartMutator) (*model.Resolution, error) {
			close(started)
			<-unblock
			return echoResolver("done").Resolve(ctx, sid, history, cart)
		}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := m.Submit(ctx, "s1", "first", nil)
		assert.NoError(t, err)
	}()
	<-started

	assert.True(t, m.Busy("s1"))
	_, err := m.Submit(ctx, "s1", "second", nil)
	require.ErrorIs(t, err, ErrRequestInFlight)
	assert.Equal(t, http.StatusConflict, errx.Status(err))
	require.ErrorIs(t, m.Reset(ctx, "s1"), ErrRequestInFlight)

	close(unblock)
	wg.Wait()
	assert.False(t, m.Busy("s1"))

	transcript, err := m.Transcript(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, transcript, 3)
}

func TestSubmitSurvivesCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewMessagesManager(repo.NewMemoryConversationRepository(), resolverFunc(
		func(ctx context.Context, sid string, history []model.Turn, cart model.CartMutator) (*model.Resolution, error) {
			cancel()
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return echoResolver("still here").Resolve(ctx, sid, history, cart)
		}))

	reply, err := m.Submit(ctx, "s1", "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "still here", reply)
}

func TestResetClearsConversation(t *testing.T) {
	ctx := context.Background()
	m := NewMessagesManager(repo.NewMemoryConversationRepository(), echoResolver("Hello!"))

	_, err := m.Submit(ctx, "s1", "hi", nil)
	require.NoError(t, err)
	require.NoError(t, m.Reset(ctx, "s1"))

	transcript, err := m.Transcript(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []model.DisplayMessage{{Role: model.RoleModel, Text: Greeting}}, transcript)
}
