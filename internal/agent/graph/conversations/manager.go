package conversations

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/food-punch-karachi/server/internal/agent/model"
	errx "github.com/food-punch-karachi/server/internal/core/error"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

const (
	// Greeting opens every transcript and is never sent to the model.
	Greeting = "Hi! I'm your Food Punch assistant. How can I help you with your order today?"
	// Apology replaces the reply when an exchange fails.
	Apology = "I'm having a bit of trouble connecting. Please try again!"
)

var (
	ErrEmptyMessage    = errx.BadRequest("message is empty")
	ErrRequestInFlight = errx.New(errors.New("request in flight"), http.StatusConflict, "a reply is still being prepared")
)

// Resolver runs one exchange over a history. graph.Runner satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, sessionID string, history []model.Turn, cart model.CartMutator) (*model.Resolution, error)
}

// MessagesManager owns the per-session transcript and structured history.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	resolver         Resolver

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewMessagesManager(conversationRepo model.ConversationRepository, resolver Resolver) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		resolver:         resolver,
		inFlight:         map[string]bool{},
	}
}

// Submit records the user's message, resolves it and records the reply.
// It returns the reply shown to the user; a failed exchange yields Apology
// and leaves the structured history untouched. Empty messages and messages
// sent while the session is busy are rejected without any side effect.
func (cm *MessagesManager) Submit(ctx context.Context, sessionID, text string, cart model.CartMutator) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}
	if !cm.acquire(sessionID) {
		return "", ErrRequestInFlight
	}
	defer cm.release(sessionID)

	// A client disconnect must not abort an exchange that already reached the model.
	ctx = context.WithoutCancel(ctx)

	conv, err := cm.conversationRepo.LoadConversation(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load conversation: %w", err)
	}
	if err := cm.conversationRepo.AppendDisplay(ctx, sessionID, model.DisplayMessage{Role: model.RoleUser, Text: text}); err != nil {
		return "", fmt.Errorf("append user message: %w", err)
	}

	history := model.CloneHistory(conv.History, 1)
	history = append(history, model.UserTurn(text))

	res, err := cm.resolver.Resolve(ctx, sessionID, history, cart)
	if err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("exchange failed; replying with apology")
		if err := cm.conversationRepo.AppendDisplay(ctx, sessionID, model.DisplayMessage{Role: model.RoleModel, Text: Apology}); err != nil {
			return "", fmt.Errorf("append apology: %w", err)
		}
		return Apology, nil
	}

	if err := cm.conversationRepo.CommitHistory(ctx, sessionID, res.History); err != nil {
		return "", fmt.Errorf("commit history: %w", err)
	}
	if err := cm.conversationRepo.AppendDisplay(ctx, sessionID, model.DisplayMessage{Role: model.RoleModel, Text: res.Text}); err != nil {
		return "", fmt.Errorf("append reply: %w", err)
	}
	return res.Text, nil
}

// Transcript returns the greeting followed by the stored chat bubbles.
func (cm *MessagesManager) Transcript(ctx context.Context, sessionID string) ([]model.DisplayMessage, error) {
	conv, err := cm.conversationRepo.LoadConversation(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]model.DisplayMessage, 0, len(conv.Display)+1)
	out = append(out, model.DisplayMessage{Role: model.RoleModel, Text: Greeting})
	return append(out, conv.Display...), nil
}

// History returns the committed structured history.
func (cm *MessagesManager) History(ctx context.Context, sessionID string) ([]model.Turn, error) {
	conv, err := cm.conversationRepo.LoadConversation(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return conv.History, nil
}

// Reset forgets the session's conversation. It is rejected while an exchange is running.
func (cm *MessagesManager) Reset(ctx context.Context, sessionID string) error {
	if !cm.acquire(sessionID) {
		return ErrRequestInFlight
	}
	defer cm.release(sessionID)
	return cm.conversationRepo.ClearConversation(ctx, sessionID)
}

// Busy reports whether an exchange is running for the session.
func (cm *MessagesManager) Busy(sessionID string) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.inFlight[sessionID]
}

// ====================== Helper function ======================
func (cm *MessagesManager) acquire(sessionID string) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.inFlight[sessionID] {
		return false
	}
	cm.inFlight[sessionID] = true
	return true
}

func (cm *MessagesManager) release(sessionID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.inFlight, sessionID)
}
