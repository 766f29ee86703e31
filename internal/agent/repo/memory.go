package repo

import (
	"context"
	"sync"

	"github.com/food-punch-karachi/server/internal/agent/model"
)

// MemoryConversationRepository keeps conversations in process memory.
type MemoryConversationRepository struct {
	mu    sync.RWMutex
	convs map[string]*model.Conversation
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{convs: map[string]*model.Conversation{}}
}

func (r *MemoryConversationRepository) LoadConversation(_ context.Context, conversationID string) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &model.Conversation{
		ConversationID: conversationID,
		Display:        []model.DisplayMessage{},
		History:        []model.Turn{},
	}
	if c, ok := r.convs[conversationID]; ok {
		out.Display = append(out.Display, c.Display...)
		out.History = append(out.History, c.History...)
	}
	return out, nil
}

func (r *MemoryConversationRepository) AppendDisplay(_ context.Context, conversationID string, messages ...model.DisplayMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.get(conversationID)
	c.Display = append(c.Display, messages...)
	return nil
}

func (r *MemoryConversationRepository) CommitHistory(_ context.Context, conversationID string, history []model.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.get(conversationID)
	c.History = model.CloneHistory(history, 0)
	return nil
}

func (r *MemoryConversationRepository) ClearConversation(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.convs, conversationID)
	return nil
}

// get must be called with the write lock held.
func (r *MemoryConversationRepository) get(conversationID string) *model.Conversation {
	c, ok := r.convs[conversationID]
	if !ok {
		c = &model.Conversation{ConversationID: conversationID}
		r.convs[conversationID] = c
	}
	return c
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
