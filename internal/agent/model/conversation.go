package model

import (
	"context"
)

type ConversationRepository interface {
	// LoadConversation returns the stored transcript and history; unknown ids yield an empty conversation.
	LoadConversation(ctx context.Context, conversationID string) (*Conversation, error)

	// AppendDisplay appends rendered chat bubbles to the transcript.
	AppendDisplay(ctx context.Context, conversationID string, messages ...DisplayMessage) error

	// CommitHistory replaces the structured history wholesale.
	CommitHistory(ctx context.Context, conversationID string, history []Turn) error

	// ClearConversation removes transcript and history.
	ClearConversation(ctx context.Context, conversationID string) error
}

// Conversation is the state kept per chat session.
type Conversation struct {
	ConversationID string
	Display        []DisplayMessage
	History        []Turn
}
