// Package chat keeps the follow-up refinement loop: append-only
// conversations held in memory for the session, persisted on demand.
package chat

import (
	"context"
	"errors"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNotFound is returned for unknown conversation IDs.
var ErrNotFound = errors.New("conversation not found")

// Message is a single turn in a conversation.
type Message struct {
	Role      string    `json:"role" bson:"role"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Conversation is an append-only message log for one refinement session.
type Conversation struct {
	ID        string    `json:"id" bson:"_id"`
	City      string    `json:"city" bson:"city"`
	Profile   string    `json:"profile,omitempty" bson:"profile,omitempty"`
	Messages  []Message `json:"messages" bson:"messages"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// DurableStore persists conversations past the process lifetime.
type DurableStore interface {
	SaveConversation(ctx context.Context, c Conversation) error
}
