package chat

import (
	"sync"
	"time"
)

// MemoryStore holds live conversations. Conversations are append-only:
// messages are added, never edited or removed.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*Conversation
	now  func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*Conversation),
		now:  time.Now,
	}
}

// Create registers a new conversation.
func (s *MemoryStore) Create(id, city, profile string) Conversation {
	now := s.now().UTC()
	conv := &Conversation{
		ID:        id,
		City:      city,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.data[id] = conv
	s.mu.Unlock()

	return *conv
}

// Get returns a copy of the conversation.
func (s *MemoryStore) Get(id string) (Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.data[id]
	if !ok {
		return Conversation{}, ErrNotFound
	}

	out := *conv
	out.Messages = append([]Message(nil), conv.Messages...)
	return out, nil
}

// Append adds a message to the conversation.
func (s *MemoryStore) Append(id, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.data[id]
	if !ok {
		return ErrNotFound
	}

	now := s.now().UTC()
	conv.Messages = append(conv.Messages, Message{
		Role:      role,
		Content:   content,
		CreatedAt: now,
	})
	conv.UpdatedAt = now
	return nil
}
