package chat

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/fms-faisal/DayMate/internal/ai"
	"github.com/fms-faisal/DayMate/internal/news"
	"github.com/fms-faisal/DayMate/internal/weather"
)

// FollowUpGenerator answers a refinement turn; *ai.Planner implements it.
type FollowUpGenerator interface {
	FollowUp(ctx context.Context, in ai.FollowUpInput) (string, error)
}

// FollowUpRequest carries the user's message plus the plan context the
// client already holds. ConversationID is optional; a new conversation is
// created when it is empty.
type FollowUpRequest struct {
	ConversationID string         `json:"conversation_id"`
	Message        string         `json:"message" validate:"required,min=1"`
	City           string         `json:"city"`
	Profile        string         `json:"profile"`
	Weather        *weather.Data  `json:"weather"`
	News           []news.Article `json:"news"`
	PreviousPlan   string         `json:"previous_plan"`
}

// FollowUpResponse is the chat answer.
type FollowUpResponse struct {
	ConversationID string `json:"conversation_id"`
	Response       string `json:"response"`
	Error          bool   `json:"error"`
	Message        string `json:"message,omitempty"`
}

// Service runs the refinement loop over the in-memory store.
type Service struct {
	store   *MemoryStore
	durable DurableStore // nil when no cloud persistence is configured
	ai      FollowUpGenerator
}

// NewService wires the chat service. durable may be nil.
func NewService(store *MemoryStore, durable DurableStore, gen FollowUpGenerator) *Service {
	return &Service{store: store, durable: durable, ai: gen}
}

// FollowUp appends the user's message and asks the model for an answer.
// On model failure the user message stays in the log (append-only), no
// assistant message is added, and the canned apology is returned.
func (s *Service) FollowUp(ctx context.Context, req FollowUpRequest) (FollowUpResponse, error) {
	id := req.ConversationID
	if id == "" {
		id = uuid.NewString()
		s.store.Create(id, req.City, req.Profile)
	} else if _, err := s.store.Get(id); err != nil {
		return FollowUpResponse{}, err
	}

	if err := s.store.Append(id, RoleUser, req.Message); err != nil {
		return FollowUpResponse{}, err
	}

	answer, err := s.ai.FollowUp(ctx, ai.FollowUpInput{
		Weather:      req.Weather,
		News:         req.News,
		City:         req.City,
		PreviousPlan: req.PreviousPlan,
		Message:      req.Message,
	})
	if err != nil {
		log.Printf("chat: follow-up generation failed for %s: %v", id, err)
		return FollowUpResponse{
			ConversationID: id,
			Response:       ai.FallbackApology,
			Error:          true,
			Message:        err.Error(),
		}, nil
	}

	if err := s.store.Append(id, RoleAssistant, answer); err != nil {
		return FollowUpResponse{}, err
	}

	return FollowUpResponse{
		ConversationID: id,
		Response:       answer,
	}, nil
}

// Get returns the conversation.
func (s *Service) Get(id string) (Conversation, error) {
	return s.store.Get(id)
}

// Persist copies the conversation to durable storage. Called on demand via
// the save endpoint.
func (s *Service) Persist(ctx context.Context, id string) error {
	conv, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if s.durable == nil {
		return errors.New("durable conversation storage is not configured")
	}
	if err := s.durable.SaveConversation(ctx, conv); err != nil {
		return fmt.Errorf("persist conversation %s: %w", id, err)
	}
	return nil
}
