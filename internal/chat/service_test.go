package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fms-faisal/DayMate/internal/ai"
)

type fakeFollowUp struct {
	answer string
	err    error
	in     ai.FollowUpInput
}

func (f *fakeFollowUp) FollowUp(ctx context.Context, in ai.FollowUpInput) (string, error) {
	f.in = in
	return f.answer, f.err
}

type fakeDurable struct {
	saved []Conversation
	err   error
}

func (f *fakeDurable) SaveConversation(ctx context.Context, c Conversation) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, c)
	return nil
}

func TestFollowUpCreatesConversationAndAppendsBothTurns(t *testing.T) {
	gen := &fakeFollowUp{answer: "try Cafe Mango instead"}
	svc := NewService(NewMemoryStore(), nil, gen)

	resp, err := svc.FollowUp(context.Background(), FollowUpRequest{
		Message:      "somewhere quieter for lunch?",
		City:         "Dhaka",
		PreviousPlan: "* Midday: lunch at Star Kabab",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ConversationID)
	assert.False(t, resp.Error)
	assert.Equal(t, "try Cafe Mango instead", resp.Response)

	conv, err := svc.Get(resp.ConversationID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, RoleUser, conv.Messages[0].Role)
	assert.Equal(t, RoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, "Dhaka", conv.City)

	assert.Equal(t, "* Midday: lunch at Star Kabab", gen.in.PreviousPlan)
}

func TestFollowUpContinuesExistingConversation(t *testing.T) {
	gen := &fakeFollowUp{answer: "sure"}
	svc := NewService(NewMemoryStore(), nil, gen)

	first, err := svc.FollowUp(context.Background(), FollowUpRequest{Message: "hello", City: "Dhaka"})
	require.NoError(t, err)

	second, err := svc.FollowUp(context.Background(), FollowUpRequest{
		ConversationID: first.ConversationID,
		Message:        "and dinner?",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	conv, err := svc.Get(first.ConversationID)
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 4)
}

func TestFollowUpUnknownConversation(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil, &fakeFollowUp{})

	_, err := svc.FollowUp(context.Background(), FollowUpRequest{
		ConversationID: "nope",
		Message:        "hi",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowUpModelFailureKeepsUserMessageOnly(t *testing.T) {
	gen := &fakeFollowUp{err: errors.New("model down")}
	svc := NewService(NewMemoryStore(), nil, gen)

	resp, err := svc.FollowUp(context.Background(), FollowUpRequest{Message: "hi", City: "Dhaka"})
	require.NoError(t, err)
	assert.True(t, resp.Error)
	assert.Equal(t, ai.FallbackApology, resp.Response)

	conv, err := svc.Get(resp.ConversationID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, RoleUser, conv.Messages[0].Role)
}

func TestPersistRequiresDurableStore(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil, &fakeFollowUp{answer: "ok"})

	resp, err := svc.FollowUp(context.Background(), FollowUpRequest{Message: "hi"})
	require.NoError(t, err)

	err = svc.Persist(context.Background(), resp.ConversationID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestPersistCopiesConversation(t *testing.T) {
	durable := &fakeDurable{}
	svc := NewService(NewMemoryStore(), durable, &fakeFollowUp{answer: "ok"})

	resp, err := svc.FollowUp(context.Background(), FollowUpRequest{Message: "hi", City: "Dhaka"})
	require.NoError(t, err)

	require.NoError(t, svc.Persist(context.Background(), resp.ConversationID))
	require.Len(t, durable.saved, 1)
	assert.Equal(t, resp.ConversationID, durable.saved[0].ID)
	assert.Len(t, durable.saved[0].Messages, 2)
}
