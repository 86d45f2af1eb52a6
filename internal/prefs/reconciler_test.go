package prefs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a Store backed by a plain map, for tests.
type memStore struct {
	mu    sync.Mutex
	data  map[string]Preferences
	err   error
	saves int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]Preferences)}
}

func (s *memStore) Load(ctx context.Context, userID string) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return Preferences{}, s.err
	}
	p, ok := s.data[userID]
	if !ok {
		return Preferences{}, ErrNotFound
	}
	return p, nil
}

func (s *memStore) Save(ctx context.Context, userID string, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data[userID] = p
	s.saves++
	return nil
}

func (s *memStore) get(userID string) (Preferences, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data[userID]
	return p, ok
}

func TestLoadCloudWins(t *testing.T) {
	local := newMemStore()
	remote := newMemStore()
	local.data["u1"] = Preferences{Name: "Old", UpdatedAt: time.Now().Add(-time.Hour)}
	remote.data["u1"] = Preferences{Name: "New", UpdatedAt: time.Now()}

	r := NewReconciler(local, remote)

	p, err := r.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "New", p.Name)

	// Cloud copy written back to the local cache.
	cached, ok := local.get("u1")
	require.True(t, ok)
	assert.Equal(t, "New", cached.Name)
}

func TestLoadFallsBackToLocalAndSyncs(t *testing.T) {
	local := newMemStore()
	remote := newMemStore()
	local.data["u1"] = Preferences{Name: "OnlyLocal", UpdatedAt: time.Now()}

	r := NewReconciler(local, remote)
	r.synced = make(chan struct{}, 1)

	p, err := r.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "OnlyLocal", p.Name)

	<-r.synced
	pushed, ok := remote.get("u1")
	require.True(t, ok)
	assert.Equal(t, "OnlyLocal", pushed.Name)
}

func TestLoadCloudOutageDegradesToLocal(t *testing.T) {
	local := newMemStore()
	remote := newMemStore()
	remote.err = errors.New("cloud down")
	local.data["u1"] = Preferences{Name: "Cached"}

	r := NewReconciler(local, remote)
	r.synced = make(chan struct{}, 1)

	p, err := r.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Cached", p.Name)
	<-r.synced
}

func TestLoadUnknownUser(t *testing.T) {
	r := NewReconciler(newMemStore(), nil)
	_, err := r.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveStampsAndSyncs(t *testing.T) {
	local := newMemStore()
	remote := newMemStore()

	r := NewReconciler(local, remote)
	r.synced = make(chan struct{}, 1)

	p, err := r.Save(context.Background(), "u1", Preferences{Name: "Faisal"})
	require.NoError(t, err)
	assert.False(t, p.UpdatedAt.IsZero())

	<-r.synced
	pushed, ok := remote.get("u1")
	require.True(t, ok)
	assert.Equal(t, "Faisal", pushed.Name)
}

func TestSaveSkipsSyncWhenCloudIsNewer(t *testing.T) {
	local := newMemStore()
	remote := newMemStore()
	remote.data["u1"] = Preferences{Name: "Newer", UpdatedAt: time.Now().Add(time.Hour)}

	r := NewReconciler(local, remote)
	r.synced = make(chan struct{}, 1)

	_, err := r.Save(context.Background(), "u1", Preferences{Name: "Stale", UpdatedAt: time.Now()})
	require.NoError(t, err)

	<-r.synced
	kept, _ := remote.get("u1")
	assert.Equal(t, "Newer", kept.Name, "last write wins: newer cloud copy survives")
}
