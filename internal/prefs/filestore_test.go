package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	want := Preferences{Name: "Faisal", TravelMode: "walking", Pace: "relaxed"}
	require.NoError(t, s.Save(context.Background(), "u1", want))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	got, err := reopened.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.TravelMode, got.TravelMode)

	_, err = reopened.Load(context.Background(), "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "missing", "prefs.json"))
	require.NoError(t, err)

	_, err = s.Load(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}
