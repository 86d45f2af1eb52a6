package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(srv *httptest.Server) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, srv.URL, nil)
	}
}

func TestDoReturnsStatusErrorWithoutRetrying(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := Do(context.Background(), DefaultConfig(srv.Client()), NewBreaker("test"), get(srv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.Equal(t, 1, calls, "4xx responses are not retried")
}

func TestStatusCodeSurvivesWrapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUpgradeRequired)
	}))
	defer srv.Close()

	_, err := Do(context.Background(), DefaultConfig(srv.Client()), NewBreaker("test"), get(srv))
	require.Error(t, err)

	wrapped := fmt.Errorf("news service unavailable: %w", err)
	assert.Equal(t, http.StatusUpgradeRequired, StatusCode(wrapped))
}

func TestStatusCodeZeroForOtherErrors(t *testing.T) {
	assert.Equal(t, 0, StatusCode(nil))
	assert.Equal(t, 0, StatusCode(errors.New("connection refused")))
}
