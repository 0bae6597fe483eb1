package flow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/config"
	"github.com/solemate/cli/internal/session"
)

func newSignInFlow(t *testing.T, handler http.Handler) (*SignInFlow, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{URL: srv.URL, AnonKey: "anon-key", Timeout: "5s"},
	}
	store := session.NewStore(nil)
	return NewSignInFlow(api.New(cfg, store), store), store
}

func TestSignInFlow_SuccessStoresSession(t *testing.T) {
	f, store := newSignInFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token":"tok","user":{"id":"u-1","email":"jo@x.com"}}`))
	}))

	require.NoError(t, f.SignIn(context.Background(), "jo@x.com", "secret1"))

	state := f.State()
	require.Equal(t, PhaseSuccess, state.Phase)
	assert.Contains(t, state.Message, "jo@x.com")

	sess, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "tok", sess.AccessToken)
	assert.Equal(t, "u-1", sess.UserID)
}

func TestSignInFlow_MissingTokenIsError(t *testing.T) {
	f, store := newSignInFlow(t, jsonHandler(http.StatusOK, `{}`))

	require.NoError(t, f.SignIn(context.Background(), "jo@x.com", "secret1"))

	state := f.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Equal(t, "token not found in response", state.Message)

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestSignInFlow_BadCredentials(t *testing.T) {
	f, _ := newSignInFlow(t, jsonHandler(http.StatusBadRequest, `{"error":"invalid_grant"}`))

	require.NoError(t, f.SignIn(context.Background(), "jo@x.com", "wrong"))

	state := f.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Equal(t, "invalid email or password", state.Message)
}
