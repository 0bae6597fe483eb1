package flow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/config"
	"github.com/solemate/cli/internal/models"
	"github.com/solemate/cli/internal/session"
)

// newVerifyFlow wires a flow against a handler and returns the flow and
// its session store.
func newVerifyFlow(t *testing.T, handler http.Handler) (*VerifyFlow, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{URL: srv.URL, AnonKey: "anon-key", Timeout: "5s"},
	}
	store := session.NewStore(nil)
	client := api.New(cfg, store)
	return NewVerifyFlow(client, store), store
}

func TestVerifyFlow_EmailSuccessStoresSession(t *testing.T) {
	f, store := newVerifyFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.VerifyOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jo@x.com", req.Email)
		assert.Equal(t, "123456", req.Token)
		assert.Equal(t, "signup", req.Type)

		_, _ = w.Write([]byte(`{"access_token":"tok","user":{"id":"u-1","email":"jo@x.com"}}`))
	}))

	require.NoError(t, f.Verify(context.Background(), "jo@x.com", "123456", PurposeEmail))

	state := f.State()
	require.Equal(t, PhaseSuccess, state.Phase)
	require.NotNil(t, state.Payload)
	assert.Equal(t, PurposeEmail, state.Payload.Purpose)
	assert.Equal(t, "tok", state.Payload.AccessToken)

	sess, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "tok", sess.AccessToken)
	assert.Equal(t, "u-1", sess.UserID)
}

func TestVerifyFlow_EmptyTokenIsErrorNotSuccess(t *testing.T) {
	// HTTP 200 with an empty object must never be reported as success.
	f, store := newVerifyFlow(t, jsonHandler(http.StatusOK, `{}`))

	require.NoError(t, f.Verify(context.Background(), "jo@x.com", "123456", PurposeEmail))

	state := f.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Equal(t, "token not found in response", state.Message)

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestVerifyFlow_RecoverySuccessYieldsResetToken(t *testing.T) {
	f, store := newVerifyFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.VerifyOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "recovery", req.Type)

		_, _ = w.Write([]byte(`{"success":true,"message":"ok","reset_token":"rst-1"}`))
	}))

	require.NoError(t, f.Verify(context.Background(), "jo@x.com", "654321", PurposeRecovery))

	state := f.State()
	require.Equal(t, PhaseSuccess, state.Phase)
	require.NotNil(t, state.Payload)
	assert.Equal(t, PurposeRecovery, state.Payload.Purpose)
	assert.Equal(t, "rst-1", state.Payload.ResetToken)

	recovery, ok := f.Recovery()
	require.True(t, ok)
	assert.Equal(t, "rst-1", recovery.ResetToken)
	assert.Equal(t, "jo@x.com", recovery.Email)

	// Recovery verification never signs the user in.
	_, signedIn := store.Current()
	assert.False(t, signedIn)
}

func TestVerifyFlow_RecoveryMissingResetTokenIsError(t *testing.T) {
	f, _ := newVerifyFlow(t, jsonHandler(http.StatusOK, `{"success":true,"message":"ok"}`))

	require.NoError(t, f.Verify(context.Background(), "jo@x.com", "654321", PurposeRecovery))

	state := f.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Equal(t, "token not found in response", state.Message)

	_, ok := f.Recovery()
	assert.False(t, ok)
}

func TestVerifyFlow_StatusMessages(t *testing.T) {
	tests := []struct {
		status  int
		purpose OTPPurpose
		message string
	}{
		{400, PurposeEmail, "invalid verification code"},
		{400, PurposeRecovery, "invalid recovery code"},
		{401, PurposeEmail, "code expired or invalid"},
		{401, PurposeRecovery, "recovery code expired or invalid"},
		{404, PurposeEmail, "email not found"},
		{404, PurposeRecovery, "email not found or no recovery request"},
		{422, PurposeEmail, "malformed request"},
		{429, PurposeRecovery, "too many attempts, try again later"},
	}

	for _, tt := range tests {
		f, _ := newVerifyFlow(t, jsonHandler(tt.status, `{"msg":"denied"}`))

		require.NoError(t, f.Verify(context.Background(), "jo@x.com", "000000", tt.purpose))

		state := f.State()
		assert.Equal(t, PhaseError, state.Phase, "status %d (%s)", tt.status, tt.purpose)
		assert.Equal(t, tt.message, state.Message, "status %d (%s)", tt.status, tt.purpose)
	}
}

func TestVerifyFlow_GenericMessageIncludesServerBody(t *testing.T) {
	f, _ := newVerifyFlow(t, jsonHandler(http.StatusBadGateway, `{"error":"upstream"}`))

	require.NoError(t, f.Verify(context.Background(), "jo@x.com", "000000", PurposeEmail))

	state := f.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Contains(t, state.Message, "verification failed")
	assert.Contains(t, state.Message, "502")
	assert.Contains(t, state.Message, "upstream")
}

func TestVerifyFlow_ResetDropsRecoverySession(t *testing.T) {
	f, _ := newVerifyFlow(t, jsonHandler(http.StatusOK, `{"reset_token":"rst-1"}`))

	require.NoError(t, f.Verify(context.Background(), "jo@x.com", "654321", PurposeRecovery))
	_, ok := f.Recovery()
	require.True(t, ok)

	f.Reset()
	assert.Equal(t, PhaseIdle, f.State().Phase)
	_, ok = f.Recovery()
	assert.False(t, ok)
}

func TestVerifyFlow_RejectsOverlappingCalls(t *testing.T) {
	release := make(chan struct{})
	f, _ := newVerifyFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"access_token":"tok"}`))
	}))

	done := make(chan error, 1)
	go func() { done <- f.Verify(context.Background(), "jo@x.com", "123456", PurposeEmail) }()

	require.Eventually(t, func() bool {
		return f.State().Phase == PhaseLoading
	}, testWait, testTick)

	require.ErrorIs(t, f.Verify(context.Background(), "jo@x.com", "123456", PurposeEmail), ErrInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, PhaseSuccess, f.State().Phase)
}
