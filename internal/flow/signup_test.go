package flow

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpFlow_StateSequenceOnSuccess(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK,
		`{"id":"u-1","name":"Jo","email":"jo@x.com"}`))

	f := NewSignUpFlow(client)
	phases := recordStates(f)

	require.Equal(t, PhaseIdle, f.State().Phase)
	require.NoError(t, f.SignUp(context.Background(), "Jo", "jo@x.com", "secret1"))

	assert.Equal(t, []Phase{PhaseLoading, PhaseSuccess}, *phases)
	assert.Contains(t, f.State().Message, "jo@x.com")
}

func TestSignUpFlow_EmptyBodyIsError(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK, ""))

	f := NewSignUpFlow(client)
	require.NoError(t, f.SignUp(context.Background(), "Jo", "jo@x.com", "secret1"))

	state := f.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.Equal(t, "empty response from server", state.Message)
}

func TestSignUpFlow_StatusMessages(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{400, "invalid email or password"},
		{409, "an account with this email already exists"},
		{422, "malformed email address"},
		{429, "too many requests, try again later"},
		{500, "registration failed: 500"},
		{503, "registration failed: 503"},
	}

	for _, tt := range tests {
		client := newTestClient(t, jsonHandler(tt.status, `{"msg":"boom"}`))

		f := NewSignUpFlow(client)
		require.NoError(t, f.SignUp(context.Background(), "Jo", "jo@x.com", "secret1"))

		state := f.State()
		assert.Equal(t, PhaseError, state.Phase, "status %d", tt.status)
		assert.Equal(t, tt.message, state.Message, "status %d", tt.status)
	}
}

func TestSignUpFlow_RejectsOverlappingCalls(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"id":"u-1","name":"Jo","email":"jo@x.com"}`))
	}))

	f := NewSignUpFlow(client)

	done := make(chan error, 1)
	go func() { done <- f.SignUp(context.Background(), "Jo", "jo@x.com", "secret1") }()

	// Wait for the first call to reach Loading.
	require.Eventually(t, func() bool {
		return f.State().Phase == PhaseLoading
	}, testWait, testTick)

	err := f.SignUp(context.Background(), "Jo", "jo@x.com", "secret1")
	require.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, PhaseLoading, f.State().Phase)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, PhaseSuccess, f.State().Phase)
}

func TestSignUpFlow_ResetReturnsToIdle(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusConflict, `{}`))

	f := NewSignUpFlow(client)
	require.NoError(t, f.SignUp(context.Background(), "Jo", "jo@x.com", "secret1"))
	require.Equal(t, PhaseError, f.State().Phase)

	f.Reset()
	assert.Equal(t, PhaseIdle, f.State().Phase)
	assert.Empty(t, f.State().Message)
}

func TestSignUpFlow_CancelledContextDoesNotMutateState(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	t.Cleanup(func() { close(release) })

	f := NewSignUpFlow(client)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.SignUp(ctx, "Jo", "jo@x.com", "secret1") }()

	<-started
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	// The flow stays in Loading; the owning screen is gone and nothing
	// may transition it anymore.
	assert.Equal(t, PhaseLoading, f.State().Phase)
}
