package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/models"
	"github.com/solemate/cli/internal/session"
)

// OTPPurpose selects what a submitted code proves: a fresh sign-up's
// email, or control of an account under password recovery.
type OTPPurpose int

const (
	PurposeEmail OTPPurpose = iota
	PurposeRecovery
)

// String returns the purpose name
func (p OTPPurpose) String() string {
	if p == PurposeRecovery {
		return "recovery"
	}
	return "email"
}

// wireType maps the purpose to the backend's contract value.
func (p OTPPurpose) wireType() string {
	if p == PurposeRecovery {
		return api.OTPTypeRecovery
	}
	return api.OTPTypeSignup
}

// VerifyPayload is the purpose-tagged result of a successful
// verification. Email verification carries an access token and user;
// recovery carries a reset token.
type VerifyPayload struct {
	Purpose     OTPPurpose
	AccessToken string
	ResetToken  string
	User        *models.User
}

// VerifyState is the observable state of a VerifyFlow.
type VerifyState struct {
	Phase   Phase
	Message string
	Payload *VerifyPayload
}

// RecoverySession pairs the reset token with the email it was issued
// for. Created only on successful recovery verification, consumed once
// by the password-reset step, cleared on Reset.
type RecoverySession struct {
	ResetToken string
	Email      string
}

// VerifyFlow drives OTP verification for both purposes. Success is
// reported only when the response is HTTP-successful AND carries the
// purpose's token; a 2xx with an empty token field is an error, never a
// silent success.
type VerifyFlow struct {
	mu       sync.Mutex
	state    VerifyState
	recovery *RecoverySession
	inFlight bool
	observer func(VerifyState)

	client *api.Client
	store  *session.Store
}

// NewVerifyFlow creates a verification flow. The session store receives
// the access token when an email verification succeeds.
func NewVerifyFlow(client *api.Client, store *session.Store) *VerifyFlow {
	return &VerifyFlow{client: client, store: store}
}

// Observe registers a transition callback.
func (f *VerifyFlow) Observe(fn func(VerifyState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observer = fn
}

// State returns a snapshot of the current state.
func (f *VerifyFlow) State() VerifyState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Recovery returns the pending recovery session, if one exists.
func (f *VerifyFlow) Recovery() (RecoverySession, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recovery == nil {
		return RecoverySession{}, false
	}
	return *f.recovery, true
}

// Reset returns the flow to Idle and drops any recovery session.
func (f *VerifyFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recovery = nil
	f.setLocked(VerifyState{Phase: PhaseIdle})
}

func (f *VerifyFlow) setLocked(s VerifyState) {
	f.state = s
	if f.observer != nil {
		f.observer(s)
	}
}

// Verify submits the code for the given purpose. The outcome lands in
// the flow state; the returned error is non-nil only for a rejected
// overlapping call or a cancelled context.
func (f *VerifyFlow) Verify(ctx context.Context, email, code string, purpose OTPPurpose) error {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.inFlight = true
	f.setLocked(VerifyState{Phase: PhaseLoading})
	f.mu.Unlock()

	resp, err := f.client.VerifyOTP(ctx, models.VerifyOTPRequest{
		Email: email,
		Token: code,
		Type:  purpose.wireType(),
	})
	if ctx.Err() != nil {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
		return ctx.Err()
	}
	if err != nil {
		f.fail(verifyMessage(err, purpose))
		return nil
	}

	switch purpose {
	case PurposeRecovery:
		if resp.ResetToken == "" {
			f.fail("token not found in response")
			return nil
		}
		f.succeed(VerifyPayload{Purpose: purpose, ResetToken: resp.ResetToken}, &RecoverySession{
			ResetToken: resp.ResetToken,
			Email:      email,
		})

	default:
		if resp.AccessToken == "" {
			f.fail("token not found in response")
			return nil
		}
		sess := session.Session{AccessToken: resp.AccessToken, Email: email}
		if resp.User != nil {
			sess.UserID = resp.User.ID
			if resp.User.Email != "" {
				sess.Email = resp.User.Email
			}
		}
		if err := f.store.Set(sess); err != nil {
			f.fail(fmt.Sprintf("could not save session: %v", err))
			return nil
		}
		f.succeed(VerifyPayload{Purpose: purpose, AccessToken: resp.AccessToken, User: resp.User}, nil)
	}
	return nil
}

func (f *VerifyFlow) fail(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	f.setLocked(VerifyState{Phase: PhaseError, Message: message})
}

func (f *VerifyFlow) succeed(payload VerifyPayload, recovery *RecoverySession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if recovery != nil {
		f.recovery = recovery
	}
	f.setLocked(VerifyState{Phase: PhaseSuccess, Payload: &payload})
}

// verifyMessage maps a verification failure to its user-facing text.
func verifyMessage(err error, purpose OTPPurpose) string {
	recovery := purpose == PurposeRecovery

	switch api.StatusCode(err) {
	case 400:
		if recovery {
			return "invalid recovery code"
		}
		return "invalid verification code"
	case 401:
		if recovery {
			return "recovery code expired or invalid"
		}
		return "code expired or invalid"
	case 404:
		if recovery {
			return "email not found or no recovery request"
		}
		return "email not found"
	case 422:
		return "malformed request"
	case 429:
		return "too many attempts, try again later"
	case 0:
		if errors.Is(err, api.ErrEmptyBody) {
			return "empty response from server"
		}
		return err.Error()
	default:
		return fmt.Sprintf("verification failed: %v", err)
	}
}
