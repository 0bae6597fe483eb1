package flow

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/solemate/cli/internal/api"
)

// emailPattern gates recovery requests client-side: local part, @, domain,
// dot, two-letter-or-longer TLD. Kept deliberately simple; the backend has
// the final say.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RecoverFlow drives the "request a recovery code" step. The email is
// staged via UpdateEmail and its validity recomputed on every edit; an
// invalid email fails fast without touching the network.
type RecoverFlow struct {
	cell
	client *api.Client

	email      string
	emailValid bool
}

// NewRecoverFlow creates a forgot-password flow.
func NewRecoverFlow(client *api.Client) *RecoverFlow {
	return &RecoverFlow{client: client}
}

// UpdateEmail stores the raw input and recomputes the validity flag.
func (f *RecoverFlow) UpdateEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
	f.emailValid = emailPattern.MatchString(email)
}

// Email returns the staged email address.
func (f *RecoverFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// EmailValid reports whether the staged email passes the pattern.
func (f *RecoverFlow) EmailValid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emailValid
}

// Recover asks the backend to send a recovery code to the staged email.
// A client-known-invalid email transitions directly to Error without a
// network call.
func (f *RecoverFlow) Recover(ctx context.Context) error {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return ErrInFlight
	}
	if !f.emailValid {
		f.setLocked(State{Phase: PhaseError, Message: "enter a valid email address"})
		f.mu.Unlock()
		return nil
	}
	f.inFlight = true
	f.setLocked(State{Phase: PhaseLoading})
	email := f.email
	f.mu.Unlock()

	err := f.client.RecoverPassword(ctx, email)
	if ctx.Err() != nil {
		f.abort()
		return ctx.Err()
	}
	if err != nil {
		f.finish(PhaseError, recoverMessage(err))
		return nil
	}

	f.finish(PhaseSuccess, fmt.Sprintf("recovery code sent to %s", email))
	return nil
}

// recoverMessage maps a recovery request failure to its user-facing text.
func recoverMessage(err error) string {
	switch api.StatusCode(err) {
	case 400:
		return "bad request, check the email address"
	case 422:
		return "malformed email address"
	case 429:
		return "too many attempts, wait 60 seconds"
	case 0:
		if errors.Is(err, api.ErrEmptyBody) {
			return "empty response from server"
		}
		return err.Error()
	default:
		return fmt.Sprintf("recovery failed: %d", api.StatusCode(err))
	}
}
