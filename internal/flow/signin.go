package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/models"
	"github.com/solemate/cli/internal/session"
)

// SignInFlow drives password sign-in. On success it writes the session
// store; this is one of the two places a user token is ever issued.
type SignInFlow struct {
	cell
	client *api.Client
	store  *session.Store
}

// NewSignInFlow creates a sign-in flow bound to the session store.
func NewSignInFlow(client *api.Client, store *session.Store) *SignInFlow {
	return &SignInFlow{client: client, store: store}
}

// SignIn exchanges credentials for a session. A 2xx response without an
// access token is a protocol anomaly and lands in Error, never Success.
func (f *SignInFlow) SignIn(ctx context.Context, email, password string) error {
	if err := f.begin(); err != nil {
		return err
	}

	resp, err := f.client.SignIn(ctx, models.SignInRequest{Email: email, Password: password})
	if ctx.Err() != nil {
		f.abort()
		return ctx.Err()
	}
	if err != nil {
		f.finish(PhaseError, signInMessage(err))
		return nil
	}

	if resp.AccessToken == "" {
		f.finish(PhaseError, "token not found in response")
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
		f.finish(PhaseError, fmt.Sprintf("could not save session: %v", err))
		return nil
	}

	f.finish(PhaseSuccess, fmt.Sprintf("signed in as %s", sess.Email))
	return nil
}

// signInMessage maps a sign-in failure to its user-facing text.
func signInMessage(err error) string {
	switch api.StatusCode(err) {
	case 400, 401:
		return "invalid email or password"
	case 422:
		return "malformed email address"
	case 429:
		return "too many requests, try again later"
	case 0:
		if errors.Is(err, api.ErrEmptyBody) {
			return "empty response from server"
		}
		return err.Error()
	default:
		return fmt.Sprintf("sign in failed: %d", api.StatusCode(err))
	}
}
