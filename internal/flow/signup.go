package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/models"
)

// SignUpFlow drives account registration. Input validation (name length,
// email shape, password length, consent) is the presenter's job and is
// not repeated here.
type SignUpFlow struct {
	cell
	client *api.Client
}

// NewSignUpFlow creates a sign-up flow.
func NewSignUpFlow(client *api.Client) *SignUpFlow {
	return &SignUpFlow{client: client}
}

// SignUp registers the account. The outcome lands in the flow state; the
// returned error is non-nil only for a rejected overlapping call or a
// cancelled context. On success the presenter advances to the email
// verification step carrying the submitted address.
func (f *SignUpFlow) SignUp(ctx context.Context, name, email, password string) error {
	if err := f.begin(); err != nil {
		return err
	}

	resp, err := f.client.SignUp(ctx, models.SignUpRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if ctx.Err() != nil {
		f.abort()
		return ctx.Err()
	}
	if err != nil {
		f.finish(PhaseError, signUpMessage(err))
		return nil
	}

	f.finish(PhaseSuccess, fmt.Sprintf("confirmation code sent to %s", resp.Email))
	return nil
}

// signUpMessage maps a sign-up failure to its user-facing text.
func signUpMessage(err error) string {
	switch api.StatusCode(err) {
	case 400:
		return "invalid email or password"
	case 409:
		return "an account with this email already exists"
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
		return fmt.Sprintf("registration failed: %d", api.StatusCode(err))
	}
}
