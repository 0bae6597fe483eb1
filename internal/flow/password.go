package flow

import (
	"context"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/models"
)

// TokenKind says which credential authorizes a password change.
type TokenKind int

const (
	// TokenBearer is the signed-in user's access token.
	TokenBearer TokenKind = iota
	// TokenReset is a short-lived token from recovery verification.
	TokenReset
)

// PasswordFlow drives the password change step, reached either from a
// signed-in session or from a recovery reset token.
type PasswordFlow struct {
	cell
	client *api.Client

	result *models.ChangePasswordResponse
}

// NewPasswordFlow creates a password change flow.
func NewPasswordFlow(client *api.Client) *PasswordFlow {
	return &PasswordFlow{client: client}
}

// Result returns the server's change confirmation after a Success state.
func (f *PasswordFlow) Result() *models.ChangePasswordResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Change sets a new password. The token doubles as the Authorization
// bearer and, depending on kind, as the matching body field. Failures
// surface the server's status and message verbatim.
func (f *PasswordFlow) Change(ctx context.Context, newPassword, token string, kind TokenKind) error {
	if err := f.begin(); err != nil {
		return err
	}

	req := models.ChangePasswordRequest{Password: newPassword}
	if kind == TokenReset {
		req.ResetToken = token
	} else {
		req.Token = token
	}

	resp, err := f.client.ChangePassword(ctx, req, token)
	if ctx.Err() != nil {
		f.abort()
		return ctx.Err()
	}
	if err != nil {
		f.finish(PhaseError, err.Error())
		return nil
	}

	f.mu.Lock()
	f.result = resp
	f.mu.Unlock()
	f.finish(PhaseSuccess, "password updated for "+resp.Email)
	return nil
}
