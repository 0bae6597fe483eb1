package api

import (
	"context"
	"net/http"

	"github.com/solemate/cli/internal/models"
)

// Backend contract values for the verify endpoint's type field.
const (
	OTPTypeSignup   = "signup"
	OTPTypeRecovery = "recovery"
)

// SignUp registers a new account. The backend sends a confirmation OTP to
// the given email address.
func (c *Client) SignUp(ctx context.Context, req models.SignUpRequest) (*models.SignUpResponse, error) {
	var resp models.SignUpResponse
	if err := c.do(ctx, http.MethodPost, "auth/v1/signup", ScopePublic, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignIn exchanges email and password for an access token.
func (c *Client) SignIn(ctx context.Context, req models.SignInRequest) (*models.SignInResponse, error) {
	var resp models.SignInResponse
	if err := c.do(ctx, http.MethodPost, "auth/v1/token?grant_type=password", ScopePublic, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyOTP submits a one-time code. The response shape depends on the
// request type: signup confirmation returns an access token and user,
// recovery returns a reset token.
func (c *Client) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.VerifyOTPResponse, error) {
	var resp models.VerifyOTPResponse
	if err := c.do(ctx, http.MethodPost, "auth/v1/verify", ScopePublic, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecoverPassword asks the backend to send a recovery OTP. The redirect
// target is deliberately omitted so the backend delivers a code rather
// than a link. A 2xx acknowledgement may have an empty body.
func (c *Client) RecoverPassword(ctx context.Context, email string) error {
	req := models.RecoverRequest{Email: email}
	return c.do(ctx, http.MethodPost, "auth/v1/recover", ScopePublic, req, nil)
}

// ChangePassword sets a new password. The bearer is either the signed-in
// user's access token or a reset token from recovery verification; the
// flow layer decides which and fills the matching body field.
func (c *Client) ChangePassword(ctx context.Context, req models.ChangePasswordRequest, bearer string) (*models.ChangePasswordResponse, error) {
	var resp models.ChangePasswordResponse
	if err := c.send(ctx, http.MethodPut, "auth/v1/user", bearer, req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}
