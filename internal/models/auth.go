package models

// User represents the authenticated user as returned by the auth backend.
type User struct {
	ID               string `json:"id" yaml:"id"`
	Email            string `json:"email" yaml:"email"`
	Phone            string `json:"phone,omitempty" yaml:"phone,omitempty"`
	EmailConfirmedAt string `json:"email_confirmed_at,omitempty" yaml:"email_confirmed_at,omitempty"`
	CreatedAt        string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// SignUpRequest represents a registration request
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpResponse represents a registration response
type SignUpResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

// SignInRequest represents a password-grant sign-in request
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse represents a successful sign-in response
type SignInResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// VerifyOTPRequest represents an OTP verification request.
// Type carries the backend contract value: "signup" for email
// confirmation, "recovery" for password recovery.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
	Type  string `json:"type"`
}

// VerifyOTPResponse is the single wire shape returned by the verify
// endpoint. Which fields are populated depends on the OTP type: email
// confirmation yields access_token and user, recovery yields reset_token.
type VerifyOTPResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	User        *User  `json:"user,omitempty"`
	Success     bool   `json:"success,omitempty"`
	Message     string `json:"message,omitempty"`
	ResetToken  string `json:"reset_token,omitempty"`
}

// RecoverRequest represents a forgot-password request. RedirectTo is
// always omitted: an absent redirect tells the backend to deliver a
// one-time code instead of a magic link.
type RecoverRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// ChangePasswordRequest represents a password change. Exactly one of
// Token (bearer in body) or ResetToken is set alongside the new password.
type ChangePasswordRequest struct {
	Password   string `json:"password"`
	Token      string `json:"token,omitempty"`
	ResetToken string `json:"reset_token,omitempty"`
}

// ChangePasswordResponse represents a password change response
type ChangePasswordResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	UpdatedAt string `json:"updated_at"`
}
