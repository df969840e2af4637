// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account with
// email and password.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a password login.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleLoginInput carries the raw ID token from the federated provider.
type GoogleLoginInput struct {
	IDToken string
}

// TelegramLoginInput carries the signed field set the login widget posted.
type TelegramLoginInput struct {
	ID        string
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string
	AuthDate  int64
	Hash      string
}

// RefreshInput carries the refresh token to rotate.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token to revoke.
type LogoutInput struct {
	RefreshToken string
}

// RequestPasswordResetInput identifies the account to send a reset token for.
type RequestPasswordResetInput struct {
	Email string
}

// ResetPasswordInput carries a previously issued reset token and the new password.
type ResetPasswordInput struct {
	ResetToken  string
	NewPassword string
}

// --- Output DTOs ---

// TokenPairOutput returns a freshly issued access/refresh token pair.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
}

// PasswordResetOutput reports whether a reset token was actually issued.
// Sent is false for unknown emails; the transport layer answers identically
// either way.
type PasswordResetOutput struct {
	Sent       bool
	ResetToken string
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer will depend on.
type AuthUsecase interface {
	// Register creates a new password identity plus its linked profile and
	// returns a first token pair.
	Register(ctx context.Context, input *RegisterInput) (*TokenPairOutput, error)

	// Login verifies an email/password pair and returns a token pair.
	Login(ctx context.Context, input *LoginInput) (*TokenPairOutput, error)

	// LoginWithGoogle verifies a federated ID token, provisioning the identity
	// and profile on first sight, and returns a token pair.
	LoginWithGoogle(ctx context.Context, input *GoogleLoginInput) (*TokenPairOutput, error)

	// LoginWithTelegram verifies a signed platform login payload, provisioning
	// the identity and profile on first sight, and returns a token pair.
	LoginWithTelegram(ctx context.Context, input *TelegramLoginInput) (*TokenPairOutput, error)

	// Refresh rotates a refresh token: the presented token is consumed and a
	// new pair is issued. Each refresh token rotates at most once.
	Refresh(ctx context.Context, input *RefreshInput) (*TokenPairOutput, error)

	// Logout revokes a refresh token. Revoking an unknown token is not an error.
	Logout(ctx context.Context, input *LogoutInput) error

	// RequestPasswordReset issues a short-lived reset token for a known email.
	// Unknown emails report Sent=false without error.
	RequestPasswordReset(ctx context.Context, input *RequestPasswordResetInput) (*PasswordResetOutput, error)

	// ResetPassword consumes a reset token and replaces the account's password.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
