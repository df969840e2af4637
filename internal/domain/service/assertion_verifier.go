package service

import (
	"context"
)

// FederatedIdentity is the verified content of a third-party identity assertion.
type FederatedIdentity struct {
	SubjectID string // Provider-specific stable user ID (e.g. the 'sub' claim).
	Email     string // Email attested by the provider.
	Name      string // Display name, may be empty.
}

// FederatedVerifier validates a signed assertion from an external identity
// provider: signature against the provider's current public keys, issuer,
// audience, and expiry. Any mismatch fails with the invalid-assertion error.
type FederatedVerifier interface {
	Verify(ctx context.Context, assertion string) (*FederatedIdentity, error)
}

// PlatformLoginPayload is the raw field set a bot-platform login widget posts
// back to the application, including the platform's own signature over it.
type PlatformLoginPayload struct {
	ID        string // Platform user ID.
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string
	AuthDate  int64  // Unix seconds the payload was signed; bounds the replay window.
	Hash      string // Hex HMAC the platform computed over the other fields.
}

// PlatformIdentity is the verified content of a bot-platform login payload.
type PlatformIdentity struct {
	PlatformID string
	Name       string
}

// PlatformVerifier validates a bot-platform login payload's authenticity
// against the shared secret and rejects payloads outside the freshness window.
type PlatformVerifier interface {
	Verify(payload *PlatformLoginPayload) (*PlatformIdentity, error)
}
