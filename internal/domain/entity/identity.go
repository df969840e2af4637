// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// LoginMethod identifies one way a principal can authenticate.
type LoginMethod string

const (
	// LoginMethodPassword is email + password authentication.
	LoginMethodPassword LoginMethod = "password"
	// LoginMethodGoogle is federated authentication via a Google ID token.
	LoginMethodGoogle LoginMethod = "google"
	// LoginMethodTelegram is authentication via a signed Telegram login payload.
	LoginMethodTelegram LoginMethod = "telegram"
)

// String returns the string representation of the LoginMethod.
func (m LoginMethod) String() string {
	return string(m)
}

// IsValid checks if the LoginMethod is a known value.
func (m LoginMethod) IsValid() bool {
	switch m {
	case LoginMethodPassword, LoginMethodGoogle, LoginMethodTelegram:
		return true
	default:
		return false
	}
}

// Identity represents one authenticable principal and the credentials linked to it.
// A record always has at least one login method; the password hash is present
// exactly when "password" is among the linked methods.
type Identity struct {
	ID           uuid.UUID     // Stable principal ID, referenced by tokens and profiles.
	Email        string        // Optional; globally unique when present. Empty for platform-only accounts.
	TelegramID   string        // Optional external platform ID; globally unique when present.
	PasswordHash string        // bcrypt hash; empty for federated/platform-only accounts.
	LoginMethods []LoginMethod // Non-empty set of linked login methods.
	CreatedAt    time.Time     // Timestamp of when this identity was first created.
}

// HasMethod reports whether the given login method is linked to this identity.
func (i *Identity) HasMethod(method LoginMethod) bool {
	return slices.Contains(i.LoginMethods, method)
}

// LinkMethod adds a login method to the identity if not already present.
func (i *Identity) LinkMethod(method LoginMethod) {
	if !i.HasMethod(method) {
		i.LoginMethods = append(i.LoginMethods, method)
	}
}

// SetPasswordHash replaces the stored password hash and ensures the password
// method is linked, preserving the hash-iff-method invariant.
func (i *Identity) SetPasswordHash(hash string) {
	i.PasswordHash = hash
	i.LinkMethod(LoginMethodPassword)
}
