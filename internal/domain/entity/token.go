// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/google/uuid"
)

// RefreshToken represents one long-lived, authorized session. The token string
// is opaque: it carries no meaning beyond being a lookup key in the token store,
// and presenting it for refresh consumes it.
type RefreshToken struct {
	Token       string    // Opaque, cryptographically random, globally unique.
	PrincipalID uuid.UUID // The identity this session belongs to.
}

// ResetToken represents one authorized password-reset attempt. It is single-use
// and short-lived; the store expires it independently of explicit deletion.
type ResetToken struct {
	Token       string    // Opaque, cryptographically random.
	PrincipalID uuid.UUID // The identity whose password may be reset.
}
