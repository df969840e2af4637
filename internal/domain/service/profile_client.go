package service

import (
	"context"
	"errors"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned by GetProfile when the collaborator has no
// record for the principal. The orchestrator treats this as an authentication
// failure, never a silent allow.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileClient is the boundary contract with the external profile service.
// The auth core consults it for the role claim at token time and asks it to
// create a linked profile whenever a new identity is created.
type ProfileClient interface {
	// CreateProfile asks the profile service to create a profile for a freshly
	// created identity.
	CreateProfile(ctx context.Context, principalID uuid.UUID, name string, role entity.Role) (*entity.Profile, error)

	// GetProfile fetches the profile for a principal. A missing profile returns
	// ErrProfileNotFound; transport failures surface as infrastructure errors.
	GetProfile(ctx context.Context, principalID uuid.UUID) (*entity.Profile, error)
}
