package usecase

import (
	"context"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProfileInput defines the data the auth service supplies when it
// provisions a profile for a freshly created identity.
type CreateProfileInput struct {
	ID   uuid.UUID
	Name string
	Role entity.Role
}

// UpdateProfileInput defines the fields a principal may change on their own profile.
type UpdateProfileInput struct {
	Name string
}

// AssignRoleInput defines an explicit role assignment performed by an admin.
type AssignRoleInput struct {
	Role entity.Role
}

// ProfileOutput returns one profile record.
type ProfileOutput struct {
	Profile *entity.Profile
}

// ProfileUsecase defines the interface for profile business operations inside
// the profile service.
type ProfileUsecase interface {
	// CreateProfile persists a profile for a principal. Only the auth service
	// calls this, through the internal surface.
	CreateProfile(ctx context.Context, input *CreateProfileInput) (*ProfileOutput, error)

	// GetProfile fetches one profile by principal ID.
	GetProfile(ctx context.Context, id uuid.UUID) (*ProfileOutput, error)

	// UpdateProfile changes the display data of a profile.
	UpdateProfile(ctx context.Context, id uuid.UUID, input *UpdateProfileInput) (*ProfileOutput, error)

	// AssignRole stores an explicit role on a profile. Only assignable roles
	// are accepted.
	AssignRole(ctx context.Context, id uuid.UUID, input *AssignRoleInput) (*ProfileOutput, error)

	// DeleteProfile removes a profile by principal ID.
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}
