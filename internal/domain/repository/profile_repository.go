// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for profile persistence.
var (
	// ErrProfileNotFound is returned when no profile matches the principal ID.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrDuplicateProfile is returned when a profile already exists for the principal ID.
	ErrDuplicateProfile = errors.New("profile already exists")
)

// ProfileRepository defines the standard operations for profile persistence
// inside the profile service.
type ProfileRepository interface {
	// Create persists a new profile keyed by its principal ID.
	Create(ctx context.Context, profile *entity.Profile) error

	// FindByID retrieves a profile by principal ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// Update replaces the stored profile wholesale.
	Update(ctx context.Context, profile *entity.Profile) error

	// Delete removes a profile by principal ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
