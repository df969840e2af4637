// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for identity persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrIdentityNotFound is returned when no identity matches the lookup key.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrDuplicateIdentity is returned when a create or update collides with the
	// unique constraints on email or telegram ID.
	ErrDuplicateIdentity = errors.New("identity already exists")
)

// IdentityRepository defines the standard operations for the credential store.
// The application layer depends on this interface, not the concrete implementation.
type IdentityRepository interface {
	// Create persists a new identity. The store's unique indexes reject a second
	// writer racing on the same email or telegram ID with ErrDuplicateIdentity.
	Create(ctx context.Context, identity *entity.Identity) error

	// FindByID retrieves an identity by its principal ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)

	// FindByEmail retrieves an identity by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)

	// FindByTelegramID retrieves an identity by its external platform ID.
	FindByTelegramID(ctx context.Context, telegramID string) (*entity.Identity, error)

	// Update replaces the stored record wholesale. Uniqueness collisions surface
	// as ErrDuplicateIdentity, a missing record as ErrIdentityNotFound.
	Update(ctx context.Context, identity *entity.Identity) error
}
