package model

import (
	"time"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileModel is the profile-store document for one principal.
type ProfileModel struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// FromProfileDomain maps a domain profile to its persistence model.
func FromProfileDomain(profile *entity.Profile) *ProfileModel {
	return &ProfileModel{
		ID:        profile.ID.String(),
		Name:      profile.Name,
		Role:      profile.Role.String(),
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

// ToProfileDomain maps a persistence model back to a pure domain entity.
func (m *ProfileModel) ToProfileDomain() (*entity.Profile, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	return &entity.Profile{
		ID:        id,
		Name:      m.Name,
		Role:      entity.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
