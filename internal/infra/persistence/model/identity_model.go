// Package model contains the persistence representations of domain entities.
// These structs carry storage concerns (bson tags, scalar types) so the domain
// entities stay free of them.
package model

import (
	"time"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// IdentityModel is the credential-store document for one principal.
// The optional lookup keys are omitted when empty so the sparse unique
// indexes only cover documents that actually carry them.
type IdentityModel struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email,omitempty"`
	TelegramID   string    `bson:"telegram_id,omitempty"`
	PasswordHash string    `bson:"password_hash,omitempty"`
	LoginMethods []string  `bson:"login_methods"`
	CreatedAt    time.Time `bson:"created_at"`
}

// FromIdentityDomain maps a domain identity to its persistence model.
func FromIdentityDomain(identity *entity.Identity) *IdentityModel {
	methods := make([]string, 0, len(identity.LoginMethods))
	for _, method := range identity.LoginMethods {
		methods = append(methods, method.String())
	}

	return &IdentityModel{
		ID:           identity.ID.String(),
		Email:        identity.Email,
		TelegramID:   identity.TelegramID,
		PasswordHash: identity.PasswordHash,
		LoginMethods: methods,
		CreatedAt:    identity.CreatedAt,
	}
}

// ToIdentityDomain maps a persistence model back to a pure domain entity.
func (m *IdentityModel) ToIdentityDomain() (*entity.Identity, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	methods := make([]entity.LoginMethod, 0, len(m.LoginMethods))
	for _, method := range m.LoginMethods {
		methods = append(methods, entity.LoginMethod(method))
	}

	return &entity.Identity{
		ID:           id,
		Email:        m.Email,
		TelegramID:   m.TelegramID,
		PasswordHash: m.PasswordHash,
		LoginMethods: methods,
		CreatedAt:    m.CreatedAt,
	}, nil
}
