package mongo

import (
	"context"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// identityRepository implements the repository.IdentityRepository interface
// on top of the identities collection.
type identityRepository struct {
	collection *mongo.Collection
}

// NewIdentityRepository is the constructor for identityRepository.
// It returns the repository as a repository.IdentityRepository interface,
// adhering to dependency inversion.
func NewIdentityRepository(db *mongo.Database) repository.IdentityRepository {
	return &identityRepository{
		collection: db.Collection(identitiesCollection),
	}
}

// Create inserts a new identity document. Collisions with the sparse unique
// indexes on email or telegram_id surface as ErrDuplicateIdentity so the
// caller can fall back to a lookup.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	_, err := repo.collection.InsertOne(ctx, model.FromIdentityDomain(identity))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateIdentity
		}

		return errors.Wrap(err, "failed to insert identity")
	}

	return nil
}

// FindByID retrieves a single identity by its principal ID.
func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	return repo.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

// FindByEmail retrieves a single identity by its email address.
func (repo *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	return repo.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// FindByTelegramID retrieves a single identity by its external platform ID.
func (repo *identityRepository) FindByTelegramID(ctx context.Context, telegramID string) (*entity.Identity, error) {
	return repo.findOne(ctx, bson.D{{Key: "telegram_id", Value: telegramID}})
}

// Update replaces the stored document wholesale.
func (repo *identityRepository) Update(ctx context.Context, identity *entity.Identity) error {
	result, err := repo.collection.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: identity.ID.String()}},
		model.FromIdentityDomain(identity))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateIdentity
		}

		return errors.Wrap(err, "failed to replace identity")
	}
	if result.MatchedCount == 0 {
		return repository.ErrIdentityNotFound
	}

	return nil
}

func (repo *identityRepository) findOne(ctx context.Context, filter bson.D) (*entity.Identity, error) {
	var identityM model.IdentityModel
	if err := repo.collection.FindOne(ctx, filter).Decode(&identityM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to find identity")
	}

	identity, err := identityM.ToIdentityDomain()
	if err != nil {
		return nil, errors.Wrap(err, "failed to map identity document")
	}

	return identity, nil
}
