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

// profileRepository implements the repository.ProfileRepository interface
// on top of the profiles collection.
type profileRepository struct {
	collection *mongo.Collection
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &profileRepository{
		collection: db.Collection(profilesCollection),
	}
}

// Create inserts a new profile document keyed by principal ID.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	_, err := repo.collection.InsertOne(ctx, model.FromProfileDomain(profile))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateProfile
		}

		return errors.Wrap(err, "failed to insert profile")
	}

	return nil
}

// FindByID retrieves a single profile by principal ID.
func (repo *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel
	err := repo.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&profileM)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile")
	}

	profile, err := profileM.ToProfileDomain()
	if err != nil {
		return nil, errors.Wrap(err, "failed to map profile document")
	}

	return profile, nil
}

// Update replaces the stored profile wholesale.
func (repo *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	result, err := repo.collection.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: profile.ID.String()}},
		model.FromProfileDomain(profile))
	if err != nil {
		return errors.Wrap(err, "failed to replace profile")
	}
	if result.MatchedCount == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// Delete removes a profile by principal ID. Deleting an absent profile
// reports ErrProfileNotFound so the caller can map it to a 404.
func (repo *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return errors.Wrap(err, "failed to delete profile")
	}
	if result.DeletedCount == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}
