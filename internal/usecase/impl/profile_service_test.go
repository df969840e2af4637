package impl

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProfileRepo is the profile service's own store, as opposed to
// fakeProfileClient which fakes the remote collaborator.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.profiles[profile.ID]; ok {
		return repository.ErrDuplicateProfile
	}

	clone := *profile
	f.profiles[profile.ID] = &clone

	return nil
}

func (f *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if profile, ok := f.profiles[id]; ok {
		clone := *profile

		return &clone, nil
	}

	return nil, repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.profiles[profile.ID]; !ok {
		return repository.ErrProfileNotFound
	}

	clone := *profile
	f.profiles[profile.ID] = &clone

	return nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.profiles[id]; !ok {
		return repository.ErrProfileNotFound
	}
	delete(f.profiles, id)

	return nil
}

func newProfileService(repo repository.ProfileRepository) *profileService {
	return &profileService{
		profileRepo: repo,
		logger:      slog.New(slog.DiscardHandler),
	}
}

func createProfile(t *testing.T, svc *profileService) *entity.Profile {
	t.Helper()

	out, err := svc.CreateProfile(context.Background(), &usecase.CreateProfileInput{
		ID:   uuid.New(),
		Name: "Ada",
		Role: entity.RoleUser,
	})
	require.NoError(t, err)

	return out.Profile
}

func TestCreateAndGetProfile(t *testing.T) {
	svc := newProfileService(newFakeProfileRepo())

	created := createProfile(t, svc)

	out, err := svc.GetProfile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.Profile.Name)
	assert.Equal(t, entity.RoleUser, out.Profile.Role)
	assert.False(t, out.Profile.CreatedAt.IsZero())
}

func TestCreateProfileDefaultsRole(t *testing.T) {
	svc := newProfileService(newFakeProfileRepo())

	out, err := svc.CreateProfile(context.Background(), &usecase.CreateProfileInput{
		ID:   uuid.New(),
		Name: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Profile.Role)
}

func TestCreateProfileRejectsServiceRole(t *testing.T) {
	svc := newProfileService(newFakeProfileRepo())

	_, err := svc.CreateProfile(context.Background(), &usecase.CreateProfileInput{
		ID:   uuid.New(),
		Name: "Bot",
		Role: entity.RoleService,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestCreateProfileDuplicate(t *testing.T) {
	svc := newProfileService(newFakeProfileRepo())
	created := createProfile(t, svc)

	_, err := svc.CreateProfile(context.Background(), &usecase.CreateProfileInput{
		ID:   created.ID,
		Name: "Ada again",
		Role: entity.RoleUser,
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateIdentity)
}

func TestGetProfileNotFound(t *testing.T) {
	svc := newProfileService(newFakeProfileRepo())

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUpdateProfileName(t *testing.T) {
	svc := newProfileService(newFakeProfileRepo())
	created := createProfile(t, svc)

	out, err := svc.UpdateProfile(context.Background(), created.ID, &usecase.UpdateProfileInput{Name: "Countess"})
	require.NoError(t, err)
	assert.Equal(t, "Countess", out.Profile.Name)
	assert.True(t, out.Profile.UpdatedAt.After(created.UpdatedAt) || out.Profile.UpdatedAt.Equal(created.UpdatedAt))

	fetched, err := svc.GetProfile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Countess", fetched.Profile.Name)
}

func TestAssignRole(t *testing.T) {
	svc := newProfileService(newFakeProfileRepo())
	created := createProfile(t, svc)

	out, err := svc.AssignRole(context.Background(), created.ID, &usecase.AssignRoleInput{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Profile.Role)

	fetched, err := svc.GetProfile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, fetched.Profile.Role)
}

func TestAssignRoleRejectsUnassignable(t *testing.T) {
	svc := newProfileService(newFakeProfileRepo())
	created := createProfile(t, svc)

	_, err := svc.AssignRole(context.Background(), created.ID, &usecase.AssignRoleInput{Role: entity.RoleService})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = svc.AssignRole(context.Background(), created.ID, &usecase.AssignRoleInput{Role: entity.Role("owner")})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestDeleteProfile(t *testing.T) {
	svc := newProfileService(newFakeProfileRepo())
	created := createProfile(t, svc)

	require.NoError(t, svc.DeleteProfile(context.Background(), created.ID))

	_, err := svc.GetProfile(context.Background(), created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = svc.DeleteProfile(context.Background(), created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
