package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/errors"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	ProfileRepo repository.ProfileRepository
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		profileRepo: params.ProfileRepo,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProfile persists a profile for a principal the auth service just created.
func (srv *profileService) CreateProfile(ctx context.Context, input *usecase.CreateProfileInput) (*usecase.ProfileOutput, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !role.IsAssignable() {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("role is not assignable to a profile")
	}

	now := time.Now()
	profile := &entity.Profile{
		ID:        input.ID,
		Name:      input.Name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := srv.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateProfile) {
			return nil, domainerrors.ErrDuplicateIdentity.WrapMessage("profile already exists for principal")
		}

		return nil, storeFailure(err, "failed to create profile")
	}

	srv.log(ctx).Info("Profile created", slog.Any("principalID", profile.ID), slog.Any("role", profile.Role))

	return &usecase.ProfileOutput{Profile: profile}, nil
}

// GetProfile fetches one profile by principal ID.
func (srv *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*usecase.ProfileOutput, error) {
	profile, err := srv.findProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	return &usecase.ProfileOutput{Profile: profile}, nil
}

// UpdateProfile changes the display data of a profile.
func (srv *profileService) UpdateProfile(ctx context.Context, id uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	profile, err := srv.findProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.Name = input.Name
	profile.UpdatedAt = time.Now()

	if err := srv.profileRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("profile vanished during update")
		}

		return nil, storeFailure(err, "failed to update profile")
	}

	return &usecase.ProfileOutput{Profile: profile}, nil
}

// AssignRole stores an explicit role on a profile. Only roles meant for end
// users are accepted; service credentials never live on a profile.
func (srv *profileService) AssignRole(ctx context.Context, id uuid.UUID, input *usecase.AssignRoleInput) (*usecase.ProfileOutput, error) {
	if !input.Role.IsAssignable() {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("role is not assignable to a profile")
	}

	profile, err := srv.findProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.Role = input.Role
	profile.UpdatedAt = time.Now()

	if err := srv.profileRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("profile vanished during update")
		}

		return nil, storeFailure(err, "failed to update profile")
	}

	srv.log(ctx).Info("Role assigned", slog.Any("principalID", id), slog.Any("role", input.Role))

	return &usecase.ProfileOutput{Profile: profile}, nil
}

// DeleteProfile removes a profile by principal ID.
func (srv *profileService) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if err := srv.profileRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("no profile for principal")
		}

		return storeFailure(err, "failed to delete profile")
	}

	srv.log(ctx).Info("Profile deleted", slog.Any("principalID", id))

	return nil
}

func (srv *profileService) findProfile(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("no profile for principal")
		}

		return nil, storeFailure(err, "failed to find profile")
	}

	return profile, nil
}
