// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/errors"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	identityRepo repository.IdentityRepository
	tokenRepo    repository.TokenRepository
	hasher       service.PasswordHasher
	issuer       service.TokenIssuer
	federated    service.FederatedVerifier
	platform     service.PlatformVerifier
	profiles     service.ProfileClient
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	TokenRepo    repository.TokenRepository
	Hasher       service.PasswordHasher
	Issuer       service.TokenIssuer
	Federated    service.FederatedVerifier
	Platform     service.PlatformVerifier
	Profiles     service.ProfileClient
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		identityRepo: params.IdentityRepo,
		tokenRepo:    params.TokenRepo,
		hasher:       params.Hasher,
		issuer:       params.Issuer,
		federated:    params.Federated,
		platform:     params.Platform,
		profiles:     params.Profiles,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// storeFailure classifies an unexpected persistence error while keeping the
// cause in the chain for logging.
func storeFailure(err error, message string) error {
	return errors.Wrap(errors.Join(domainerrors.ErrStoreUnavailable, err), message)
}

// profileFailure classifies a profile-collaborator transport error.
func profileFailure(err error, message string) error {
	return errors.Wrap(errors.Join(domainerrors.ErrProfileUnavailable, err), message)
}

// Register creates a new password identity, provisions its profile, and
// returns a first token pair.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	identity := &entity.Identity{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		LoginMethods: []entity.LoginMethod{entity.LoginMethodPassword},
		CreatedAt:    time.Now(),
	}

	if err := srv.identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			return nil, domainerrors.ErrDuplicateIdentity.WrapMessage("email already registered")
		}

		return nil, storeFailure(err, "failed to create identity")
	}

	profile, err := srv.provisionProfile(ctx, identity.ID, input.Name)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("principalID", identity.ID))

	return srv.issueTokenPair(ctx, identity.ID, profile.Role)
}

// Login verifies an email/password pair and returns a token pair.
// Unknown emails, wrong passwords, and accounts without a password method all
// fail identically.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	identity, err := srv.identityRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, storeFailure(err, "failed to look up identity")
	}

	if !identity.HasMethod(entity.LoginMethodPassword) || identity.PasswordHash == "" {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password login not linked")
	}

	if !srv.hasher.Check(input.Password, identity.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	role, err := srv.currentRole(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	return srv.issueTokenPair(ctx, identity.ID, role)
}

// LoginWithGoogle verifies a federated ID token and returns a token pair,
// provisioning the identity and profile the first time the subject is seen.
func (srv *authService) LoginWithGoogle(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.TokenPairOutput, error) {
	fed, err := srv.federated.Verify(ctx, input.IDToken)
	if err != nil {
		return nil, errors.Wrap(err, "federated assertion rejected")
	}

	identity, err := srv.identityRepo.FindByEmail(ctx, fed.Email)
	switch {
	case err == nil:
		if !identity.HasMethod(entity.LoginMethodGoogle) {
			identity.LinkMethod(entity.LoginMethodGoogle)
			if err := srv.identityRepo.Update(ctx, identity); err != nil {
				return nil, storeFailure(err, "failed to link login method")
			}
		}
	case errors.Is(err, repository.ErrIdentityNotFound):
		name := fed.Name
		if name == "" {
			name = fed.Email
		}

		identity, err = srv.provisionIdentity(ctx, &entity.Identity{
			ID:           uuid.New(),
			Email:        fed.Email,
			LoginMethods: []entity.LoginMethod{entity.LoginMethodGoogle},
			CreatedAt:    time.Now(),
		}, name, func(retryCtx context.Context) (*entity.Identity, error) {
			return srv.identityRepo.FindByEmail(retryCtx, fed.Email)
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, storeFailure(err, "failed to look up identity")
	}

	role, err := srv.currentRole(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	return srv.issueTokenPair(ctx, identity.ID, role)
}

// LoginWithTelegram verifies a signed platform login payload and returns a
// token pair, provisioning the identity and profile the first time the
// platform user is seen.
func (srv *authService) LoginWithTelegram(ctx context.Context, input *usecase.TelegramLoginInput) (*usecase.TokenPairOutput, error) {
	verified, err := srv.platform.Verify(&service.PlatformLoginPayload{
		ID:        input.ID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		PhotoURL:  input.PhotoURL,
		AuthDate:  input.AuthDate,
		Hash:      input.Hash,
	})
	if err != nil {
		return nil, errors.Wrap(err, "platform assertion rejected")
	}

	identity, err := srv.identityRepo.FindByTelegramID(ctx, verified.PlatformID)
	switch {
	case err == nil:
		// Already provisioned; nothing to link, telegram is the lookup key itself.
	case errors.Is(err, repository.ErrIdentityNotFound):
		identity, err = srv.provisionIdentity(ctx, &entity.Identity{
			ID:           uuid.New(),
			TelegramID:   verified.PlatformID,
			LoginMethods: []entity.LoginMethod{entity.LoginMethodTelegram},
			CreatedAt:    time.Now(),
		}, verified.Name, func(retryCtx context.Context) (*entity.Identity, error) {
			return srv.identityRepo.FindByTelegramID(retryCtx, verified.PlatformID)
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, storeFailure(err, "failed to look up identity")
	}

	role, err := srv.currentRole(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	return srv.issueTokenPair(ctx, identity.ID, role)
}

// Refresh rotates a refresh token. The new token is persisted before the
// presented one is deleted, so a crash in between never strands the caller
// with no valid token.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	principalID, err := srv.tokenRepo.GetRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown or expired refresh token")
		}

		return nil, storeFailure(err, "failed to look up refresh token")
	}

	role, err := srv.currentRole(ctx, principalID)
	if err != nil {
		return nil, err
	}

	pair, err := srv.issueTokenPair(ctx, principalID, role)
	if err != nil {
		return nil, err
	}

	if err := srv.tokenRepo.DeleteRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, storeFailure(err, "failed to consume refresh token")
	}

	return pair, nil
}

// Logout revokes a refresh token. Revoking an unknown or expired token
// succeeds silently.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	if err := srv.tokenRepo.DeleteRefreshToken(ctx, input.RefreshToken); err != nil {
		return storeFailure(err, "failed to revoke refresh token")
	}

	return nil
}

// RequestPasswordReset issues a short-lived reset token for a known email.
// Unknown emails report Sent=false without error, so the transport response
// never reveals whether an account exists.
func (srv *authService) RequestPasswordReset(ctx context.Context, input *usecase.RequestPasswordResetInput) (*usecase.PasswordResetOutput, error) {
	identity, err := srv.identityRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			srv.log(ctx).Info("Reset requested for unknown email")

			return &usecase.PasswordResetOutput{Sent: false}, nil
		}

		return nil, storeFailure(err, "failed to look up identity")
	}

	token, err := srv.issuer.NewOpaqueToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate reset token")
	}

	if err := srv.tokenRepo.StoreResetToken(ctx, token, identity.ID, srv.issuer.ResetTokenTTL()); err != nil {
		return nil, storeFailure(err, "failed to store reset token")
	}

	srv.log(ctx).Info("Reset token issued", slog.Any("principalID", identity.ID))

	return &usecase.PasswordResetOutput{Sent: true, ResetToken: token}, nil
}

// ResetPassword consumes a reset token and replaces the account's password.
// The token is deleted as soon as the new password is persisted; a second
// attempt with the same token fails like any unknown token.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	principalID, err := srv.tokenRepo.GetResetToken(ctx, input.ResetToken)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("unknown or expired reset token")
		}

		return storeFailure(err, "failed to look up reset token")
	}

	identity, err := srv.identityRepo.FindByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			srv.log(ctx).Error("Reset token references a missing identity", slog.Any("principalID", principalID))

			return domainerrors.ErrInvalidCredentials.WrapMessage("identity no longer exists")
		}

		return storeFailure(err, "failed to look up identity")
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	identity.SetPasswordHash(hash)
	if err := srv.identityRepo.Update(ctx, identity); err != nil {
		return storeFailure(err, "failed to update identity")
	}

	if err := srv.tokenRepo.DeleteResetToken(ctx, input.ResetToken); err != nil {
		return storeFailure(err, "failed to consume reset token")
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("principalID", principalID))

	return nil
}

// provisionIdentity creates an identity plus its linked profile. A duplicate
// on create means another request won the race for the same lookup key, so
// the lookup is retried exactly once and the winner's record is used.
func (srv *authService) provisionIdentity(ctx context.Context, identity *entity.Identity, name string, retry func(context.Context) (*entity.Identity, error)) (*entity.Identity, error) {
	err := srv.identityRepo.Create(ctx, identity)
	if err == nil {
		if _, err := srv.provisionProfile(ctx, identity.ID, name); err != nil {
			return nil, err
		}

		return identity, nil
	}

	if !errors.Is(err, repository.ErrDuplicateIdentity) {
		return nil, storeFailure(err, "failed to create identity")
	}

	srv.log(ctx).Warn("Create lost a provisioning race, retrying lookup", slog.Any("principalID", identity.ID))

	existing, retryErr := retry(ctx)
	if retryErr != nil {
		if errors.Is(retryErr, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrDuplicateIdentity.WrapMessage("identity creation raced and lookup failed")
		}

		return nil, storeFailure(retryErr, "failed to look up identity after race")
	}

	return existing, nil
}

// provisionProfile creates the linked profile for a freshly created identity.
// A failure here leaves an identity without a profile; that state is logged
// loudly and surfaced, never silently repaired.
func (srv *authService) provisionProfile(ctx context.Context, principalID uuid.UUID, name string) (*entity.Profile, error) {
	profile, err := srv.profiles.CreateProfile(ctx, principalID, name, entity.RoleUser)
	if err != nil {
		srv.log(ctx).Error("Identity exists without a profile",
			slog.Any("principalID", principalID),
			slog.Any("error", err))

		return nil, profileFailure(err, "failed to create profile")
	}

	return profile, nil
}

// currentRole reads the principal's role from the profile service at token
// time. A missing profile is treated as an authentication failure, never a
// silent allow.
func (srv *authService) currentRole(ctx context.Context, principalID uuid.UUID) (entity.Role, error) {
	profile, err := srv.profiles.GetProfile(ctx, principalID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			srv.log(ctx).Error("Identity has no profile", slog.Any("principalID", principalID))

			return "", domainerrors.ErrInvalidCredentials.WrapMessage("no profile for principal")
		}

		return "", profileFailure(err, "failed to fetch profile")
	}

	return profile.Role, nil
}

// issueTokenPair mints a fresh refresh token, persists it, and signs an
// access token carrying the principal's current role.
func (srv *authService) issueTokenPair(ctx context.Context, principalID uuid.UUID, role entity.Role) (*usecase.TokenPairOutput, error) {
	refreshToken, err := srv.issuer.NewOpaqueToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	if err := srv.tokenRepo.StoreRefreshToken(ctx, refreshToken, principalID, srv.issuer.RefreshTokenTTL()); err != nil {
		return nil, storeFailure(err, "failed to store refresh token")
	}

	accessToken, err := srv.issuer.IssueAccessToken(principalID, role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
