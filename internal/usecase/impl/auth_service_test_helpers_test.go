package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/errors"

	"github.com/google/uuid"
)

// --- identity store fake ---

// fakeIdentityRepo enforces the same uniqueness rules as the real credential
// store: one identity per email and one per platform ID.
type fakeIdentityRepo struct {
	mu         sync.Mutex
	byID       map[uuid.UUID]*entity.Identity
	failing    bool
	createHook func(*entity.Identity) error
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{byID: make(map[uuid.UUID]*entity.Identity)}
}

func (f *fakeIdentityRepo) Create(_ context.Context, identity *entity.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return errors.New("store down")
	}
	if f.createHook != nil {
		if err := f.createHook(identity); err != nil {
			return err
		}
	}

	for _, existing := range f.byID {
		if identity.Email != "" && existing.Email == identity.Email {
			return repository.ErrDuplicateIdentity
		}
		if identity.TelegramID != "" && existing.TelegramID == identity.TelegramID {
			return repository.ErrDuplicateIdentity
		}
	}

	clone := *identity
	f.byID[identity.ID] = &clone

	return nil
}

func (f *fakeIdentityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, errors.New("store down")
	}
	if identity, ok := f.byID[id]; ok {
		clone := *identity

		return &clone, nil
	}

	return nil, repository.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) FindByEmail(_ context.Context, email string) (*entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, errors.New("store down")
	}
	for _, identity := range f.byID {
		if identity.Email == email {
			clone := *identity

			return &clone, nil
		}
	}

	return nil, repository.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) FindByTelegramID(_ context.Context, telegramID string) (*entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, errors.New("store down")
	}
	for _, identity := range f.byID {
		if identity.TelegramID == telegramID {
			clone := *identity

			return &clone, nil
		}
	}

	return nil, repository.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) Update(_ context.Context, identity *entity.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return errors.New("store down")
	}
	if _, ok := f.byID[identity.ID]; !ok {
		return repository.ErrIdentityNotFound
	}

	clone := *identity
	f.byID[identity.ID] = &clone

	return nil
}

func (f *fakeIdentityRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.byID)
}

// --- token store fake ---

type storedToken struct {
	principalID uuid.UUID
	expiresAt   time.Time
}

// fakeTokenRepo models store-side TTL expiry with an adjustable clock.
type fakeTokenRepo struct {
	mu      sync.Mutex
	tokens  map[string]storedToken
	now     time.Time
	failing bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]storedToken), now: time.Now()}
}

func (f *fakeTokenRepo) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fakeTokenRepo) set(key string, principalID uuid.UUID, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return errors.New("store down")
	}
	f.tokens[key] = storedToken{principalID: principalID, expiresAt: f.now.Add(ttl)}

	return nil
}

func (f *fakeTokenRepo) lookup(key string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return uuid.Nil, errors.New("store down")
	}
	record, ok := f.tokens[key]
	if !ok || !record.expiresAt.After(f.now) {
		delete(f.tokens, key)

		return uuid.Nil, repository.ErrTokenNotFound
	}

	return record.principalID, nil
}

func (f *fakeTokenRepo) remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return errors.New("store down")
	}
	delete(f.tokens, key)

	return nil
}

func (f *fakeTokenRepo) StoreRefreshToken(_ context.Context, token string, principalID uuid.UUID, ttl time.Duration) error {
	return f.set("refresh:"+token, principalID, ttl)
}

func (f *fakeTokenRepo) GetRefreshToken(_ context.Context, token string) (uuid.UUID, error) {
	return f.lookup("refresh:" + token)
}

func (f *fakeTokenRepo) DeleteRefreshToken(_ context.Context, token string) error {
	return f.remove("refresh:" + token)
}

func (f *fakeTokenRepo) StoreResetToken(_ context.Context, token string, principalID uuid.UUID, ttl time.Duration) error {
	return f.set("reset:"+token, principalID, ttl)
}

func (f *fakeTokenRepo) GetResetToken(_ context.Context, token string) (uuid.UUID, error) {
	return f.lookup("reset:" + token)
}

func (f *fakeTokenRepo) DeleteResetToken(_ context.Context, token string) error {
	return f.remove("reset:" + token)
}

// --- profile client fake ---

type fakeProfileClient struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.Profile
	failing  bool
}

func newFakeProfileClient() *fakeProfileClient {
	return &fakeProfileClient{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (f *fakeProfileClient) CreateProfile(_ context.Context, principalID uuid.UUID, name string, role entity.Role) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, errors.New("profile service down")
	}

	profile := &entity.Profile{ID: principalID, Name: name, Role: role}
	f.profiles[principalID] = profile

	return profile, nil
}

func (f *fakeProfileClient) GetProfile(_ context.Context, principalID uuid.UUID) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, errors.New("profile service down")
	}
	if profile, ok := f.profiles[principalID]; ok {
		return profile, nil
	}

	return nil, service.ErrProfileNotFound
}

func (f *fakeProfileClient) setRole(principalID uuid.UUID, role entity.Role) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[principalID].Role = role
}

// --- deterministic crypto fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeIssuer struct {
	mu      sync.Mutex
	counter int
}

func (f *fakeIssuer) IssueAccessToken(principalID uuid.UUID, role entity.Role) (string, error) {
	return fmt.Sprintf("access:%s:%s", principalID, role), nil
}

func (f *fakeIssuer) ParseAccessToken(token string) (*service.AccessClaims, error) {
	var id, role string
	if _, err := fmt.Sscanf(token, "access:%36s:%s", &id, &role); err != nil {
		return nil, errors.New("malformed token")
	}

	principalID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("malformed token")
	}

	return &service.AccessClaims{PrincipalID: principalID, Role: entity.Role(role)}, nil
}

func (f *fakeIssuer) NewOpaqueToken() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter++

	return fmt.Sprintf("opaque-%04d", f.counter), nil
}

func (f *fakeIssuer) RefreshTokenTTL() time.Duration { return 7 * 24 * time.Hour }

func (f *fakeIssuer) ResetTokenTTL() time.Duration { return time.Hour }

// --- assertion verifier stubs ---

type stubFederatedVerifier struct {
	identity *service.FederatedIdentity
	err      error
}

func (s *stubFederatedVerifier) Verify(context.Context, string) (*service.FederatedIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.identity, nil
}

type stubPlatformVerifier struct {
	identity *service.PlatformIdentity
	err      error
}

func (s *stubPlatformVerifier) Verify(*service.PlatformLoginPayload) (*service.PlatformIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.identity, nil
}

// --- fixture ---

type authFixture struct {
	identities *fakeIdentityRepo
	tokens     *fakeTokenRepo
	profiles   *fakeProfileClient
	issuer     *fakeIssuer
	federated  *stubFederatedVerifier
	platform   *stubPlatformVerifier
	svc        *authService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		identities: newFakeIdentityRepo(),
		tokens:     newFakeTokenRepo(),
		profiles:   newFakeProfileClient(),
		issuer:     &fakeIssuer{},
		federated:  &stubFederatedVerifier{},
		platform:   &stubPlatformVerifier{},
	}

	f.svc = &authService{
		identityRepo: f.identities,
		tokenRepo:    f.tokens,
		hasher:       fakeHasher{},
		issuer:       f.issuer,
		federated:    f.federated,
		platform:     f.platform,
		profiles:     f.profiles,
		logger:       slog.New(slog.DiscardHandler),
	}

	return f
}
