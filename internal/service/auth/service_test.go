package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmate/healthmate-api/internal/model"
	"github.com/healthmate/healthmate-api/internal/repository"
	jwtauth "github.com/healthmate/healthmate-api/pkg/auth"
	apperrors "github.com/healthmate/healthmate-api/pkg/errors"
	"github.com/healthmate/healthmate-api/pkg/security"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*model.User
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrDuplicate
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *user
	f.byID[user.ID] = &copied
	f.byEmail[user.Email] = &copied
	return nil
}

type fakeRevoker struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]bool)}
}

func (f *fakeRevoker) Revoke(_ context.Context, token string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[token] = true
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked[token], nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) SendWelcome(_ context.Context, to, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeRevoker, *fakeMailer) {
	repo := newFakeUserRepo()
	revoker := newFakeRevoker()
	mailer := &fakeMailer{}
	svc := NewService(
		repo,
		jwtauth.NewJWTService("test-secret", time.Hour),
		security.NewBcryptHasher(4),
		revoker,
		mailer,
		time.Hour,
	)
	return svc, repo, revoker, mailer
}

func register(t *testing.T, svc *Service) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Ali Khan",
		Email:    "Ali@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterLowercasesEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	user := register(t, svc)
	assert.Equal(t, "ali@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()
	register(t, svc)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Other",
		Email:    "ali@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Ali",
		Email:    "ali@example.com",
		Password: "abc",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestLoginAndValidate(t *testing.T) {
	svc, _, _, _ := newTestService()
	registered := register(t, svc)

	user, token, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ali@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotNil(t, user.LastLoginAt)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newTestService()
	register(t, svc)

	_, _, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ali@example.com",
		Password: "wrong-password",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	svc, _, _, _ := newTestService()
	register(t, svc)
	ctx := context.Background()

	for i := 0; i < maxLoginAttempts; i++ {
		_, _, err := svc.Login(ctx, &model.LoginRequest{
			Email:    "ali@example.com",
			Password: "wrong-password",
		})
		require.Error(t, err)
	}

	// even the correct password is rejected while locked
	_, _, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "ali@example.com",
		Password: "secret123",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, revoker, _ := newTestService()
	register(t, svc)

	_, token, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ali@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	revoked, _ := revoker.IsRevoked(context.Background(), token)
	assert.True(t, revoked)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _, _ := newTestService()
	user := register(t, svc)

	gender := model.GenderMale
	phone := "+923001234567"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &model.UpdateProfileRequest{
		Gender: &gender,
		Phone:  &phone,
		EmergencyContact: &model.EmergencyContact{
			Name:  "Sara Khan",
			Phone: "+923009876543",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Gender)
	assert.Equal(t, model.GenderMale, *updated.Gender)
	require.NotNil(t, updated.EmergencyContact)
	assert.Equal(t, "Sara Khan", updated.EmergencyContact.Name)

	// emergency contact survives a reload
	fetched, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.EmergencyContact)
	assert.Equal(t, "Sara Khan", fetched.EmergencyContact.Name)
}

func TestChangePassword(t *testing.T) {
	svc, _, _, _ := newTestService()
	user := register(t, svc)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, &model.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	require.NoError(t, svc.ChangePassword(ctx, user.ID, &model.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	}))

	_, _, err = svc.Login(ctx, &model.LoginRequest{
		Email:    "ali@example.com",
		Password: "newsecret",
	})
	require.NoError(t, err)
}
