package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/healthmate/healthmate-api/internal/email"
	"github.com/healthmate/healthmate-api/internal/model"
	"github.com/healthmate/healthmate-api/internal/repository"
	"github.com/healthmate/healthmate-api/pkg/auth"
	apperrors "github.com/healthmate/healthmate-api/pkg/errors"
	"github.com/healthmate/healthmate-api/pkg/security"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

// AuthService handles registration, login and profile management
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error
}

type Service struct {
	users   repository.UserRepository
	jwtSvc  auth.JWTService
	hasher  security.PasswordHasher
	revoker repository.TokenRevoker
	mailer  email.Service
	expiry  time.Duration
}

func NewService(users repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher,
	revoker repository.TokenRevoker, mailer email.Service, tokenExpiry time.Duration) *Service {
	return &Service{
		users:   users,
		jwtSvc:  jwtSvc,
		hasher:  hasher,
		revoker: revoker,
		mailer:  mailer,
		expiry:  tokenExpiry,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("password must be at least 6 characters", err)
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.BadRequest("email already exists", err)
		}
		return nil, apperrors.Internal(err)
	}

	// best effort, never blocks registration
	go func() {
		if err := s.mailer.SendWelcome(context.Background(), user.Email, user.Name); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("welcome email failed")
		}
	}()

	return user, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	if user.LoginAttempts >= maxLoginAttempts && user.LastLoginAttempt != nil {
		if time.Since(*user.LastLoginAttempt) < lockoutDuration {
			return nil, "", apperrors.Unauthorized(errors.New("account locked, try again later"))
		}
		user.LoginAttempts = 0
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		user.LoginAttempts++
		now := time.Now()
		user.LastLoginAttempt = &now
		if updateErr := s.users.Update(ctx, user); updateErr != nil {
			return nil, "", apperrors.Internal(fmt.Errorf("failed to record login attempt: %w", updateErr))
		}
		return nil, "", apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	user.LoginAttempts = 0
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", apperrors.Internal(fmt.Errorf("failed to update login timestamp: %w", err))
	}

	token, err := s.jwtSvc.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	s.hydrateEmergencyContact(user)
	return user, token, nil
}

// Logout revokes the presented token for the remainder of its lifetime
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, token, s.expiry); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	revoked, err := s.revoker.IsRevoked(ctx, token)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if revoked {
		return nil, apperrors.Unauthorized(errors.New("token revoked"))
	}

	return claims, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Internal(err)
	}
	s.hydrateEmergencyContact(user)
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Internal(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.BloodGroup != nil {
		user.BloodGroup = req.BloodGroup
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}
	if req.EmergencyContact != nil {
		raw, err := json.Marshal(req.EmergencyContact)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("failed to marshal emergency contact: %w", err))
		}
		user.EmergencyJSON = raw
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.hydrateEmergencyContact(user)
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("user", err)
		}
		return apperrors.Internal(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.CurrentPassword); err != nil {
		return apperrors.Unauthorized(errors.New("current password is incorrect"))
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.BadRequest("password must be at least 6 characters", err)
	}

	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) hydrateEmergencyContact(user *model.User) {
	if len(user.EmergencyJSON) == 0 {
		return
	}
	var contact model.EmergencyContact
	if err := json.Unmarshal(user.EmergencyJSON, &contact); err == nil {
		user.EmergencyContact = &contact
	}
}
