package services

import (
	"context"
	"fmt"

	"github.com/mdiallo/gestion-etudiants/internal/app/models"
	"github.com/mdiallo/gestion-etudiants/internal/app/models/dto"
	"github.com/mdiallo/gestion-etudiants/internal/app/repositories"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/apperrors"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/auth"
	"github.com/mdiallo/gestion-etudiants/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// AuthService orchestrates accounts, password hashing and token issuing
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new account. The password is hashed before
// storage and never kept in plaintext; the role defaults to admin when
// unspecified, matching the mobile client.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if !validation.IsEmailValid(req.Email) {
		return nil, apperrors.NewInvalidInputError("invalid email")
	}
	if len(req.Password) < validation.PasswordMinLength {
		return nil, apperrors.NewInvalidInputError("password too short")
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleAdmin
	}
	if !role.IsValid() {
		return nil, apperrors.NewInvalidInputError("invalid role")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
		Password:  hash,
		Role:      role,
		Photo:     req.Photo,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", id).Str("email", req.Email).Msg("Account created")

	return &dto.RegisterResponse{ID: id, Message: "account created"}, nil
}

// Login checks credentials and issues a bearer token valid for the
// configured expiry. There is no refresh mechanism; an expired token
// requires a new login.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("user not found")
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.NewUnauthorizedError("wrong password")
	}

	token, err := s.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Int64("id", user.ID).Msg("Login successful")

	return &dto.LoginResponse{
		Token:     token,
		Role:      string(user.Role),
		Photo:     user.Photo,
		LastName:  user.LastName,
		FirstName: user.FirstName,
		Email:     user.Email,
	}, nil
}

// GetProfile returns the authenticated account's non-secret fields
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return profileResponse(user), nil
}

// UpdateProfile updates the authenticated account's name, email and
// photo reference, and returns the updated profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if !validation.IsEmailValid(req.Email) {
		return nil, apperrors.NewInvalidInputError("invalid email")
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.LastName, req.FirstName, req.Email, req.Photo); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", userID).Msg("Profile updated")

	return profileResponse(user), nil
}

// UpdateEmail changes an account's email address. The caller may only
// change their own email; acting on another id is forbidden.
func (s *AuthService) UpdateEmail(ctx context.Context, callerID, targetID int64, email string) (*dto.UpdateEmailResponse, error) {
	if callerID != targetID {
		return nil, apperrors.ErrForbidden
	}

	if !validation.IsEmailValid(email) {
		return nil, apperrors.NewInvalidInputError("invalid email")
	}

	if err := s.userRepo.UpdateEmail(ctx, targetID, email); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", targetID).Msg("Email updated")

	return &dto.UpdateEmailResponse{Email: email}, nil
}

func profileResponse(user *models.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:        user.ID,
		LastName:  user.LastName,
		FirstName: user.FirstName,
		Email:     user.Email,
		Role:      string(user.Role),
		Photo:     user.Photo,
	}
}
