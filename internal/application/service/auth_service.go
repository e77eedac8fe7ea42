package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/utils"
)

// MinPasswordLength is enforced on registration
const MinPasswordLength = 8

// AuthService handles authentication-related operations
type AuthService struct {
	tenantRepo repository.TenantRepository
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// AuthOutput is returned by every operation that opens a session
type AuthOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// RegisterInput represents the registration input
type RegisterInput struct {
	BusinessName string
	Name         string
	Email        string
	Password     string
}

// Register creates a tenant with its owner and signs the owner in
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	errs := []*apperror.FieldError{
		required("business_name", input.BusinessName),
		required("name", input.Name),
		required("email", email),
	}
	if len(input.Password) < MinPasswordLength {
		errs = append(errs, &apperror.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if err := collect(errs...); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	businessName := strings.TrimSpace(input.BusinessName)
	tenant := &entity.Tenant{
		Name: businessName,
		Slug: utils.UniqueSlug(businessName),
		Profile: entity.BusinessProfile{
			BusinessName: businessName,
			Email:        email,
		},
	}
	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashed,
		IsActive: true,
	}

	if err := s.tenantRepo.CreateWithOwner(ctx, tenant, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperror.NewConflictError("Email already registered")
		}
		return nil, err
	}

	return s.issueTokens(user)
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// RefreshToken exchanges a refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

// GetCurrentUser loads the signed-in user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *entity.User) (*AuthOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.TenantID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
