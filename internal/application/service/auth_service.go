package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/lukusafi/laundry-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// AuthOutput is returned after a successful login or registration
type AuthOutput struct {
	User        *entity.User
	AccessToken string
	ExpiresIn   int64
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issue(user)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account. The very first account becomes the owner;
// every later self-registration is an attendant.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := enum.UserRoleAttendant
	if count == 0 {
		role = enum.UserRoleOwner
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashedPassword,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Me returns the signed-in user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

func (s *AuthService) issue(user *entity.User) (*AuthOutput, error) {
	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthOutput{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.Expiry().Seconds()),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
