package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/lukusafi/laundry-api/pkg/pagination"
	"github.com/lukusafi/laundry-api/pkg/utils"
)

// UserService handles staff account management by the owner
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// AddUserInput represents an account created by the owner
type AddUserInput struct {
	Name     string
	Email    string
	Password string
	Role     enum.UserRole
}

// AddUser creates an account with an explicit role
func (s *UserService) AddUser(ctx context.Context, input *AddUserInput) (*entity.User, error) {
	if !input.Role.IsValid() {
		return nil, apperror.NewFieldError("role", "role must be owner or attendant")
	}

	email := normalizeEmail(input.Email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashedPassword,
		Role:     input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers lists staff accounts
func (s *UserService) ListUsers(ctx context.Context, params *pagination.Params) (*pagination.Result[entity.User], error) {
	params.Validate()
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(users, pagination.New(params.Page, params.Limit, total)), nil
}

// UpdateRole changes a user's role. Owners cannot demote themselves.
func (s *UserService) UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role enum.UserRole) (*entity.User, error) {
	if !role.IsValid() {
		return nil, apperror.NewFieldError("role", "role must be owner or attendant")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if actorID == userID && role != enum.UserRoleOwner {
		return nil, apperror.NewBadRequestError("You cannot remove your own owner role")
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
