package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emretknc/driveaway/internal/auth"
	"github.com/emretknc/driveaway/internal/helpers"
	"github.com/emretknc/driveaway/internal/models"
)

// ErrInvalidCredentials is the single outward signal for every
// authentication failure. Schema violations, unknown emails and wrong
// passwords are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService struct {
	userRepo models.UsersRepo
	tokens   *auth.Manager
}

func NewUserService(userRepo models.UsersRepo, tokens *auth.Manager) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone,omitempty"`
}

func (us *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid registration data: %v", err)
	}
	if !helpers.IsPasswordStrong(input.Password) {
		return nil, fmt.Errorf("password is not strong enough")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		Password:        hash,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		IsAdmin:         false,
		IsEmailVerified: false,
	}

	return us.userRepo.CreateUser(ctx, user)
}

// Authenticate verifies credentials and issues a session token. All failure
// causes collapse to ErrInvalidCredentials.
func (us *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := models.Validate.Var(password, "required,min=1"); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("authentication failed: %v", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := us.tokens.IssueToken(user.ID.Hex(), user.FullName(), user.IsAdmin, user.IsEmailVerified)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %v", err)
	}
	return user, token, nil
}
