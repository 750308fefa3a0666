package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"holidayplanner/internal/domain"
)

const minPasswordLength = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	contextTimeout time.Duration
}

// NewUserService creates a UserService with the given repository and auth ports.
func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		contextTimeout: timeout,
	}
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.AuthenticationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = normaliseEmail(email)
	if email == "" || password == "" {
		return nil, domain.InvalidInput("email and password are required")
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denied("invalid credentials")
		}
		return nil, domain.Unavailable("find user by email", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.Denied("invalid credentials")
	}
	token, err := s.tokenIssuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &domain.AuthenticationResult{
		Token:     token,
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role(),
	}, nil
}

func (s *userService) Signup(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := normaliseEmail(input.Email)
	switch {
	case firstName == "":
		return nil, domain.InvalidInput("firstName is required")
	case lastName == "":
		return nil, domain.InvalidInput("lastName is required")
	case !emailRegexp.MatchString(email):
		return nil, domain.InvalidInput("invalid email format")
	case len(input.Password) < minPasswordLength:
		return nil, domain.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	now := time.Now()
	user := domain.NewUser(firstName, lastName, email, input.IsOrganiser, now, now)
	user.PasswordHash = hash
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("email already in use")
		}
		return nil, domain.Unavailable("create user", err)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = normaliseEmail(email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(fmt.Sprintf("User with email: %s does not exist.", email))
		}
		return nil, domain.Unavailable("find user by email", err)
	}
	return user, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
