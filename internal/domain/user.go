package domain

import (
	"context"
	"time"
)

// Role names returned to clients after login.
const (
	RoleOrganiser = "ORGANISER"
	RoleClient    = "CLIENT"
)

// User represents a registered user
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	IsOrganiser  bool      `json:"isOrganiser"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(firstName, lastName, email string, isOrganiser bool, createdAt, updatedAt time.Time) *User {
	return &User{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		IsOrganiser: isOrganiser,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Role returns RoleOrganiser or RoleClient.
func (u *User) Role() string {
	if u.IsOrganiser {
		return RoleOrganiser
	}
	return RoleClient
}

// Claim is the verified identity assertion attached to a request by the authentication layer.
type Claim struct {
	Email       string `json:"email"`
	IsOrganiser bool   `json:"isOrganiser"`
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(user *User) (string, error)
}

// TokenVerifier verifies a token and returns the claim it carries.
type TokenVerifier interface {
	Verify(token string) (Claim, error)
}

// UserRepository defines the interface for user storage.
// Lookups return ErrNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// SignupInput holds the fields accepted when registering a user.
type SignupInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	IsOrganiser bool
}

// AuthenticationResult is returned by a successful login.
// swagger:model AuthenticationResult
type AuthenticationResult struct {
	Token     string `json:"token"`
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// UserService defines authentication and user lookup.
type UserService interface {
	Login(ctx context.Context, email, password string) (*AuthenticationResult, error)
	Signup(ctx context.Context, input SignupInput) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
