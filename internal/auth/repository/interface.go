package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")
var ErrEmailTaken = errors.New("email already registered")

// User is a stored user record including its credential hash.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterParams contains everything needed for the atomic registration write:
// the new user plus the name of their default organisation.
type RegisterParams struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            *string
	PasswordHash     string
	OrganisationName string
}

// Store persists user credentials and the registration unit of work.
type Store interface {
	// CreateUserWithDefaultOrganisation creates the user, their default
	// organisation and the sole membership row in a single transaction.
	// Either all three persist or none do. Returns ErrEmailTaken when the
	// email is already registered.
	CreateUserWithDefaultOrganisation(ctx context.Context, params RegisterParams) (User, uuid.UUID, error)

	// FindUserByEmail looks a user up by normalized email.
	// Returns ErrNotFound when no user has that email.
	FindUserByEmail(ctx context.Context, email string) (User, error)
}
