package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// User is the public profile view of a user record.
type User struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Organisation is a stored organisation record.
type Organisation struct {
	ID          uuid.UUID
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateOrganisationParams carries the fields for an explicit organisation
// create, with the creator becoming the first member.
type CreateOrganisationParams struct {
	Name        string
	Description *string
	CreatorID   uuid.UUID
}

// Store persists users, organisations and the membership relation.
type Store interface {
	// FindUserByID looks a user up by ID. Returns ErrNotFound when absent.
	FindUserByID(ctx context.Context, id uuid.UUID) (User, error)

	// UserExists reports whether a user with the given ID exists.
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)

	// HasSharedOrganisation reports whether the two users are both members of
	// at least one common organisation.
	HasSharedOrganisation(ctx context.Context, a, b uuid.UUID) (bool, error)

	// ListOrganisationsByMember returns every organisation the user belongs
	// to, in stable order.
	ListOrganisationsByMember(ctx context.Context, userID uuid.UUID) ([]Organisation, error)

	// FindOrganisationForMember returns the organisation only when the user
	// is a member of it. Returns ErrNotFound otherwise, including when the
	// organisation exists but the user is not a member.
	FindOrganisationForMember(ctx context.Context, orgID, userID uuid.UUID) (Organisation, error)

	// CreateOrganisation creates the organisation and the creator's
	// membership in a single transaction.
	CreateOrganisation(ctx context.Context, params CreateOrganisationParams) (Organisation, error)

	// AddMember adds the user to the organisation's member set. Adding an
	// existing member is a no-op.
	AddMember(ctx context.Context, orgID, userID uuid.UUID) error
}
