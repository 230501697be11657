package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const findUserByIDQuery = `
	SELECT id, first_name, last_name, email, phone, created_at, updated_at
	FROM users WHERE id = $1
`

const userExistsQuery = `
	SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
`

// sharedOrganisationQuery checks whether two users co-occur in any
// organisation's member set.
const sharedOrganisationQuery = `
	SELECT EXISTS (
		SELECT 1
		FROM organisation_members a
		JOIN organisation_members b ON a.organisation_id = b.organisation_id
		WHERE a.user_id = $1 AND b.user_id = $2
	)
`

const listOrganisationsQuery = `
	SELECT o.id, o.name, o.description, o.created_at, o.updated_at
	FROM organisations o
	JOIN organisation_members m ON m.organisation_id = o.id
	WHERE m.user_id = $1
	ORDER BY o.name, o.id
`

// organisationForMemberQuery resolves an organisation through the requester's
// membership, so non-members cannot distinguish "absent" from "not mine".
const organisationForMemberQuery = `
	SELECT o.id, o.name, o.description, o.created_at, o.updated_at
	FROM organisations o
	JOIN organisation_members m ON m.organisation_id = o.id
	WHERE o.id = $1 AND m.user_id = $2
`

const addMemberQuery = `
	INSERT INTO organisation_members (organisation_id, user_id)
	VALUES ($1, $2)
	ON CONFLICT (organisation_id, user_id) DO NOTHING
`

// Repository is the Postgres-backed identity store.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) FindUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, findUserByIDQuery, id).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

func (r *Repository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, userExistsQuery, id).Scan(&exists)
	return exists, err
}

func (r *Repository) HasSharedOrganisation(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var shared bool
	err := r.pool.QueryRow(ctx, sharedOrganisationQuery, a, b).Scan(&shared)
	return shared, err
}

func (r *Repository) ListOrganisationsByMember(ctx context.Context, userID uuid.UUID) ([]Organisation, error) {
	rows, err := r.pool.Query(ctx, listOrganisationsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := make([]Organisation, 0)
	for rows.Next() {
		var org Organisation
		if err := rows.Scan(&org.ID, &org.Name, &org.Description, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (r *Repository) FindOrganisationForMember(ctx context.Context, orgID, userID uuid.UUID) (Organisation, error) {
	var org Organisation
	err := r.pool.QueryRow(ctx, organisationForMemberQuery, orgID, userID).Scan(
		&org.ID,
		&org.Name,
		&org.Description,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Organisation{}, ErrNotFound
	}
	return org, err
}

// CreateOrganisation inserts the organisation and the creator's membership in
// one transaction so an organisation never exists without its first member.
func (r *Repository) CreateOrganisation(ctx context.Context, params CreateOrganisationParams) (Organisation, error) {
	var org Organisation

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Organisation{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO organisations (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at
	`, params.Name, params.Description).Scan(
		&org.ID,
		&org.Name,
		&org.Description,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		return Organisation{}, err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO organisation_members (organisation_id, user_id)
		VALUES ($1, $2)
	`, org.ID, params.CreatorID); err != nil {
		return Organisation{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return Organisation{}, err
	}

	return org, nil
}

func (r *Repository) AddMember(ctx context.Context, orgID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, addMemberQuery, orgID, userID)
	return err
}

// Compile-time check that Repository implements Store
var _ Store = (*Repository)(nil)
