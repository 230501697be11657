package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

const findUserByEmailQuery = `
	SELECT id, first_name, last_name, email, phone, password_hash, created_at, updated_at
	FROM users WHERE email = $1
`

// Repository is the Postgres-backed credential store.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateUserWithDefaultOrganisation runs the three-step registration write in
// one transaction: insert user, insert default organisation, insert sole
// membership. Partial application is never observable.
func (r *Repository) CreateUserWithDefaultOrganisation(ctx context.Context, params RegisterParams) (User, uuid.UUID, error) {
	var user User
	var orgID uuid.UUID

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return User{}, uuid.Nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, first_name, last_name, email, phone, password_hash, created_at, updated_at
	`, params.FirstName, params.LastName, params.Email, params.Phone, params.PasswordHash).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrEmailTaken
		}
		return User{}, uuid.Nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO organisations (name)
		VALUES ($1)
		RETURNING id
	`, params.OrganisationName).Scan(&orgID)
	if err != nil {
		return User{}, uuid.Nil, err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO organisation_members (organisation_id, user_id)
		VALUES ($1, $2)
	`, orgID, user.ID); err != nil {
		return User{}, uuid.Nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return User{}, uuid.Nil, err
	}

	return user, orgID, nil
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, findUserByEmailQuery, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// Compile-time check that Repository implements Store
var _ Store = (*Repository)(nil)
