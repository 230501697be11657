package service

import (
	"context"
	"errors"
	"strings"

	"orghub_backend/internal/auth/password"
	"orghub_backend/internal/auth/repository"
	"orghub_backend/internal/auth/token"
	"orghub_backend/internal/events"
	"orghub_backend/platform/apperr"
	"orghub_backend/platform/logger"
	"orghub_backend/platform/phone"
	"orghub_backend/platform/validator"
)

const (
	msgEmailTaken       = "This email is already registered."
	msgAuthFailed       = "Authentication failed"
	orgNameSuffix       = "'s Organisation"
	opRegister          = "auth.Register"
	opLogin             = "auth.Login"
	eventRegister       = "register"
	eventLogin          = "login"
	reasonUnknownEmail  = "unknown email"
	reasonBadCredential = "bad credential"
)

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

type Service struct {
	store  repository.Store
	issuer token.Issuer
	bus    events.Bus
	log    *logger.Logger
}

func New(store repository.Store, issuer token.Issuer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, issuer: issuer, bus: bus, log: log}
}

// Register atomically creates a user, their default organisation named
// "<firstName>'s Organisation", and the sole membership row, then issues an
// access token. A duplicate email is rejected with a field-tagged validation
// error and never overwrites the existing user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (repository.User, string, error) {
	email := normalizeEmail(in.Email)

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return repository.User{}, "", emailTakenError()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return repository.User{}, "", apperr.Wrap(apperr.KindInternal, "could not register user", err).WithOp(opRegister)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return repository.User{}, "", apperr.Wrap(apperr.KindInternal, "could not register user", err).WithOp(opRegister)
	}

	params := repository.RegisterParams{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            email,
		Phone:            normalizePhone(in.Phone),
		PasswordHash:     hash,
		OrganisationName: in.FirstName + orgNameSuffix,
	}

	user, orgID, err := s.store.CreateUserWithDefaultOrganisation(ctx, params)
	if err != nil {
		// A concurrent registration can win the unique index race after the
		// pre-check; report it the same way.
		if errors.Is(err, repository.ErrEmailTaken) {
			return repository.User{}, "", emailTakenError()
		}
		return repository.User{}, "", apperr.Wrap(apperr.KindInternal, "could not register user", err).WithOp(opRegister)
	}

	accessToken, err := s.issuer.Issue(user.ID)
	if err != nil {
		return repository.User{}, "", apperr.Wrap(apperr.KindInternal, "could not issue token", err).WithOp(opRegister)
	}

	s.bus.Publish(ctx, events.UserRegistered{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
	})
	s.bus.Publish(ctx, events.OrganisationCreated{
		BaseEvent:      events.NewBaseEvent(),
		OrganisationID: orgID,
		Name:           params.OrganisationName,
		CreatedBy:      user.ID,
	})
	s.log.AuthEvent(eventRegister, user.Email, true, "")

	return user, accessToken, nil
}

// Login verifies the credential pair and issues an access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (repository.User, string, error) {
	normalized := normalizeEmail(email)

	user, err := s.store.FindUserByEmail(ctx, normalized)
	if err != nil {
		s.log.AuthEvent(eventLogin, normalized, false, reasonUnknownEmail)
		return repository.User{}, "", apperr.Unauthorized(msgAuthFailed)
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent(eventLogin, normalized, false, reasonBadCredential)
		return repository.User{}, "", apperr.Unauthorized(msgAuthFailed)
	}

	accessToken, err := s.issuer.Issue(user.ID)
	if err != nil {
		return repository.User{}, "", apperr.Wrap(apperr.KindInternal, "could not issue token", err).WithOp(opLogin)
	}

	s.log.AuthEvent(eventLogin, user.Email, true, "")
	return user, accessToken, nil
}

func emailTakenError() error {
	return apperr.Validation(msgEmailTaken).WithDetails([]validator.FieldError{
		{Field: "email", Message: msgEmailTaken},
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePhone(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	normalized := phone.NormalizeE164(trimmed)
	return &normalized
}
