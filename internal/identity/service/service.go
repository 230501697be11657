// Package service implements the identity module's business rules: profile
// visibility, organisation listing/creation and membership management.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"orghub_backend/internal/events"
	"orghub_backend/internal/identity/repository"
	"orghub_backend/platform/apperr"
	"orghub_backend/platform/logger"
	"orghub_backend/platform/sanitize"
)

const (
	msgUserNotFound     = "User not found"
	msgOrgNotFound      = "Organisation not found"
	msgForbiddenProfile = "You do not have the permission to view this yet"

	opGetUser    = "identity.GetUser"
	opListOrgs   = "identity.ListOrganisations"
	opGetOrg     = "identity.GetOrganisation"
	opCreateOrg  = "identity.CreateOrganisation"
	opAddMember  = "identity.AddMember"
)

// Decision classifies a profile visibility check.
type Decision int

const (
	// DecisionNotFound means the target does not exist, or must appear absent.
	DecisionNotFound Decision = iota
	// DecisionSelf means the requester is looking at their own profile.
	DecisionSelf
	// DecisionAllowed means the requester shares an organisation with the target.
	DecisionAllowed
	// DecisionForbidden means the target exists but shares no organisation
	// with the requester.
	DecisionForbidden
)

type Service struct {
	store repository.Store
	bus   events.Bus
	log   *logger.Logger
}

func New(store repository.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, log: log}
}

// CanViewUser decides whether requester may see target's profile.
// Self-access is always allowed; otherwise the two must share at least one
// organisation. A missing target is reported before any permission check.
func (s *Service) CanViewUser(ctx context.Context, requester, target uuid.UUID) (Decision, error) {
	if requester == target {
		return DecisionSelf, nil
	}

	exists, err := s.store.UserExists(ctx, target)
	if err != nil {
		return DecisionNotFound, err
	}
	if !exists {
		return DecisionNotFound, nil
	}

	shared, err := s.store.HasSharedOrganisation(ctx, requester, target)
	if err != nil {
		return DecisionNotFound, err
	}
	if !shared {
		return DecisionForbidden, nil
	}
	return DecisionAllowed, nil
}

// GetUser returns the target's profile when the requester may see it.
func (s *Service) GetUser(ctx context.Context, requester, target uuid.UUID) (repository.User, error) {
	decision, err := s.CanViewUser(ctx, requester, target)
	if err != nil {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "could not check access", err).WithOp(opGetUser)
	}

	switch decision {
	case DecisionNotFound:
		return repository.User{}, apperr.NotFound(msgUserNotFound)
	case DecisionForbidden:
		return repository.User{}, apperr.Forbidden(msgForbiddenProfile)
	}

	user, err := s.store.FindUserByID(ctx, target)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.User{}, apperr.NotFound(msgUserNotFound)
		}
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "could not load user", err).WithOp(opGetUser)
	}
	return user, nil
}

// ListOrganisations returns every organisation the requester belongs to.
// Only the requester's own memberships are ever listed.
func (s *Service) ListOrganisations(ctx context.Context, requester uuid.UUID) ([]repository.Organisation, error) {
	orgs, err := s.store.ListOrganisationsByMember(ctx, requester)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "could not list organisations", err).WithOp(opListOrgs)
	}
	return orgs, nil
}

// GetOrganisation returns the organisation only when the requester is a
// member. Non-members get the same answer as for an absent organisation.
func (s *Service) GetOrganisation(ctx context.Context, requester, orgID uuid.UUID) (repository.Organisation, error) {
	org, err := s.store.FindOrganisationForMember(ctx, orgID, requester)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Organisation{}, apperr.NotFound(msgOrgNotFound)
		}
		return repository.Organisation{}, apperr.Wrap(apperr.KindInternal, "could not load organisation", err).WithOp(opGetOrg)
	}
	return org, nil
}

// CreateOrganisation creates an organisation with the requester as its first
// member. Name and description are sanitized before storage.
func (s *Service) CreateOrganisation(ctx context.Context, requester uuid.UUID, name string, description *string) (repository.Organisation, error) {
	org, err := s.store.CreateOrganisation(ctx, repository.CreateOrganisationParams{
		Name:        sanitize.Text(name),
		Description: sanitize.TextPtr(description),
		CreatorID:   requester,
	})
	if err != nil {
		return repository.Organisation{}, apperr.Wrap(apperr.KindInternal, "could not create organisation", err).WithOp(opCreateOrg)
	}

	s.bus.Publish(ctx, events.OrganisationCreated{
		BaseEvent:      events.NewBaseEvent(),
		OrganisationID: org.ID,
		Name:           org.Name,
		CreatedBy:      requester,
	})
	return org, nil
}

// AddMember adds target to the organisation. The requester must be a member
// of the organisation for it to be resolvable at all; the target must exist.
// Adding an existing member succeeds without change.
func (s *Service) AddMember(ctx context.Context, requester, orgID, target uuid.UUID) error {
	if _, err := s.store.FindOrganisationForMember(ctx, orgID, requester); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgOrgNotFound)
		}
		return apperr.Wrap(apperr.KindInternal, "could not load organisation", err).WithOp(opAddMember)
	}

	exists, err := s.store.UserExists(ctx, target)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "could not check user", err).WithOp(opAddMember)
	}
	if !exists {
		return apperr.NotFound(msgUserNotFound)
	}

	if err := s.store.AddMember(ctx, orgID, target); err != nil {
		return apperr.Wrap(apperr.KindInternal, "could not add member", err).WithOp(opAddMember)
	}

	s.bus.Publish(ctx, events.MemberAdded{
		BaseEvent:      events.NewBaseEvent(),
		OrganisationID: orgID,
		UserID:         target,
		AddedBy:        requester,
	})
	return nil
}
