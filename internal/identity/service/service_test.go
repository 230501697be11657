package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"orghub_backend/internal/events"
	"orghub_backend/internal/identity/repository"
	"orghub_backend/platform/apperr"
	"orghub_backend/platform/logger"
)

// memStore is an in-memory Store for exercising the access rules without a
// database.
type memStore struct {
	users   map[uuid.UUID]repository.User
	orgs    map[uuid.UUID]repository.Organisation
	members map[uuid.UUID]map[uuid.UUID]bool // orgID -> set of userIDs
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[uuid.UUID]repository.User),
		orgs:    make(map[uuid.UUID]repository.Organisation),
		members: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (s *memStore) addUser(firstName string) uuid.UUID {
	id := uuid.New()
	s.users[id] = repository.User{
		ID:        id,
		FirstName: firstName,
		LastName:  "Test",
		Email:     firstName + "@example.com",
	}
	return id
}

func (s *memStore) addOrg(name string, memberIDs ...uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.orgs[id] = repository.Organisation{ID: id, Name: name}
	s.members[id] = make(map[uuid.UUID]bool)
	for _, m := range memberIDs {
		s.members[id][m] = true
	}
	return id
}

func (s *memStore) FindUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	user, ok := s.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (s *memStore) UserExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

func (s *memStore) HasSharedOrganisation(_ context.Context, a, b uuid.UUID) (bool, error) {
	for _, set := range s.members {
		if set[a] && set[b] {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ListOrganisationsByMember(_ context.Context, userID uuid.UUID) ([]repository.Organisation, error) {
	var orgs []repository.Organisation
	for orgID, set := range s.members {
		if set[userID] {
			orgs = append(orgs, s.orgs[orgID])
		}
	}
	sort.Slice(orgs, func(i, j int) bool {
		if orgs[i].Name != orgs[j].Name {
			return orgs[i].Name < orgs[j].Name
		}
		return orgs[i].ID.String() < orgs[j].ID.String()
	})
	return orgs, nil
}

func (s *memStore) FindOrganisationForMember(_ context.Context, orgID, userID uuid.UUID) (repository.Organisation, error) {
	org, ok := s.orgs[orgID]
	if !ok || !s.members[orgID][userID] {
		return repository.Organisation{}, repository.ErrNotFound
	}
	return org, nil
}

func (s *memStore) CreateOrganisation(_ context.Context, params repository.CreateOrganisationParams) (repository.Organisation, error) {
	org := repository.Organisation{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.orgs[org.ID] = org
	s.members[org.ID] = map[uuid.UUID]bool{params.CreatorID: true}
	return org, nil
}

func (s *memStore) AddMember(_ context.Context, orgID, userID uuid.UUID) error {
	s.members[orgID][userID] = true
	return nil
}

var _ repository.Store = (*memStore)(nil)

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event) {}
func (nopBus) PublishSync(context.Context, events.Event) error {
	return nil
}
func (nopBus) Subscribe(string, events.Handler) {}

func newService(store repository.Store) *Service {
	return New(store, nopBus{}, logger.New("test"))
}

func assertKind(t *testing.T, err error, kind apperr.Kind, message string) {
	t.Helper()
	appErr, ok := err.(*apperr.Error)
	if !ok {
		t.Fatalf("expected *apperr.Error, got %T (%v)", err, err)
	}
	if appErr.Kind != kind {
		t.Fatalf("kind = %v, want %v", appErr.Kind, kind)
	}
	if appErr.Message != message {
		t.Errorf("message = %q, want %q", appErr.Message, message)
	}
}

func TestCanViewUser(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	carol := store.addUser("carol")
	store.addOrg("Shared", alice, bob)
	svc := newService(store)

	cases := []struct {
		name      string
		requester uuid.UUID
		target    uuid.UUID
		want      Decision
	}{
		{"self access always allowed", alice, alice, DecisionSelf},
		{"shared organisation grants access", alice, bob, DecisionAllowed},
		{"visibility is symmetric", bob, alice, DecisionAllowed},
		{"no shared organisation denies access", alice, carol, DecisionForbidden},
		{"missing target reported absent", alice, uuid.New(), DecisionNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CanViewUser(context.Background(), tc.requester, tc.target)
			if err != nil {
				t.Fatalf("CanViewUser returned error: %v", err)
			}
			if got != tc.want {
				t.Errorf("decision = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGetUserErrors(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	carol := store.addUser("carol")
	svc := newService(store)

	_, err := svc.GetUser(context.Background(), alice, uuid.New())
	assertKind(t, err, apperr.KindNotFound, "User not found")

	_, err = svc.GetUser(context.Background(), alice, carol)
	assertKind(t, err, apperr.KindForbidden, "You do not have the permission to view this yet")
}

func TestGetUserSelf(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	svc := newService(store)

	user, err := svc.GetUser(context.Background(), alice, alice)
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if user.ID != alice {
		t.Errorf("got user %s, want %s", user.ID, alice)
	}
}

func TestListOrganisationsOnlyOwnMemberships(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	store.addOrg("Beta", alice)
	store.addOrg("Alpha", alice, bob)
	store.addOrg("Hidden", bob)
	svc := newService(store)

	orgs, err := svc.ListOrganisations(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListOrganisations returned error: %v", err)
	}
	if len(orgs) != 2 {
		t.Fatalf("got %d organisations, want 2", len(orgs))
	}
	if orgs[0].Name != "Alpha" || orgs[1].Name != "Beta" {
		t.Errorf("order = [%s, %s], want [Alpha, Beta]", orgs[0].Name, orgs[1].Name)
	}
}

func TestListOrganisationsEmpty(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	svc := newService(store)

	orgs, err := svc.ListOrganisations(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListOrganisations returned error: %v", err)
	}
	if len(orgs) != 0 {
		t.Errorf("got %d organisations, want 0", len(orgs))
	}
}

func TestGetOrganisationMemberGated(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	orgID := store.addOrg("Alpha", alice)
	svc := newService(store)

	org, err := svc.GetOrganisation(context.Background(), alice, orgID)
	if err != nil {
		t.Fatalf("GetOrganisation returned error: %v", err)
	}
	if org.Name != "Alpha" {
		t.Errorf("name = %q", org.Name)
	}

	// A non-member gets the same answer as for an absent organisation.
	_, err = svc.GetOrganisation(context.Background(), bob, orgID)
	assertKind(t, err, apperr.KindNotFound, "Organisation not found")

	_, err = svc.GetOrganisation(context.Background(), alice, uuid.New())
	assertKind(t, err, apperr.KindNotFound, "Organisation not found")
}

func TestCreateOrganisationCreatorBecomesMember(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	svc := newService(store)

	desc := "desc <script>alert(1)</script>"
	org, err := svc.CreateOrganisation(context.Background(), alice, "<b>New Org</b>", &desc)
	if err != nil {
		t.Fatalf("CreateOrganisation returned error: %v", err)
	}
	if org.Name != "New Org" {
		t.Errorf("name not sanitized, got %q", org.Name)
	}
	if org.Description == nil || *org.Description != "desc alert(1)" {
		t.Errorf("description not sanitized, got %v", org.Description)
	}

	got, err := svc.GetOrganisation(context.Background(), alice, org.ID)
	if err != nil {
		t.Fatalf("creator cannot see the new organisation: %v", err)
	}
	if got.ID != org.ID {
		t.Errorf("got organisation %s, want %s", got.ID, org.ID)
	}
}

func TestAddMember(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	orgID := store.addOrg("Alpha", alice)
	svc := newService(store)

	if err := svc.AddMember(context.Background(), alice, orgID, bob); err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}

	// Membership makes the pair mutually visible.
	decision, err := svc.CanViewUser(context.Background(), bob, alice)
	if err != nil {
		t.Fatalf("CanViewUser returned error: %v", err)
	}
	if decision != DecisionAllowed {
		t.Errorf("decision = %v, want allowed", decision)
	}

	// Re-adding is a no-op.
	if err := svc.AddMember(context.Background(), alice, orgID, bob); err != nil {
		t.Errorf("re-adding an existing member returned error: %v", err)
	}
}

func TestAddMemberNonMemberRequesterGetsNotFound(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	mallory := store.addUser("mallory")
	target := store.addUser("target")
	orgID := store.addOrg("Alpha", alice)
	svc := newService(store)

	// A non-member cannot resolve the organisation at all, so the answer is
	// the absent-organisation one, never a permission error.
	err := svc.AddMember(context.Background(), mallory, orgID, target)
	assertKind(t, err, apperr.KindNotFound, "Organisation not found")
}

func TestAddMemberUnknownTarget(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	orgID := store.addOrg("Alpha", alice)
	svc := newService(store)

	err := svc.AddMember(context.Background(), alice, orgID, uuid.New())
	assertKind(t, err, apperr.KindNotFound, "User not found")
}
