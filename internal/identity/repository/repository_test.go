package repository

import (
	"strings"
	"testing"
)

func TestListQueryHasStableOrder(t *testing.T) {
	if !strings.Contains(listOrganisationsQuery, "ORDER BY o.name, o.id") {
		t.Error("organisation listing must order by name then id for a stable order")
	}
}

func TestOrganisationLookupIsMemberGated(t *testing.T) {
	if !strings.Contains(organisationForMemberQuery, "JOIN organisation_members") {
		t.Error("organisation lookup must resolve through the requester's membership")
	}
	if !strings.Contains(organisationForMemberQuery, "m.user_id = $2") {
		t.Error("organisation lookup must filter on the requesting user")
	}
}

func TestAddMemberIsIdempotent(t *testing.T) {
	if !strings.Contains(addMemberQuery, "ON CONFLICT (organisation_id, user_id) DO NOTHING") {
		t.Error("adding an existing member must be a no-op")
	}
}

func TestSharedOrganisationQuerySelfJoins(t *testing.T) {
	if !strings.Contains(sharedOrganisationQuery, "a.organisation_id = b.organisation_id") {
		t.Error("shared-organisation check must self-join the membership table")
	}
}
