// Package transport defines the wire DTOs for the identity module.
package transport

import "orghub_backend/internal/identity/repository"

// CreateOrganisationRequest is the body for POST /organisations.
type CreateOrganisationRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// AddMemberRequest is the body for POST /organisations/:orgId/users.
type AddMemberRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// UserPayload is the public view of a user record.
type UserPayload struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// OrganisationPayload is the public view of an organisation record.
type OrganisationPayload struct {
	OrgID       string `json:"orgId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// OrganisationListPayload wraps the organisations a user belongs to.
type OrganisationListPayload struct {
	Organisations []OrganisationPayload `json:"organisations"`
}

// NewUserPayload maps a stored user to its wire shape.
func NewUserPayload(user repository.User) UserPayload {
	payload := UserPayload{
		UserID:    user.ID.String(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	if user.Phone != nil {
		payload.Phone = *user.Phone
	}
	return payload
}

// NewOrganisationPayload maps a stored organisation to its wire shape.
func NewOrganisationPayload(org repository.Organisation) OrganisationPayload {
	payload := OrganisationPayload{
		OrgID: org.ID.String(),
		Name:  org.Name,
	}
	if org.Description != nil {
		payload.Description = *org.Description
	}
	return payload
}

// NewOrganisationListPayload maps stored organisations to the list wire shape.
func NewOrganisationListPayload(orgs []repository.Organisation) OrganisationListPayload {
	payloads := make([]OrganisationPayload, 0, len(orgs))
	for _, org := range orgs {
		payloads = append(payloads, NewOrganisationPayload(org))
	}
	return OrganisationListPayload{Organisations: payloads}
}
