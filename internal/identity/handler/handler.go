// Package handler provides the HTTP endpoints for user profiles,
// organisations and membership.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orghub_backend/internal/identity/service"
	"orghub_backend/internal/identity/transport"
	"orghub_backend/platform/httpkit"
	"orghub_backend/platform/validator"
)

const (
	msgUserRetrieved  = "User retrieved successfully"
	msgOrgsRetrieved  = "Organisations retrieved successfully"
	msgOrgRetrieved   = "Organisation retrieved successfully"
	msgOrgCreated     = "Organisation created successfully"
	msgMemberAdded    = "User added to organisation successfully"
	msgUserNotFound   = "User not found"
	msgOrgNotFound    = "Organisation not found"
	msgClientError    = "Client error"
	labelBadRequest   = "Bad Request"
	labelNotFoundBody = "Bad request"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the identity endpoints on the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:userId", h.GetUser)
	rg.GET("/organisations", h.ListOrganisations)
	rg.POST("/organisations", h.CreateOrganisation)
	rg.GET("/organisations/:orgId", h.GetOrganisation)
	rg.POST("/organisations/:orgId/users", h.AddMember)
}

// GetUser handles GET /users/:userId.
func (h *Handler) GetUser(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	targetID, ok := parseIDParam(c, "userId", msgUserNotFound)
	if !ok {
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), identity.UserID(), targetID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, msgUserRetrieved, transport.NewUserPayload(user))
}

// ListOrganisations handles GET /organisations.
func (h *Handler) ListOrganisations(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	orgs, err := h.svc.ListOrganisations(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, msgOrgsRetrieved, transport.NewOrganisationListPayload(orgs))
}

// GetOrganisation handles GET /organisations/:orgId.
func (h *Handler) GetOrganisation(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	orgID, ok := parseIDParam(c, "orgId", msgOrgNotFound)
	if !ok {
		return
	}

	org, err := h.svc.GetOrganisation(c.Request.Context(), identity.UserID(), orgID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, msgOrgRetrieved, transport.NewOrganisationPayload(org))
}

// CreateOrganisation handles POST /organisations.
// Invalid bodies get the legacy 400 "Client error" shape rather than the
// field-level 422.
func (h *Handler) CreateOrganisation(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateOrganisationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, labelBadRequest, msgClientError)
		return
	}
	if fields := h.val.Fields(req); fields != nil {
		httpkit.Fail(c, http.StatusBadRequest, labelBadRequest, msgClientError)
		return
	}

	org, err := h.svc.CreateOrganisation(c.Request.Context(), identity.UserID(), req.Name, req.Description)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Success(c, http.StatusCreated, msgOrgCreated, transport.NewOrganisationPayload(org))
}

// AddMember handles POST /organisations/:orgId/users.
func (h *Handler) AddMember(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	orgID, ok := parseIDParam(c, "orgId", msgOrgNotFound)
	if !ok {
		return
	}

	var req transport.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, labelBadRequest, msgClientError)
		return
	}
	if fields := h.val.Fields(req); fields != nil {
		httpkit.ValidationFailed(c, fields)
		return
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		httpkit.ValidationFailed(c, []validator.FieldError{{Field: "userId", Message: "Must be a valid UUID."}})
		return
	}

	if err := h.svc.AddMember(c.Request.Context(), identity.UserID(), orgID, targetID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, msgMemberAdded, nil)
}

// parseIDParam parses a UUID path parameter. A malformed ID cannot name any
// resource, so it is reported the same way as an absent one.
func parseIDParam(c *gin.Context, name, notFoundMessage string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.Fail(c, http.StatusNotFound, labelNotFoundBody, notFoundMessage)
		return uuid.Nil, false
	}
	return id, true
}
