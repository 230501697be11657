// Package handler provides the HTTP endpoints for registration and login.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orghub_backend/internal/auth/repository"
	"orghub_backend/internal/auth/service"
	"orghub_backend/internal/auth/transport"
	"orghub_backend/platform/httpkit"
	"orghub_backend/platform/validator"
)

const (
	msgRegistered   = "Registration successful"
	msgLoggedIn     = "Login successful"
	msgClientError  = "Client error"
	labelBadRequest = "Bad Request"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the auth endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, labelBadRequest, msgClientError)
		return
	}

	if fields := h.val.Fields(req); fields != nil {
		httpkit.ValidationFailed(c, fields)
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Success(c, http.StatusCreated, msgRegistered, authData(user, token))
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, labelBadRequest, msgClientError)
		return
	}

	if fields := h.val.Fields(req); fields != nil {
		httpkit.ValidationFailed(c, fields)
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, msgLoggedIn, authData(user, token))
}

func authData(user repository.User, token string) transport.AuthData {
	return transport.AuthData{
		AccessToken: token,
		User:        userPayload(user),
	}
}

func userPayload(user repository.User) transport.UserPayload {
	payload := transport.UserPayload{
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
