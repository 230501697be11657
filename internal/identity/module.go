// Package identity is the organisation/membership bounded context: user
// profile visibility, organisation listing and creation, member management.
package identity

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"orghub_backend/internal/events"
	apphttp "orghub_backend/internal/http"
	"orghub_backend/internal/identity/handler"
	"orghub_backend/internal/identity/repository"
	"orghub_backend/internal/identity/service"
	"orghub_backend/platform/logger"
	"orghub_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

// NewModule wires the identity module: Postgres store, service and HTTP
// handler.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	store := repository.New(pool)
	svc := service.New(store, bus, log)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string { return "identity" }

// RegisterRoutes mounts the profile and organisation endpoints on the
// protected group; every route requires a valid bearer token.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
