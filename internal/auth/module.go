// Package auth is the authentication bounded context: registration, login and
// bearer token issuance/verification.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"orghub_backend/internal/auth/handler"
	"orghub_backend/internal/auth/repository"
	"orghub_backend/internal/auth/service"
	"orghub_backend/internal/auth/token"
	"orghub_backend/internal/events"
	apphttp "orghub_backend/internal/http"
	"orghub_backend/platform/config"
	"orghub_backend/platform/logger"
	"orghub_backend/platform/validator"
)

type Module struct {
	handler  *handler.Handler
	verifier token.Verifier
}

// NewModule wires the auth module: Postgres store, JWT issuer/verifier,
// service and HTTP handler.
func NewModule(pool *pgxpool.Pool, cfg config.AuthConfig, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	jwt := token.NewJWT(cfg.GetJWTSecret(), cfg.GetAccessTokenTTL())
	store := repository.New(pool)
	svc := service.New(store, jwt, bus, log)

	return &Module{
		handler:  handler.New(svc, val),
		verifier: jwt,
	}
}

func (m *Module) Name() string { return "auth" }

// Verifier exposes the token verifier for the protected-route middleware.
func (m *Module) Verifier() token.Verifier { return m.verifier }

// RegisterRoutes mounts /auth/register and /auth/login on the public group
// behind the stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Public.Group("/auth")
	group.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
