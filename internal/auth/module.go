// Package auth provides the authentication bounded context module: admin
// sign-in, token issuance, and the resolved-admin view.
package auth

import (
	"orghub_backend/internal/auth/handler"
	"orghub_backend/internal/auth/service"
	"orghub_backend/internal/directory"
	apphttp "orghub_backend/internal/http"
	"orghub_backend/platform/config"
	"orghub_backend/platform/logger"
	"orghub_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module.
func NewModule(dir directory.Directory, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(dir, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer; main uses it as the gate's admin
// resolver.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := ctx.V1.Group("/admin")
	admin.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(admin)

	ctx.Protected.GET("/admin/me", m.handler.Me)
}
