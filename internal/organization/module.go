// Package organization provides the organization bounded context module:
// provisioning, rename with partition migration, and deprovisioning.
package organization

import (
	"orghub_backend/internal/directory"
	"orghub_backend/internal/events"
	apphttp "orghub_backend/internal/http"
	"orghub_backend/internal/organization/handler"
	"orghub_backend/internal/organization/service"
	"orghub_backend/internal/storage"
	"orghub_backend/platform/logger"
	"orghub_backend/platform/validator"
)

// Module is the organization bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the organization module. objects may be
// nil when object storage is not configured; logo endpoints then report the
// feature unavailable.
func NewModule(dir directory.Directory, partitions service.Partitions, bus events.Bus, objects storage.ObjectStore, logoBucket string, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(dir, partitions, bus, log)
	if objects != nil {
		svc.SetLogoStore(&service.LogoStore{Objects: objects, Bucket: logoBucket})
	}
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "organization"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts organization routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/org")
	public.POST("", ctx.AuthRateLimiter.RateLimit(), m.handler.Create)
	public.GET("/:name", m.handler.Get)

	protected := ctx.Protected.Group("/org")
	protected.PUT("/:name", m.handler.Update)
	protected.DELETE("/:name", m.handler.Delete)
	protected.PUT("/:name/logo", m.handler.UploadLogo)
	protected.GET("/:name/logo", m.handler.GetLogo)
}
