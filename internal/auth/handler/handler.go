package handler

import (
	"net/http"

	"orghub_backend/internal/auth/gate"
	"orghub_backend/internal/auth/service"
	"orghub_backend/internal/auth/transport"
	"orghub_backend/internal/directory"
	"orghub_backend/platform/httpkit"
	"orghub_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

// Login authenticates an admin and returns a bearer token whose claims carry
// the admin id and partition identifier.
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	token, admin, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}

	httpkit.OK(c, transport.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Admin:       adminView(admin),
	})
}

// Me returns the resolved admin attached to the request by the gate.
func (h *Handler) Me(c *gin.Context) {
	admin, ok := gate.CurrentAdmin(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	httpkit.OK(c, adminView(admin))
}

func adminView(admin directory.Admin) transport.AdminResponse {
	return transport.AdminResponse{
		AdminID:          admin.ID.String(),
		Email:            admin.Email,
		OrganizationName: admin.OrganizationName,
		OrgCollection:    admin.PartitionID,
		CreatedAt:        admin.CreatedAt,
	}
}
