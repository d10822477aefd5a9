// Package handler exposes the organization lifecycle over HTTP.
package handler

import (
	"net/http"

	"orghub_backend/internal/auth/gate"
	"orghub_backend/internal/organization/service"
	"orghub_backend/internal/organization/transport"
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

// Create provisions an organization with its admin account and tenant
// partition. Unauthenticated: this is the self-service signup entry point.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	org, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	httpkit.JSON(c, http.StatusCreated, org)
}

// Get returns the organization view for the name in the path.
func (h *Handler) Get(c *gin.Context) {
	org, err := h.svc.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	httpkit.OK(c, org)
}

// Update applies any subset of {new name, new email, new password}.
// Owner only.
func (h *Handler) Update(c *gin.Context) {
	admin, ok := gate.CurrentAdmin(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req transport.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	org, err := h.svc.Update(c.Request.Context(), c.Param("name"), admin.ID, req)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	httpkit.OK(c, org)
}

// Delete deprovisions the organization. Owner only.
func (h *Handler) Delete(c *gin.Context) {
	admin, ok := gate.CurrentAdmin(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	result, err := h.svc.Delete(c.Request.Context(), c.Param("name"), admin.ID)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	httpkit.OK(c, result)
}

// UploadLogo stores the multipart "file" field as the organization's logo.
// Owner only.
func (h *Handler) UploadLogo(c *gin.Context) {
	admin, ok := gate.CurrentAdmin(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "missing file upload", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "unreadable file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.svc.UploadLogo(
		c.Request.Context(),
		c.Param("name"),
		admin.ID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	httpkit.OK(c, result)
}

// GetLogo returns a presigned download URL for the organization's logo.
func (h *Handler) GetLogo(c *gin.Context) {
	result, err := h.svc.LogoURL(c.Request.Context(), c.Param("name"))
	if err != nil {
		httpkit.Fail(c, err)
		return
	}
	httpkit.OK(c, result)
}
