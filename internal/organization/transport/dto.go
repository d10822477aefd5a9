// Package transport defines request/response DTOs for the organization module.
package transport

import "time"

// CreateOrganizationRequest is the self-service signup payload. It creates the
// organization, its admin account, and its tenant partition in one call.
type CreateOrganizationRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,notblank,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=6"`
}

// UpdateOrganizationRequest carries any subset of the mutable organization
// fields. A new organization name triggers the partition migration.
type UpdateOrganizationRequest struct {
	NewOrganizationName *string `json:"new_organization_name,omitempty" validate:"omitempty,notblank,max=100"`
	Email               *string `json:"email,omitempty" validate:"omitempty,email"`
	Password            *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// OrganizationResponse is the public organization view. It never carries the
// password hash.
type OrganizationResponse struct {
	OrganizationName string    `json:"organization_name"`
	CollectionName   string    `json:"collection_name"`
	AdminEmail       string    `json:"admin_email"`
	CreatedAt        time.Time `json:"created_at"`
}

// DeleteOrganizationResponse confirms a completed deprovisioning.
type DeleteOrganizationResponse struct {
	Message string `json:"message"`
}

// LogoUploadResponse confirms a stored organization logo.
type LogoUploadResponse struct {
	LogoKey string `json:"logo_key"`
}

// LogoDownloadResponse carries a time-limited download URL for the logo.
type LogoDownloadResponse struct {
	URL string `json:"url"`
}
