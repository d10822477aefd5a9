package transport

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminResponse is the admin view returned after login; never contains the
// password hash.
type AdminResponse struct {
	AdminID          string    `json:"admin_id"`
	Email            string    `json:"email"`
	OrganizationName string    `json:"organization_name"`
	OrgCollection    string    `json:"org_collection"`
	CreatedAt        time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	Admin       AdminResponse `json:"admin"`
}
