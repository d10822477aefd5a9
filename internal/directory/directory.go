// Package directory holds the two global tenant records, the Admin and the
// organization metadata, and the uniqueness invariants between them. It is
// shared by the auth and organization modules.
package directory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert trips a uniqueness constraint.
// Uniqueness checks in the workflows are check-then-act; the database index
// is the backstop for the race two concurrent requests can win together.
var ErrDuplicate = errors.New("duplicate record")

// Admin is the single authenticated identity owning one organization.
// OrganizationName and PartitionID are denormalized copies of the
// organization metadata, updated in the same workflow step that updates the
// metadata; the metadata record stays the source of truth.
type Admin struct {
	ID               uuid.UUID
	Email            string
	PasswordHash     string
	OrganizationName string
	PartitionID      string
	CreatedAt        time.Time
}

// Organization is the directory's record of a tenant.
type Organization struct {
	ID               uuid.UUID
	OrganizationName string
	PartitionID      string
	AdminID          uuid.UUID
	AdminEmail       string
	LogoKey          *string
	CreatedAt        time.Time
}

// Directory is the read/write surface over the Admin and Organization
// records. Name lookups are exact matches on the trimmed value; callers trim
// before calling.
type Directory interface {
	FindAdminByEmail(ctx context.Context, email string) (Admin, error)
	FindAdminByID(ctx context.Context, id uuid.UUID) (Admin, error)
	InsertAdmin(ctx context.Context, email, passwordHash, organizationName, partitionID string) (Admin, error)
	UpdateAdminEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdateAdminPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateAdminOrganization(ctx context.Context, id uuid.UUID, organizationName, partitionID string) error
	DeleteAdmin(ctx context.Context, id uuid.UUID) error

	FindOrganizationByName(ctx context.Context, name string) (Organization, error)
	InsertOrganization(ctx context.Context, name, partitionID string, adminID uuid.UUID, adminEmail string) (Organization, error)
	UpdateOrganizationName(ctx context.Context, id uuid.UUID, name, partitionID string) error
	UpdateOrganizationAdminEmail(ctx context.Context, id uuid.UUID, adminEmail string) error
	SetOrganizationLogoKey(ctx context.Context, id uuid.UUID, logoKey string) error
	DeleteOrganization(ctx context.Context, id uuid.UUID) error
}
