// Package service orchestrates the organization lifecycle workflows:
// provisioning, rename (with partition migration), and deprovisioning.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orghub_backend/internal/auth/password"
	"orghub_backend/internal/directory"
	"orghub_backend/internal/events"
	"orghub_backend/internal/organization/transport"
	"orghub_backend/internal/tenant"
	"orghub_backend/platform/apperr"
	"orghub_backend/platform/logger"

	"github.com/google/uuid"
)

// Partitions is the slice of the tenant store the workflows need.
type Partitions interface {
	Create(ctx context.Context, partitionID string) error
	Drop(ctx context.Context, partitionID string) error
	Copy(ctx context.Context, fromID, toID string) (int64, error)
}

// Service implements the provisioning, rename, and deprovisioning workflows.
// It holds no in-process locks: uniqueness checks are check-then-act and the
// directory's unique indexes are the backstop for concurrent duplicates.
type Service struct {
	dir        directory.Directory
	partitions Partitions
	bus        events.Bus
	log        *logger.Logger
	logos      *LogoStore
}

func New(dir directory.Directory, partitions Partitions, bus events.Bus, log *logger.Logger) *Service {
	return &Service{dir: dir, partitions: partitions, bus: bus, log: log}
}

// Create provisions an organization: directory records plus an empty tenant
// partition. The admin email is checked before any write so a duplicate email
// never leaves an orphan organization record. The partition is created after
// the admin insert and before the metadata insert, so metadata only ever
// references a partition presumed to exist.
func (s *Service) Create(ctx context.Context, req transport.CreateOrganizationRequest) (transport.OrganizationResponse, error) {
	name := strings.TrimSpace(req.OrganizationName)
	if name == "" {
		return transport.OrganizationResponse{}, errBlankOrgName
	}
	partitionID := tenant.Identifier(name)

	if _, err := s.dir.FindOrganizationByName(ctx, name); err == nil {
		return transport.OrganizationResponse{}, conflictOrgExists(name)
	} else if !errors.Is(err, directory.ErrNotFound) {
		return transport.OrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
	}

	if _, err := s.dir.FindAdminByEmail(ctx, req.Email); err == nil {
		return transport.OrganizationResponse{}, conflictEmailRegistered(req.Email)
	} else if !errors.Is(err, directory.ErrNotFound) {
		return transport.OrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.OrganizationResponse{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	admin, err := s.dir.InsertAdmin(ctx, req.Email, hash, name, partitionID)
	if errors.Is(err, directory.ErrDuplicate) {
		return transport.OrganizationResponse{}, conflictEmailRegistered(req.Email)
	}
	if err != nil {
		return transport.OrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
	}

	if err := s.partitions.Create(ctx, partitionID); err != nil {
		return transport.OrganizationResponse{}, apperr.Unavailable("partition store unavailable", err)
	}

	org, err := s.dir.InsertOrganization(ctx, name, partitionID, admin.ID, admin.Email)
	if errors.Is(err, directory.ErrDuplicate) {
		return transport.OrganizationResponse{}, conflictOrgExists(name)
	}
	if err != nil {
		return transport.OrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
	}

	s.log.Info("organization provisioned",
		"organization", org.OrganizationName, "partition", org.PartitionID)
	s.bus.Publish(ctx, events.OrganizationProvisioned{
		BaseEvent:        events.NewBaseEvent(),
		OrganizationID:   org.ID,
		OrganizationName: org.OrganizationName,
		PartitionID:      org.PartitionID,
		AdminEmail:       org.AdminEmail,
	})

	return toResponse(org), nil
}

// GetByName returns the organization view for the exact trimmed name.
func (s *Service) GetByName(ctx context.Context, name string) (transport.OrganizationResponse, error) {
	org, err := s.findOrganization(ctx, name)
	if err != nil {
		return transport.OrganizationResponse{}, err
	}
	return toResponse(org), nil
}

// Update applies any subset of {new name, new email, new password} to the
// organization owned by adminID. All conflict checks run before any write.
// A name change migrates the tenant partition: the new partition is created
// and fully copied before the old one is dropped, so an interruption mid-copy
// leaves both partitions intact with the directory still pointing at the old
// one.
func (s *Service) Update(ctx context.Context, currentName string, adminID uuid.UUID, req transport.UpdateOrganizationRequest) (transport.OrganizationResponse, error) {
	org, err := s.findOrganization(ctx, currentName)
	if err != nil {
		return transport.OrganizationResponse{}, err
	}
	if org.AdminID != adminID {
		return transport.OrganizationResponse{}, apperr.Forbidden("only the organization admin can update this organization")
	}

	newName := ""
	if req.NewOrganizationName != nil {
		trimmed := strings.TrimSpace(*req.NewOrganizationName)
		if trimmed == "" {
			return transport.OrganizationResponse{}, errBlankOrgName
		}
		if trimmed != org.OrganizationName {
			newName = trimmed
		}
	}
	newEmail := ""
	if req.Email != nil && *req.Email != "" && *req.Email != org.AdminEmail {
		newEmail = *req.Email
	}

	if newName != "" {
		if _, err := s.dir.FindOrganizationByName(ctx, newName); err == nil {
			return transport.OrganizationResponse{}, conflictOrgExists(newName)
		} else if !errors.Is(err, directory.ErrNotFound) {
			return transport.OrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
		}
	}
	if newEmail != "" {
		other, err := s.dir.FindAdminByEmail(ctx, newEmail)
		if err == nil && other.ID != org.AdminID {
			return transport.OrganizationResponse{}, conflictEmailRegistered(newEmail)
		}
		if err != nil && !errors.Is(err, directory.ErrNotFound) {
			return transport.OrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
		}
	}

	if newName != "" {
		if err := s.migratePartition(ctx, org, newName); err != nil {
			return transport.OrganizationResponse{}, err
		}
	}

	if newEmail != "" {
		if err := s.dir.UpdateAdminEmail(ctx, org.AdminID, newEmail); err != nil {
			return transport.OrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
		}
		if err := s.dir.UpdateOrganizationAdminEmail(ctx, org.ID, newEmail); err != nil {
			return transport.OrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
		}
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return transport.OrganizationResponse{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
		}
		if err := s.dir.UpdateAdminPassword(ctx, org.AdminID, hash); err != nil {
			return transport.OrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
		}
	}

	finalName := org.OrganizationName
	if newName != "" {
		finalName = newName
	}
	updated, err := s.findOrganization(ctx, finalName)
	if err != nil {
		return transport.OrganizationResponse{}, err
	}
	return toResponse(updated), nil
}

// migratePartition moves the organization to a new name and partition. Copy
// completes in full before the old partition is dropped; the directory is
// updated last, metadata first, then the admin's denormalized copy.
func (s *Service) migratePartition(ctx context.Context, org directory.Organization, newName string) error {
	newPartitionID := tenant.Identifier(newName)

	var copied int64
	if newPartitionID != org.PartitionID {
		if err := s.partitions.Create(ctx, newPartitionID); err != nil {
			return apperr.Unavailable("partition store unavailable", err)
		}
		var err error
		copied, err = s.partitions.Copy(ctx, org.PartitionID, newPartitionID)
		if err != nil {
			return apperr.Unavailable("partition copy failed", err)
		}
		if err := s.partitions.Drop(ctx, org.PartitionID); err != nil {
			return apperr.Unavailable("partition store unavailable", err)
		}
	}

	if err := s.dir.UpdateOrganizationName(ctx, org.ID, newName, newPartitionID); err != nil {
		return apperr.Unavailable("directory unavailable", err)
	}
	if err := s.dir.UpdateAdminOrganization(ctx, org.AdminID, newName, newPartitionID); err != nil {
		return apperr.Unavailable("directory unavailable", err)
	}

	// Published for every rename. A name whose identifier is unchanged skips
	// the migration but the admin still gets the rename notice.
	s.log.Info("organization renamed",
		"from", org.OrganizationName, "to", newName, "documents_copied", copied)
	s.bus.Publish(ctx, events.OrganizationRenamed{
		BaseEvent:       events.NewBaseEvent(),
		OrganizationID:  org.ID,
		OldName:         org.OrganizationName,
		NewName:         newName,
		OldPartitionID:  org.PartitionID,
		NewPartitionID:  newPartitionID,
		DocumentsCopied: copied,
		AdminEmail:      org.AdminEmail,
	})
	return nil
}

// Delete deprovisions the organization owned by adminID. The partition is
// dropped before the directory cleanup: a crash mid-sequence leaves orphaned
// directory records pointing at a gone partition, which are auditable and
// safely re-deletable, rather than a live partition nothing references.
func (s *Service) Delete(ctx context.Context, name string, adminID uuid.UUID) (transport.DeleteOrganizationResponse, error) {
	org, err := s.findOrganization(ctx, name)
	if err != nil {
		return transport.DeleteOrganizationResponse{}, err
	}
	if org.AdminID != adminID {
		return transport.DeleteOrganizationResponse{}, apperr.Forbidden("only the organization admin can delete this organization")
	}

	if err := s.partitions.Drop(ctx, org.PartitionID); err != nil {
		return transport.DeleteOrganizationResponse{}, apperr.Unavailable("partition store unavailable", err)
	}
	if s.logos != nil && org.LogoKey != nil {
		if err := s.logos.Objects.DeleteObject(ctx, s.logos.Bucket, *org.LogoKey); err != nil {
			s.log.Warn("failed to delete logo during deprovisioning", "key", *org.LogoKey, "error", err)
		}
	}
	if err := s.dir.DeleteOrganization(ctx, org.ID); err != nil {
		return transport.DeleteOrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
	}
	if err := s.dir.DeleteAdmin(ctx, org.AdminID); err != nil {
		return transport.DeleteOrganizationResponse{}, apperr.Unavailable("directory unavailable", err)
	}

	s.log.Info("organization deprovisioned",
		"organization", org.OrganizationName, "partition", org.PartitionID)
	s.bus.Publish(ctx, events.OrganizationDeprovisioned{
		BaseEvent:        events.NewBaseEvent(),
		OrganizationID:   org.ID,
		OrganizationName: org.OrganizationName,
		PartitionID:      org.PartitionID,
		AdminEmail:       org.AdminEmail,
	})

	return transport.DeleteOrganizationResponse{
		Message: fmt.Sprintf("Organization '%s' and all associated data deleted successfully", org.OrganizationName),
	}, nil
}

func (s *Service) findOrganization(ctx context.Context, name string) (directory.Organization, error) {
	org, err := s.dir.FindOrganizationByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, directory.ErrNotFound) {
		return directory.Organization{}, apperr.NotFound(fmt.Sprintf("organization '%s' not found", strings.TrimSpace(name)))
	}
	if err != nil {
		return directory.Organization{}, apperr.Unavailable("directory unavailable", err)
	}
	return org, nil
}

// errBlankOrgName rejects names that are empty after trimming; the DTO
// notblank rule catches these at the boundary, this is the workflow-level
// backstop.
var errBlankOrgName = apperr.Validation("organization name cannot be empty")

func conflictOrgExists(name string) *apperr.Error {
	return apperr.Conflict(fmt.Sprintf("organization '%s' already exists", name))
}

func conflictEmailRegistered(email string) *apperr.Error {
	return apperr.Conflict(fmt.Sprintf("email '%s' is already registered", email))
}

func toResponse(org directory.Organization) transport.OrganizationResponse {
	return transport.OrganizationResponse{
		OrganizationName: org.OrganizationName,
		CollectionName:   org.PartitionID,
		AdminEmail:       org.AdminEmail,
		CreatedAt:        org.CreatedAt,
	}
}
