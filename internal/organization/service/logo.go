package service

import (
	"context"
	"io"

	"orghub_backend/internal/organization/transport"
	"orghub_backend/internal/storage"
	"orghub_backend/platform/apperr"

	"github.com/google/uuid"
)

// LogoStore is the object storage slice used for organization logos. It is
// nil when MinIO is not configured; logo endpoints then answer Unavailable.
type LogoStore struct {
	Objects storage.ObjectStore
	Bucket  string
}

// SetLogoStore wires logo storage into the service after construction.
func (s *Service) SetLogoStore(store *LogoStore) {
	s.logos = store
}

// UploadLogo stores a logo for the organization and records its object key.
// Owner only; a previously stored logo is removed best-effort.
func (s *Service) UploadLogo(ctx context.Context, name string, adminID uuid.UUID, fileName, contentType string, r io.Reader, size int64) (transport.LogoUploadResponse, error) {
	if s.logos == nil {
		return transport.LogoUploadResponse{}, apperr.Unavailable("logo storage is not configured", nil)
	}

	org, err := s.findOrganization(ctx, name)
	if err != nil {
		return transport.LogoUploadResponse{}, err
	}
	if org.AdminID != adminID {
		return transport.LogoUploadResponse{}, apperr.Forbidden("only the organization admin can update this organization")
	}

	if err := s.logos.Objects.ValidateContentType(contentType); err != nil {
		return transport.LogoUploadResponse{}, apperr.BadRequest(err.Error())
	}
	if err := s.logos.Objects.ValidateFileSize(size); err != nil {
		return transport.LogoUploadResponse{}, apperr.BadRequest(err.Error())
	}

	key, err := s.logos.Objects.UploadFile(ctx, s.logos.Bucket, org.PartitionID, fileName, contentType, r, size)
	if err != nil {
		return transport.LogoUploadResponse{}, apperr.Unavailable("logo storage unavailable", err)
	}

	if org.LogoKey != nil {
		if err := s.logos.Objects.DeleteObject(ctx, s.logos.Bucket, *org.LogoKey); err != nil {
			s.log.Warn("failed to delete previous logo", "key", *org.LogoKey, "error", err)
		}
	}

	if err := s.dir.SetOrganizationLogoKey(ctx, org.ID, key); err != nil {
		return transport.LogoUploadResponse{}, apperr.Unavailable("directory unavailable", err)
	}

	s.log.Info("organization logo stored", "organization", org.OrganizationName, "key", key)
	return transport.LogoUploadResponse{LogoKey: key}, nil
}

// LogoURL returns a presigned download URL for the organization's logo.
func (s *Service) LogoURL(ctx context.Context, name string) (transport.LogoDownloadResponse, error) {
	if s.logos == nil {
		return transport.LogoDownloadResponse{}, apperr.Unavailable("logo storage is not configured", nil)
	}

	org, err := s.findOrganization(ctx, name)
	if err != nil {
		return transport.LogoDownloadResponse{}, err
	}
	if org.LogoKey == nil {
		return transport.LogoDownloadResponse{}, apperr.NotFound("organization has no logo")
	}

	presigned, err := s.logos.Objects.GenerateDownloadURL(ctx, s.logos.Bucket, *org.LogoKey)
	if err != nil {
		return transport.LogoDownloadResponse{}, apperr.Unavailable("logo storage unavailable", err)
	}
	return transport.LogoDownloadResponse{URL: presigned.URL}, nil
}
