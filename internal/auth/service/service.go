package service

import (
	"context"
	"errors"
	"time"

	"orghub_backend/internal/auth/password"
	"orghub_backend/internal/directory"
	"orghub_backend/platform/apperr"
	"orghub_backend/platform/config"
	"orghub_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

// msgInvalidCredentials is shared by the unknown-email and wrong-password
// paths so a caller cannot tell which one failed.
const msgInvalidCredentials = "invalid email or password"

// Service authenticates admins and issues bearer tokens carrying the
// tenant-routing claims (admin id and partition identifier).
type Service struct {
	dir directory.Directory
	cfg config.AuthServiceConfig
	log *logger.Logger
}

func New(dir directory.Directory, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{dir: dir, cfg: cfg, log: log}
}

// SignIn verifies the credentials and returns a signed token plus the admin
// record. Both failure modes surface as the same Unauthorized error.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (string, directory.Admin, error) {
	admin, err := s.dir.FindAdminByEmail(ctx, email)
	if errors.Is(err, directory.ErrNotFound) {
		s.log.AuthEvent("sign_in", email, false, "unknown email")
		return "", directory.Admin{}, apperr.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return "", directory.Admin{}, apperr.Unavailable("directory unavailable", err)
	}

	if err := password.Compare(admin.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("sign_in", email, false, "wrong password")
		return "", directory.Admin{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.signJWT(admin.ID, admin.PartitionID)
	if err != nil {
		return "", directory.Admin{}, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return token, admin, nil
}

// ResolveAdmin maps a verified token's admin id back to the directory record.
// An id that no longer resolves is an authentication failure, not a 404:
// the token outlived its admin.
func (s *Service) ResolveAdmin(ctx context.Context, id uuid.UUID) (directory.Admin, error) {
	admin, err := s.dir.FindAdminByID(ctx, id)
	if errors.Is(err, directory.ErrNotFound) {
		return directory.Admin{}, apperr.Unauthorized("admin not found")
	}
	if err != nil {
		return directory.Admin{}, apperr.Unavailable("directory unavailable", err)
	}
	return admin, nil
}

func (s *Service) signJWT(adminID uuid.UUID, partitionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       adminID.String(),
		"partition": partitionID,
		"type":      accessTokenType,
		"exp":       now.Add(s.cfg.GetTokenTTL()).Unix(),
		"iat":       now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTSecret()))
}
