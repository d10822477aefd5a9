package service

import (
	"context"
	"testing"
	"time"

	"orghub_backend/internal/auth/password"
	"orghub_backend/internal/directory"
	"orghub_backend/platform/apperr"
	"orghub_backend/platform/httpkit"
	"orghub_backend/platform/logger"

	"github.com/google/uuid"
)

// stubDirectory embeds the interface so only the lookups SignIn and
// ResolveAdmin use need real implementations.
type stubDirectory struct {
	directory.Directory
	admin directory.Admin
}

func (s *stubDirectory) FindAdminByEmail(_ context.Context, email string) (directory.Admin, error) {
	if email == s.admin.Email {
		return s.admin, nil
	}
	return directory.Admin{}, directory.ErrNotFound
}

func (s *stubDirectory) FindAdminByID(_ context.Context, id uuid.UUID) (directory.Admin, error) {
	if id == s.admin.ID {
		return s.admin, nil
	}
	return directory.Admin{}, directory.ErrNotFound
}

type testAuthConfig struct{}

func (testAuthConfig) GetJWTSecret() string       { return "test-secret" }
func (testAuthConfig) GetTokenTTL() time.Duration { return time.Hour }

func newTestAuth(t *testing.T) (*Service, directory.Admin) {
	t.Helper()
	hash, err := password.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := directory.Admin{
		ID:               uuid.New(),
		Email:            "a@x.com",
		PasswordHash:     hash,
		OrganizationName: "Acme Corp",
		PartitionID:      "org_acme_corp",
	}
	return New(&stubDirectory{admin: admin}, testAuthConfig{}, logger.New("development")), admin
}

func TestSignInIssuesTokenWithRoutingClaims(t *testing.T) {
	svc, admin := newTestAuth(t)

	token, got, err := svc.SignIn(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if got.ID != admin.ID {
		t.Fatalf("returned admin id = %s, want %s", got.ID, admin.ID)
	}

	claims, err := httpkit.ParseAccessClaims(token, testAuthConfig{})
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != admin.ID.String() {
		t.Fatalf("sub claim = %v, want %s", claims["sub"], admin.ID)
	}
	if claims["partition"] != "org_acme_corp" {
		t.Fatalf("partition claim = %v, want org_acme_corp", claims["partition"])
	}
	if claims["type"] != "access" {
		t.Fatalf("type claim = %v, want access", claims["type"])
	}
}

func TestSignInFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	_, _, errUnknown := svc.SignIn(ctx, "nobody@x.com", "secret1")
	_, _, errWrongPass := svc.SignIn(ctx, "a@x.com", "wrong")

	if apperr.GetKind(errUnknown) != apperr.KindUnauthorized {
		t.Fatalf("unknown email kind = %v, want unauthorized", apperr.GetKind(errUnknown))
	}
	if apperr.GetKind(errWrongPass) != apperr.KindUnauthorized {
		t.Fatalf("wrong password kind = %v, want unauthorized", apperr.GetKind(errWrongPass))
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errUnknown.Error(), errWrongPass.Error())
	}
}

func TestResolveAdminUnknownIDUnauthorized(t *testing.T) {
	svc, admin := newTestAuth(t)
	ctx := context.Background()

	got, err := svc.ResolveAdmin(ctx, admin.ID)
	if err != nil {
		t.Fatalf("ResolveAdmin failed: %v", err)
	}
	if got.Email != admin.Email {
		t.Fatalf("resolved email = %q, want %q", got.Email, admin.Email)
	}

	_, err = svc.ResolveAdmin(ctx, uuid.New())
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("stale id kind = %v, want unauthorized", apperr.GetKind(err))
	}
}
