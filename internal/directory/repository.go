package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Repository is the Postgres-backed Directory.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a Repository on the shared connection pool.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const adminColumns = `id, email, password_hash, organization_name, partition_id, created_at`

func scanAdmin(row pgx.Row) (Admin, error) {
	var a Admin
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.OrganizationName, &a.PartitionID, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	return a, mapPgErr(err)
}

const organizationColumns = `id, organization_name, partition_id, admin_id, admin_email, logo_key, created_at`

func scanOrganization(row pgx.Row) (Organization, error) {
	var o Organization
	err := row.Scan(&o.ID, &o.OrganizationName, &o.PartitionID, &o.AdminID, &o.AdminEmail, &o.LogoKey, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Organization{}, ErrNotFound
	}
	return o, mapPgErr(err)
}

func mapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (r *Repository) FindAdminByEmail(ctx context.Context, email string) (Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx, `
    SELECT `+adminColumns+`
    FROM admins
    WHERE email = $1
  `, email))
}

func (r *Repository) FindAdminByID(ctx context.Context, id uuid.UUID) (Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx, `
    SELECT `+adminColumns+`
    FROM admins
    WHERE id = $1
  `, id))
}

func (r *Repository) InsertAdmin(ctx context.Context, email, passwordHash, organizationName, partitionID string) (Admin, error) {
	return scanAdmin(r.pool.QueryRow(ctx, `
    INSERT INTO admins (email, password_hash, organization_name, partition_id)
    VALUES ($1, $2, $3, $4)
    RETURNING `+adminColumns+`
  `, email, passwordHash, organizationName, partitionID))
}

func (r *Repository) UpdateAdminEmail(ctx context.Context, id uuid.UUID, email string) error {
	return r.execOne(ctx, `
    UPDATE admins SET email = $2 WHERE id = $1
  `, id, email)
}

func (r *Repository) UpdateAdminPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.execOne(ctx, `
    UPDATE admins SET password_hash = $2 WHERE id = $1
  `, id, passwordHash)
}

func (r *Repository) UpdateAdminOrganization(ctx context.Context, id uuid.UUID, organizationName, partitionID string) error {
	return r.execOne(ctx, `
    UPDATE admins SET organization_name = $2, partition_id = $3 WHERE id = $1
  `, id, organizationName, partitionID)
}

func (r *Repository) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, `DELETE FROM admins WHERE id = $1`, id)
}

func (r *Repository) FindOrganizationByName(ctx context.Context, name string) (Organization, error) {
	return scanOrganization(r.pool.QueryRow(ctx, `
    SELECT `+organizationColumns+`
    FROM organizations
    WHERE organization_name = $1
  `, name))
}

func (r *Repository) InsertOrganization(ctx context.Context, name, partitionID string, adminID uuid.UUID, adminEmail string) (Organization, error) {
	return scanOrganization(r.pool.QueryRow(ctx, `
    INSERT INTO organizations (organization_name, partition_id, admin_id, admin_email)
    VALUES ($1, $2, $3, $4)
    RETURNING `+organizationColumns+`
  `, name, partitionID, adminID, adminEmail))
}

func (r *Repository) UpdateOrganizationName(ctx context.Context, id uuid.UUID, name, partitionID string) error {
	return r.execOne(ctx, `
    UPDATE organizations SET organization_name = $2, partition_id = $3 WHERE id = $1
  `, id, name, partitionID)
}

func (r *Repository) UpdateOrganizationAdminEmail(ctx context.Context, id uuid.UUID, adminEmail string) error {
	return r.execOne(ctx, `
    UPDATE organizations SET admin_email = $2 WHERE id = $1
  `, id, adminEmail)
}

func (r *Repository) SetOrganizationLogoKey(ctx context.Context, id uuid.UUID, logoKey string) error {
	return r.execOne(ctx, `
    UPDATE organizations SET logo_key = $2 WHERE id = $1
  `, id, logoKey)
}

func (r *Repository) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, `DELETE FROM organizations WHERE id = $1`, id)
}

func (r *Repository) execOne(ctx context.Context, sql string, args ...interface{}) error {
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return mapPgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Compile-time check that Repository implements Directory
var _ Directory = (*Repository)(nil)
