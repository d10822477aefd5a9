package directory

import (
	"context"

	"orghub_backend/platform/cache"

	"github.com/google/uuid"
)

// CachedDirectory is a read-through cache over a Directory. Only the
// metadata-by-name lookup is cached; every mutation to an organization
// invalidates its entries so readers never see a renamed or deleted tenant.
// Cache failures degrade to the inner directory, never to an error.
type CachedDirectory struct {
	Directory
	cache *cache.Cache
}

// WithCache wraps dir with a redis read-through cache. A nil cache returns
// dir unchanged.
func WithCache(dir Directory, c *cache.Cache) Directory {
	if c == nil {
		return dir
	}
	return &CachedDirectory{Directory: dir, cache: c}
}

func nameKey(name string) string { return "org:name:" + name }
func idKey(id uuid.UUID) string  { return "org:id:" + id.String() }

func (d *CachedDirectory) FindOrganizationByName(ctx context.Context, name string) (Organization, error) {
	var cached Organization
	if err := d.cache.GetJSON(ctx, nameKey(name), &cached); err == nil {
		return cached, nil
	}

	org, err := d.Directory.FindOrganizationByName(ctx, name)
	if err != nil {
		return Organization{}, err
	}

	_ = d.cache.SetJSON(ctx, nameKey(org.OrganizationName), org)
	_ = d.cache.SetJSON(ctx, idKey(org.ID), org.OrganizationName)
	return org, nil
}

// invalidate drops the cached entries for an organization id, resolving the
// cached name through the id index when present.
func (d *CachedDirectory) invalidate(ctx context.Context, id uuid.UUID) {
	keys := []string{idKey(id)}
	var name string
	if err := d.cache.GetJSON(ctx, idKey(id), &name); err == nil {
		keys = append(keys, nameKey(name))
	}
	_ = d.cache.Delete(ctx, keys...)
}

func (d *CachedDirectory) UpdateOrganizationName(ctx context.Context, id uuid.UUID, name, partitionID string) error {
	if err := d.Directory.UpdateOrganizationName(ctx, id, name, partitionID); err != nil {
		return err
	}
	d.invalidate(ctx, id)
	// The new name may have been cached as a miss by a concurrent reader.
	_ = d.cache.Delete(ctx, nameKey(name))
	return nil
}

func (d *CachedDirectory) UpdateOrganizationAdminEmail(ctx context.Context, id uuid.UUID, adminEmail string) error {
	if err := d.Directory.UpdateOrganizationAdminEmail(ctx, id, adminEmail); err != nil {
		return err
	}
	d.invalidate(ctx, id)
	return nil
}

func (d *CachedDirectory) SetOrganizationLogoKey(ctx context.Context, id uuid.UUID, logoKey string) error {
	if err := d.Directory.SetOrganizationLogoKey(ctx, id, logoKey); err != nil {
		return err
	}
	d.invalidate(ctx, id)
	return nil
}

func (d *CachedDirectory) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	if err := d.Directory.DeleteOrganization(ctx, id); err != nil {
		return err
	}
	d.invalidate(ctx, id)
	return nil
}
