// Package tenant models the per-organization data partition: the derivation
// of partition identifiers from organization names, and the store that
// creates, copies, and destroys partitions.
package tenant

import "strings"

// Namespace prefix for all partition identifiers.
const partitionPrefix = "org_"

// fallbackSlug is used when a name contains no alphanumeric characters at all.
const fallbackSlug = "default"

// Identifier maps a human-readable organization name to its canonical
// partition identifier: lowercase, trimmed, with every run of characters
// outside [a-z0-9] collapsed to a single underscore, namespaced with "org_".
// It is total (any input yields a valid identifier) and idempotent, so an
// identifier fed back in comes out unchanged.
func Identifier(orgName string) string {
	name := strings.ToLower(strings.TrimSpace(orgName))

	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteByte(ch)
			pendingSep = false
		} else {
			pendingSep = true
		}
	}

	slug := b.String()
	if slug == "" {
		slug = fallbackSlug
	}
	if !strings.HasPrefix(slug, partitionPrefix) {
		slug = partitionPrefix + slug
	}
	// Postgres identifier limit.
	if len(slug) > 63 {
		slug = strings.TrimRight(slug[:63], "_")
	}
	return slug
}

// ValidIdentifier reports whether s is a well-formed partition identifier.
// The store refuses to address partitions by anything else, since identifiers
// are spliced into DDL.
func ValidIdentifier(s string) bool {
	if !strings.HasPrefix(s, partitionPrefix) || len(s) > 63 {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_' {
			continue
		}
		return false
	}
	return true
}
