// Package gate is the authorization gate in front of mutating routes: it
// resolves a verified bearer token to a live Admin record and attaches that
// record to the request context. Requests whose token does not resolve never
// reach a workflow.
package gate

import (
	"context"

	"orghub_backend/internal/directory"
	"orghub_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextAdminKey is the gin context key for the resolved Admin record.
const contextAdminKey = "currentAdmin"

// AdminResolver resolves an admin id from token claims to a directory record.
type AdminResolver interface {
	ResolveAdmin(ctx context.Context, id uuid.UUID) (directory.Admin, error)
}

// RequireAdmin returns middleware that runs after httpkit.AuthRequired and
// loads the Admin record the token's claims point at. A token whose admin id
// is no longer present in the directory is rejected as unauthenticated.
func RequireAdmin(resolver AdminResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := httpkit.MustGetIdentity(c)
		if id == nil {
			return
		}

		admin, err := resolver.ResolveAdmin(c.Request.Context(), id.AdminID())
		if err != nil {
			httpkit.Fail(c, err)
			c.Abort()
			return
		}

		c.Set(contextAdminKey, admin)
		c.Next()
	}
}

// CurrentAdmin extracts the Admin record attached by RequireAdmin.
func CurrentAdmin(c *gin.Context) (directory.Admin, bool) {
	value, ok := c.Get(contextAdminKey)
	if !ok {
		return directory.Admin{}, false
	}
	admin, ok := value.(directory.Admin)
	return admin, ok
}
