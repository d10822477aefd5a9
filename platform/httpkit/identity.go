// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated admin's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access caller information without depending on Gin.
type Identity interface {
	// AdminID returns the authenticated admin's ID.
	AdminID() uuid.UUID
	// PartitionID returns the tenant partition identifier carried in the token.
	PartitionID() string
	// IsAuthenticated returns true if the caller is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	adminID       uuid.UUID
	partitionID   string
	authenticated bool
}

func (i *identity) AdminID() uuid.UUID {
	return i.adminID
}

func (i *identity) PartitionID() string {
	return i.partitionID
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if admin info is not present.
func GetIdentity(c *gin.Context) Identity {
	adminID, adminOK := c.Get(ContextAdminIDKey)
	partition, partitionOK := c.Get(ContextPartitionKey)

	if !adminOK {
		return &identity{authenticated: false}
	}

	aid, ok := adminID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	var partitionID string
	if partitionOK {
		partitionID, _ = partition.(string)
	}

	return &identity{
		adminID:       aid,
		partitionID:   partitionID,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the caller is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
