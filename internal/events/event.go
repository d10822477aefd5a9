// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"orghub_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Organization Lifecycle Events
// =============================================================================

// OrganizationProvisioned is published after an organization and its admin
// account have been created and the tenant partition exists.
type OrganizationProvisioned struct {
	BaseEvent
	OrganizationID   uuid.UUID `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	PartitionID      string    `json:"partition_id"`
	AdminEmail       string    `json:"admin_email"`
}

func (e OrganizationProvisioned) EventName() string { return "organization.provisioned" }

// OrganizationRenamed is published after a rename completed, including the
// partition migration.
type OrganizationRenamed struct {
	BaseEvent
	OrganizationID  uuid.UUID `json:"organization_id"`
	OldName         string    `json:"old_name"`
	NewName         string    `json:"new_name"`
	OldPartitionID  string    `json:"old_partition_id"`
	NewPartitionID  string    `json:"new_partition_id"`
	DocumentsCopied int64     `json:"documents_copied"`
	AdminEmail      string    `json:"admin_email"`
}

func (e OrganizationRenamed) EventName() string { return "organization.renamed" }

// OrganizationDeprovisioned is published after an organization, its admin
// account, and its tenant partition have been removed.
type OrganizationDeprovisioned struct {
	BaseEvent
	OrganizationID   uuid.UUID `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	PartitionID      string    `json:"partition_id"`
	AdminEmail       string    `json:"admin_email"`
}

func (e OrganizationDeprovisioned) EventName() string { return "organization.deprovisioned" }
