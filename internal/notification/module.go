// Package notification sends admin-facing emails in response to organization
// lifecycle events. Subscribing here inverts the dependency: the organization
// workflows never know about email providers or templates.
package notification

import (
	"context"
	"fmt"

	"orghub_backend/internal/email"
	"orghub_backend/internal/events"
	"orghub_backend/platform/logger"
)

// Module wires lifecycle event handlers to the email sender.
type Module struct {
	sender email.Sender
	log    *logger.Logger
}

// NewModule creates the notification module and subscribes its handlers on
// the bus. Handlers run asynchronously; a failed email never fails the
// workflow that triggered it.
func NewModule(bus events.Bus, sender email.Sender, log *logger.Logger) *Module {
	m := &Module{sender: sender, log: log}

	bus.Subscribe(events.OrganizationProvisioned{}.EventName(), events.HandlerFunc(m.onProvisioned))
	bus.Subscribe(events.OrganizationRenamed{}.EventName(), events.HandlerFunc(m.onRenamed))
	bus.Subscribe(events.OrganizationDeprovisioned{}.EventName(), events.HandlerFunc(m.onDeprovisioned))

	return m
}

func (m *Module) onProvisioned(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.OrganizationProvisioned)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}

	m.log.Info("sending welcome email",
		"organization", evt.OrganizationName, "to", evt.AdminEmail)
	return m.sender.SendWelcomeEmail(ctx, evt.AdminEmail, evt.OrganizationName)
}

func (m *Module) onRenamed(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.OrganizationRenamed)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}

	m.log.Info("sending rename notice",
		"from", evt.OldName, "to", evt.NewName, "recipient", evt.AdminEmail)
	return m.sender.SendOrganizationRenamedEmail(ctx, evt.AdminEmail, evt.OldName, evt.NewName)
}

func (m *Module) onDeprovisioned(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.OrganizationDeprovisioned)
	if !ok {
		return fmt.Errorf("unexpected event type %T", e)
	}

	m.log.Info("sending deletion notice",
		"organization", evt.OrganizationName, "to", evt.AdminEmail)
	return m.sender.SendOrganizationDeletedEmail(ctx, evt.AdminEmail, evt.OrganizationName)
}
