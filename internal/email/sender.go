// Package email delivers lifecycle notification emails to organization
// admins. Delivery is optional: when SMTP is not configured the NoopSender is
// wired instead and sends succeed silently.
package email

import "context"

// Sender delivers organization lifecycle emails.
type Sender interface {
	SendWelcomeEmail(ctx context.Context, toEmail, organizationName string) error
	SendOrganizationRenamedEmail(ctx context.Context, toEmail, oldName, newName string) error
	SendOrganizationDeletedEmail(ctx context.Context, toEmail, organizationName string) error
}

// NoopSender satisfies Sender without delivering anything.
type NoopSender struct{}

func (NoopSender) SendWelcomeEmail(ctx context.Context, toEmail, organizationName string) error {
	return nil
}

func (NoopSender) SendOrganizationRenamedEmail(ctx context.Context, toEmail, oldName, newName string) error {
	return nil
}

func (NoopSender) SendOrganizationDeletedEmail(ctx context.Context, toEmail, organizationName string) error {
	return nil
}
