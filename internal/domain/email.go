package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeMessageEmailData holds data for the welcome email.
type WelcomeMessageEmailData struct {
	Email       string
	FirstName   string
	IsOrganiser bool
}

// ExperienceCreatedEmailData holds data for the confirmation sent to an organiser.
type ExperienceCreatedEmailData struct {
	Email          string
	FirstName      string
	ExperienceName string
	Location       string
	Date           time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendExperienceCreated(ctx context.Context, data *ExperienceCreatedEmailData) error
}
