package services

import (
	"context"
	"fmt"

	"holidayplanner/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcomeMessage sends a welcome email using the "welcome" template and the given data.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	return s.send(ctx, "welcome", data.Email, data)
}

// SendExperienceCreated confirms a newly published experience to its organiser.
func (s *emailService) SendExperienceCreated(ctx context.Context, data *domain.ExperienceCreatedEmailData) error {
	if data == nil {
		return fmt.Errorf("experience created email data is nil")
	}
	return s.send(ctx, "experience_created", data.Email, data)
}

func (s *emailService) send(ctx context.Context, templateName, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	return nil
}
