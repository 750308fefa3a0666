package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"holidayplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, html, text})
	return nil
}

type fakeRenderer struct {
	lastTemplate string
	lastData     any
	err          error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	f.lastTemplate = name
	f.lastData = data
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject " + name, "<p>" + name + "</p>", name, nil
}

func TestEmailService_SendExperienceCreated(t *testing.T) {
	ctx := context.Background()
	data := &domain.ExperienceCreatedEmailData{
		Email:          "pieter@ucll.be",
		FirstName:      "Pieter",
		ExperienceName: "Hike",
		Location:       "Alpen",
		Date:           time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC),
	}

	t.Run("renders and sends", func(t *testing.T) {
		mailer := &fakeMailer{}
		renderer := &fakeRenderer{}
		svc := NewEmailService(mailer, renderer)

		require.NoError(t, svc.SendExperienceCreated(ctx, data))
		assert.Equal(t, "experience_created", renderer.lastTemplate)
		assert.Same(t, data, renderer.lastData)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "pieter@ucll.be", mailer.sent[0].to)
		assert.Equal(t, "subject experience_created", mailer.sent[0].subject)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{})
		require.Error(t, svc.SendExperienceCreated(ctx, nil))
	})

	t.Run("render error", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeRenderer{err: errors.New("bad template")})

		err := svc.SendExperienceCreated(ctx, data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "render experience_created")
		assert.Empty(t, mailer.sent)
	})

	t.Run("mailer error", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{err: errors.New("ses down")}, &fakeRenderer{})

		err := svc.SendExperienceCreated(ctx, data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ses down")
	})
}

func TestEmailService_SendWelcomeMessage(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer)

	err := svc.SendWelcomeMessage(context.Background(), &domain.WelcomeMessageEmailData{Email: "els@ucll.be", FirstName: "Els"})
	require.NoError(t, err)
	assert.Equal(t, "welcome", renderer.lastTemplate)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "els@ucll.be", mailer.sent[0].to)

	require.Error(t, svc.SendWelcomeMessage(context.Background(), nil))
}
