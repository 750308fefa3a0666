package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"holidayplanner/internal/delivery/http/helpers"
	"holidayplanner/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeExperienceService struct {
	listResult      []*domain.Experience
	listErr         error
	byID            *domain.Experience
	byIDErr         error
	created         *domain.Experience
	createErr       error
	lastInput       domain.ExperienceInput
	lastOrganiser   int64
	lastClaim       domain.Claim
	forOrganiser    []*domain.Experience
	forOrganiserErr error
}

func (f *fakeExperienceService) ListAll(_ context.Context) ([]*domain.Experience, error) {
	return f.listResult, f.listErr
}

func (f *fakeExperienceService) ListForOrganiser(_ context.Context, organiserID int64, claim domain.Claim) ([]*domain.Experience, error) {
	f.lastOrganiser, f.lastClaim = organiserID, claim
	return f.forOrganiser, f.forOrganiserErr
}

func (f *fakeExperienceService) Create(_ context.Context, input domain.ExperienceInput, organiserID int64) (*domain.Experience, error) {
	f.lastInput, f.lastOrganiser = input, organiserID
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeExperienceService) GetByID(_ context.Context, _ int64) (*domain.Experience, error) {
	return f.byID, f.byIDErr
}

type fakeUserService struct {
	user       *domain.User
	getErr     error
	loginRes   *domain.AuthenticationResult
	loginErr   error
	signupErr  error
	lastSignup domain.SignupInput
}

func (f *fakeUserService) Login(_ context.Context, _, _ string) (*domain.AuthenticationResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeUserService) Signup(_ context.Context, input domain.SignupInput) (*domain.User, error) {
	f.lastSignup = input
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return &domain.User{ID: 12, FirstName: input.FirstName, LastName: input.LastName, Email: input.Email, IsOrganiser: input.IsOrganiser}, nil
}

func (f *fakeUserService) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return f.user, f.getErr
}

type fakeEmailService struct {
	welcome []*domain.WelcomeMessageEmailData
	created []*domain.ExperienceCreatedEmailData
	err     error
}

func (f *fakeEmailService) SendWelcomeMessage(_ context.Context, data *domain.WelcomeMessageEmailData) error {
	f.welcome = append(f.welcome, data)
	return f.err
}

func (f *fakeEmailService) SendExperienceCreated(_ context.Context, data *domain.ExperienceCreatedEmailData) error {
	f.created = append(f.created, data)
	return f.err
}

type fakePublisher struct {
	events []domain.ExperienceCreatedEvent
	err    error
}

func (f *fakePublisher) PublishExperienceCreated(_ context.Context, evt domain.ExperienceCreatedEvent) error {
	f.events = append(f.events, evt)
	return f.err
}

type fakeTripService struct {
	list    []*domain.Trip
	listErr error
	trip    *domain.Trip
	tripErr error
}

func (f *fakeTripService) ListAll(_ context.Context) ([]*domain.Trip, error) {
	return f.list, f.listErr
}

func (f *fakeTripService) GetByID(_ context.Context, _ int64) (*domain.Trip, error) {
	return f.trip, f.tripErr
}

// decodeEnvelope decodes the response body into an envelope whose data is unmarshalled into data.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if data != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Error
}
