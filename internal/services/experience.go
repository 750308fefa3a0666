package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"holidayplanner/internal/domain"
)

// Layouts accepted for ExperienceInput.Date, tried in order.
var experienceDateLayouts = []string{time.RFC3339Nano, "2006-01-02"}

type experienceService struct {
	experienceRepo domain.ExperienceRepository
	userRepo       domain.UserRepository
	conflicts      *ConflictChecker
	guard          *IdentityGuard
	contextTimeout time.Duration
	now            func() time.Time
}

func NewExperienceService(experienceRepo domain.ExperienceRepository, userRepo domain.UserRepository, timeout time.Duration) domain.ExperienceService {
	return &experienceService{
		experienceRepo: experienceRepo,
		userRepo:       userRepo,
		conflicts:      NewConflictChecker(experienceRepo),
		guard:          NewIdentityGuard(userRepo),
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *experienceService) ListAll(ctx context.Context) ([]*domain.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	experiences, err := s.experienceRepo.ListAll(ctx)
	if err != nil {
		return nil, domain.Unavailable("list experiences", err)
	}
	if experiences == nil {
		experiences = []*domain.Experience{}
	}
	return experiences, nil
}

func (s *experienceService) ListForOrganiser(ctx context.Context, organiserID int64, claim domain.Claim) ([]*domain.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.guard.AuthorizeOrganiserView(ctx, claim, organiserID); err != nil {
		return nil, err
	}
	experiences, err := s.experienceRepo.ListByOrganiserID(ctx, organiserID)
	if err != nil {
		return nil, domain.Unavailable("list experiences by organiser", err)
	}
	if experiences == nil {
		experiences = []*domain.Experience{}
	}
	return experiences, nil
}

// Create validates input, checks the organiser role and same-day conflicts, and only
// then stores the experience.
func (s *experienceService) Create(ctx context.Context, input domain.ExperienceInput, organiserID int64) (*domain.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name := strings.TrimSpace(input.Name)
	rawDate := strings.TrimSpace(input.Date)
	location := strings.TrimSpace(input.Location)
	switch {
	case name == "":
		return nil, domain.InvalidInput("name is required")
	case rawDate == "":
		return nil, domain.InvalidInput("date is required")
	case location == "":
		return nil, domain.InvalidInput("location is required")
	case organiserID <= 0:
		return nil, domain.InvalidInput("organiserId is required")
	}

	organiser, err := s.userRepo.GetByID(ctx, organiserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(fmt.Sprintf("User with id: %d does not exist.", organiserID))
		}
		return nil, domain.Unavailable("find user by id", err)
	}
	if !organiser.IsOrganiser {
		return nil, domain.Forbidden("User must have organiser role to organise events")
	}

	date, err := parseExperienceDate(rawDate)
	if err != nil {
		return nil, err
	}

	conflict, err := s.conflicts.HasConflict(ctx, organiserID, date)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, errSameDayConflict()
	}

	experience := domain.NewExperience(name, input.Description, date, location, organiser, s.now())
	if err := s.experienceRepo.Create(ctx, experience); err != nil {
		// lost the race against a concurrent create for the same day
		if errors.Is(err, domain.ErrConflict) {
			return nil, errSameDayConflict()
		}
		return nil, domain.Unavailable("create experience", err)
	}
	return experience, nil
}

func (s *experienceService) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id <= 0 {
		return nil, domain.InvalidInput("id is required")
	}
	experience, err := s.experienceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(fmt.Sprintf("Event with id: %d does not exist.", id))
		}
		return nil, domain.Unavailable("get experience", err)
	}
	return experience, nil
}

func errSameDayConflict() error {
	return domain.Conflict("Organiser already has an experience on this date.")
}

func parseExperienceDate(raw string) (time.Time, error) {
	for _, layout := range experienceDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			if t.IsZero() {
				return time.Time{}, domain.InvalidInput("date is not a valid instant")
			}
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.InvalidInput(fmt.Sprintf("date %q is not a valid RFC 3339 timestamp", raw))
}
