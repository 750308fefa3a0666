package services

import (
	"context"
	"time"

	"holidayplanner/internal/domain"
)

// ConflictChecker detects whether an organiser already has an experience on a UTC day.
type ConflictChecker struct {
	experienceRepo domain.ExperienceRepository
}

func NewConflictChecker(experienceRepo domain.ExperienceRepository) *ConflictChecker {
	return &ConflictChecker{experienceRepo: experienceRepo}
}

// HasConflict reports whether organiserID owns an experience dated on the same UTC
// calendar day as at. The time of day is ignored.
func (c *ConflictChecker) HasConflict(ctx context.Context, organiserID int64, at time.Time) (bool, error) {
	window, err := domain.DayWindowOf(at)
	if err != nil {
		return false, err
	}
	existing, err := c.experienceRepo.FindFirstByOrganiserInRange(ctx, organiserID, window.Start, window.End)
	if err != nil {
		return false, domain.Unavailable("find experience by organiser and day", err)
	}
	return existing != nil, nil
}
