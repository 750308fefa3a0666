package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"holidayplanner/internal/domain"
)

type tripService struct {
	tripRepo       domain.TripRepository
	contextTimeout time.Duration
}

func NewTripService(tripRepo domain.TripRepository, timeout time.Duration) domain.TripService {
	return &tripService{tripRepo: tripRepo, contextTimeout: timeout}
}

func (s *tripService) ListAll(ctx context.Context) ([]*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trips, err := s.tripRepo.ListAll(ctx)
	if err != nil {
		return nil, domain.Unavailable("list trips", err)
	}
	if trips == nil {
		trips = []*domain.Trip{}
	}
	return trips, nil
}

func (s *tripService) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id <= 0 {
		return nil, domain.InvalidInput("id is required")
	}
	trip, err := s.tripRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(fmt.Sprintf("Trip with id: %d does not exist.", id))
		}
		return nil, domain.Unavailable("get trip", err)
	}
	return trip, nil
}
