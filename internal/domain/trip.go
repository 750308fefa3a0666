package domain

import (
	"context"
	"time"
)

// Trip is a date-ranged holiday trip.
// swagger:model Trip
type Trip struct {
	ID          int64     `json:"id"`
	Destination string    `json:"destination"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Organiser   *User     `json:"organiser"`
	Attendees   Attendees `json:"attendees"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTrip validates the date range and organiser role and returns a Trip without attendees.
func NewTrip(destination, description string, start, end time.Time, organiser *User, now time.Time) (*Trip, error) {
	t := &Trip{
		Destination: destination,
		Description: description,
		StartDate:   start,
		EndDate:     end,
		Organiser:   organiser,
		Attendees:   Attendees{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that the trip ends after it starts and is run by an organiser.
func (t *Trip) Validate() error {
	if !t.EndDate.After(t.StartDate) {
		return InvalidInput("End date must be after start date")
	}
	if t.Organiser == nil || !t.Organiser.IsOrganiser {
		return Forbidden("Trip organiser must be an organiser")
	}
	return nil
}

// TripRepository defines the interface for trip storage.
type TripRepository interface {
	ListAll(ctx context.Context) ([]*Trip, error)
	GetByID(ctx context.Context, id int64) (*Trip, error)
}

// TripService defines read access to trips.
type TripService interface {
	ListAll(ctx context.Context) ([]*Trip, error)
	GetByID(ctx context.Context, id int64) (*Trip, error)
}
