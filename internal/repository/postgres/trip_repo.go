package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"holidayplanner/internal/domain"
)

// errInvalidTripRow marks a stored trip that fails domain validation.
var errInvalidTripRow = errors.New("stored trip is invalid")

const tripSelect = `
		SELECT t.id, t.destination, t.description, t.start_date, t.end_date, t.created_at, t.updated_at,
			` + userColumns + `
		FROM trips t
		INNER JOIN users u ON u.id = t.organiser_id
`

type tripRepository struct {
	DB *sql.DB
}

func NewTripRepository(db *sql.DB) domain.TripRepository {
	return &tripRepository{DB: db}
}

func (r *tripRepository) ListAll(ctx context.Context) ([]*domain.Trip, error) {
	rows, err := r.DB.QueryContext(ctx, tripSelect+`ORDER BY t.start_date, t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	trips := make([]*domain.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachAttendees(ctx, trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	t, err := scanTrip(r.DB.QueryRowContext(ctx, tripSelect+`WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachAttendees(ctx, []*domain.Trip{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tripRepository) attachAttendees(ctx context.Context, trips []*domain.Trip) error {
	ids := make([]int64, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}
	byID, err := loadAttendees(ctx, r.DB, "trip_attendees", "trip_id", ids)
	if err != nil {
		return err
	}
	for _, t := range trips {
		if a, ok := byID[t.ID]; ok {
			t.Attendees = a
		}
	}
	return nil
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	t := &domain.Trip{Organiser: &domain.User{}, Attendees: domain.Attendees{}}
	o := t.Organiser
	err := row.Scan(
		&t.ID, &t.Destination, &t.Description, &t.StartDate, &t.EndDate, &t.CreatedAt, &t.UpdatedAt,
		&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.IsOrganiser, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	// %v keeps the validation kind out of the chain: a bad row is a server fault.
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: trip %d: %v", errInvalidTripRow, t.ID, err)
	}
	return t, nil
}
