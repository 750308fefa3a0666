package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"holidayplanner/internal/domain"
)

// organiserDayConstraint is the unique index over (organiser_id, UTC day of date).
const organiserDayConstraint = "experiences_organiser_day_key"

const experienceSelect = `
		SELECT e.id, e.name, e.description, e.date, e.location, e.created_at, e.updated_at,
			` + userColumns + `
		FROM experiences e
		INNER JOIN users u ON u.id = e.organiser_id
`

type experienceRepository struct {
	DB *sql.DB
}

func NewExperienceRepository(db *sql.DB) domain.ExperienceRepository {
	return &experienceRepository{DB: db}
}

func (r *experienceRepository) Create(ctx context.Context, e *domain.Experience) error {
	query := `
		INSERT INTO experiences (name, description, date, location, organiser_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, e.Name, e.Description, e.Date, e.Location, e.OrganiserID(), e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if isUniqueViolation(err, organiserDayConstraint) {
		return domain.ErrConflict
	}
	return err
}

func (r *experienceRepository) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	query := experienceSelect + `WHERE e.id = $1`
	e, err := scanExperience(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachAttendees(ctx, []*domain.Experience{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *experienceRepository) ListAll(ctx context.Context) ([]*domain.Experience, error) {
	query := experienceSelect + `ORDER BY e.date, e.id`
	return r.list(ctx, query)
}

func (r *experienceRepository) ListByOrganiserID(ctx context.Context, organiserID int64) ([]*domain.Experience, error) {
	query := experienceSelect + `WHERE e.organiser_id = $1 ORDER BY e.date, e.id`
	return r.list(ctx, query, organiserID)
}

// FindFirstByOrganiserInRange does not load attendees.
func (r *experienceRepository) FindFirstByOrganiserInRange(ctx context.Context, organiserID int64, start, end time.Time) (*domain.Experience, error) {
	query := experienceSelect + `WHERE e.organiser_id = $1 AND e.date >= $2 AND e.date < $3
		ORDER BY e.date
		LIMIT 1`
	e, err := scanExperience(r.DB.QueryRowContext(ctx, query, organiserID, start, end))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *experienceRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Experience, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	experiences := make([]*domain.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachAttendees(ctx, experiences); err != nil {
		return nil, err
	}
	return experiences, nil
}

func (r *experienceRepository) attachAttendees(ctx context.Context, experiences []*domain.Experience) error {
	ids := make([]int64, len(experiences))
	for i, e := range experiences {
		ids[i] = e.ID
	}
	byID, err := loadAttendees(ctx, r.DB, "experience_attendees", "experience_id", ids)
	if err != nil {
		return err
	}
	for _, e := range experiences {
		if a, ok := byID[e.ID]; ok {
			e.Attendees = a
		}
	}
	return nil
}

func scanExperience(row rowScanner) (*domain.Experience, error) {
	e := &domain.Experience{Organiser: &domain.User{}, Attendees: domain.Attendees{}}
	o := e.Organiser
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Date, &e.Location, &e.CreatedAt, &e.UpdatedAt,
		&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.IsOrganiser, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Date = e.Date.UTC()
	return e, nil
}
