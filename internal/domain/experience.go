package domain

import (
	"context"
	"time"
)

// Experience is a single-instant event owned by exactly one organiser.
// swagger:model Experience
type Experience struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Organiser   *User     `json:"organiser"`
	Attendees   Attendees `json:"attendees"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewExperience returns a new Experience with no attendees. ID is set by the repository on create.
func NewExperience(name, description string, date time.Time, location string, organiser *User, now time.Time) *Experience {
	return &Experience{
		Name:        name,
		Description: description,
		Date:        date,
		Location:    location,
		Organiser:   organiser,
		Attendees:   Attendees{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// OrganiserID returns the ID of the owning organiser, or 0 when unset.
func (e *Experience) OrganiserID() int64 {
	if e.Organiser == nil {
		return 0
	}
	return e.Organiser.ID
}

// ExperienceInput is the payload accepted by the creation workflow. Date is an RFC 3339 timestamp.
type ExperienceInput struct {
	Name        string
	Description string
	Date        string
	Location    string
}

// ExperienceRepository defines the interface for experience storage.
type ExperienceRepository interface {
	// Create inserts e and sets its ID. Returns ErrConflict when the organiser already
	// owns an experience on the same UTC day.
	Create(ctx context.Context, e *Experience) error
	GetByID(ctx context.Context, id int64) (*Experience, error)
	ListAll(ctx context.Context) ([]*Experience, error)
	ListByOrganiserID(ctx context.Context, organiserID int64) ([]*Experience, error)
	// FindFirstByOrganiserInRange returns the first experience of the organiser dated in
	// [start, end), or nil when there is none.
	FindFirstByOrganiserInRange(ctx context.Context, organiserID int64, start, end time.Time) (*Experience, error)
}

// ExperienceService defines the experience workflows.
type ExperienceService interface {
	ListAll(ctx context.Context) ([]*Experience, error)
	ListForOrganiser(ctx context.Context, organiserID int64, claim Claim) ([]*Experience, error)
	Create(ctx context.Context, input ExperienceInput, organiserID int64) (*Experience, error)
	GetByID(ctx context.Context, id int64) (*Experience, error)
}

// ExperienceCreatedEvent is the message published after an experience is stored.
type ExperienceCreatedEvent struct {
	ExperienceID int64     `json:"experienceId"`
	OrganiserID  int64     `json:"organiserId"`
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ExperiencePublisher publishes experience lifecycle messages to other services.
type ExperiencePublisher interface {
	PublishExperienceCreated(ctx context.Context, evt ExperienceCreatedEvent) error
}
