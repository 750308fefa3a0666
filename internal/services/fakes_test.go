package services

import (
	"context"
	"time"

	"holidayplanner/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID        map[int64]*domain.User
	nextID      int64
	err         error // if set, lookups return this error
	createErr   error
	getByIDCall int
	emailCalls  []string
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[int64]*domain.User), nextID: 100}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	f.getByIDCall++
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.emailCalls = append(f.emailCalls, email)
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeExperienceRepo is an in-memory ExperienceRepository for tests. It keeps insertion order.
type fakeExperienceRepo struct {
	items       []*domain.Experience
	nextID      int64
	err         error // if set, reads return this error
	createErr   error
	createCalls int
	rangeCalls  int
}

func newFakeExperienceRepo() *fakeExperienceRepo {
	return &fakeExperienceRepo{nextID: 1}
}

func (f *fakeExperienceRepo) Create(ctx context.Context, e *domain.Experience) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = f.nextID
	f.nextID++
	f.items = append(f.items, e)
	return nil
}

func (f *fakeExperienceRepo) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.items {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeExperienceRepo) ListAll(ctx context.Context) ([]*domain.Experience, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeExperienceRepo) ListByOrganiserID(ctx context.Context, organiserID int64) ([]*domain.Experience, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Experience
	for _, e := range f.items {
		if e.OrganiserID() == organiserID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExperienceRepo) FindFirstByOrganiserInRange(ctx context.Context, organiserID int64, start, end time.Time) (*domain.Experience, error) {
	f.rangeCalls++
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.items {
		if e.OrganiserID() == organiserID && !e.Date.Before(start) && e.Date.Before(end) {
			return e, nil
		}
	}
	return nil, nil
}

// seed stores an experience directly, bypassing the workflow.
func (f *fakeExperienceRepo) seed(organiser *domain.User, name string, date time.Time) *domain.Experience {
	e := domain.NewExperience(name, "", date, "Leuven", organiser, date)
	e.ID = f.nextID
	f.nextID++
	f.items = append(f.items, e)
	return e
}

// fakeTripRepo is an in-memory TripRepository for tests.
type fakeTripRepo struct {
	items []*domain.Trip
	err   error
}

func (f *fakeTripRepo) ListAll(ctx context.Context) ([]*domain.Trip, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeTripRepo) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.items {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}
