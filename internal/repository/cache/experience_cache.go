package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"holidayplanner/internal/domain"
)

const (
	listAllKey    = "experiences:all"
	listAllGenKey = "experiences:all:gen"
)

// experienceRepository caches ListAll in Redis and drops the entry on Create.
// Every Create bumps a generation counter; a listing read under an older
// generation is never written back. Redis failures fall through to the wrapped
// repository.
type experienceRepository struct {
	next   domain.ExperienceRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewExperienceRepository wraps next with a Redis read cache for the full listing.
func NewExperienceRepository(next domain.ExperienceRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) domain.ExperienceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &experienceRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (r *experienceRepository) Create(ctx context.Context, e *domain.Experience) error {
	if err := r.next.Create(ctx, e); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *experienceRepository) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	return r.next.GetByID(ctx, id)
}

func (r *experienceRepository) ListAll(ctx context.Context) ([]*domain.Experience, error) {
	raw, err := r.client.Get(ctx, listAllKey).Bytes()
	switch {
	case err == nil:
		var cached []*domain.Experience
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		r.logger.Warn("discarding unreadable cached experiences")
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("experience cache read failed", "error", err)
	}

	gen, genErr := r.generation(ctx)
	experiences, err := r.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		r.logger.Warn("experience cache generation read failed", "error", genErr)
		return experiences, nil
	}
	if err := r.store(ctx, gen, experiences); err != nil {
		r.logger.Warn("experience cache write failed", "error", err)
	}
	return experiences, nil
}

func (r *experienceRepository) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, listAllGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// store writes experiences only if no Create bumped the generation since gen was read.
func (r *experienceRepository) store(ctx context.Context, gen int64, experiences []*domain.Experience) error {
	payload, err := json.Marshal(experiences)
	if err != nil {
		return err
	}
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, listAllGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listAllKey, payload, r.ttl)
			return nil
		})
		return err
	}, listAllGenKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (r *experienceRepository) ListByOrganiserID(ctx context.Context, organiserID int64) ([]*domain.Experience, error) {
	return r.next.ListByOrganiserID(ctx, organiserID)
}

// FindFirstByOrganiserInRange always reads through; the conflict check must see fresh data.
func (r *experienceRepository) FindFirstByOrganiserInRange(ctx context.Context, organiserID int64, start, end time.Time) (*domain.Experience, error) {
	return r.next.FindFirstByOrganiserInRange(ctx, organiserID, start, end)
}

func (r *experienceRepository) invalidate(ctx context.Context) {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, listAllGenKey)
		pipe.Del(ctx, listAllKey)
		return nil
	})
	if err != nil {
		r.logger.Warn("experience cache invalidation failed", "error", err)
	}
}
