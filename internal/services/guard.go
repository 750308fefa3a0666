package services

import (
	"context"
	"errors"

	"holidayplanner/internal/domain"
)

// IdentityGuard checks that a caller claiming organiser rights owns the requested resource.
type IdentityGuard struct {
	userRepo domain.UserRepository
}

func NewIdentityGuard(userRepo domain.UserRepository) *IdentityGuard {
	return &IdentityGuard{userRepo: userRepo}
}

// AuthorizeOrganiserView returns the caller when claim identifies the organiser with
// requestedOrganiserID. Checks run in order and stop at the first failure.
func (g *IdentityGuard) AuthorizeOrganiserView(ctx context.Context, claim domain.Claim, requestedOrganiserID int64) (*domain.User, error) {
	if requestedOrganiserID <= 0 {
		return nil, domain.InvalidInput("organiserId is required")
	}
	if !claim.IsOrganiser {
		return nil, domain.Denied("not an organiser")
	}
	me, err := g.userRepo.GetByEmail(ctx, claim.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denied("invalid credentials")
		}
		return nil, domain.Unavailable("find user by email", err)
	}
	if me.ID != requestedOrganiserID {
		return nil, domain.Denied("not authorized for this resource")
	}
	return me, nil
}
