package repository

import (
	"context"

	"github.com/mawadda-app/agency-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// ListEligible returns active member profiles of the given gender; this
	// is the default candidate pool before any filter is applied.
	ListEligible(ctx context.Context, gender string, excludeID int) ([]*domain.Profile, error)
	ListByMatchmaker(ctx context.Context, matchmakerID, limit, offset int) ([]*domain.Profile, error)
}
