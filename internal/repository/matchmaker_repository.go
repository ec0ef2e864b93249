package repository

import (
	"context"

	"github.com/mawadda-app/agency-backend/internal/domain"
)

type MatchmakerRepository interface {
	Create(ctx context.Context, m *domain.Matchmaker) error
	GetByID(ctx context.Context, id int) (*domain.Matchmaker, error)
	GetByEmail(ctx context.Context, email string) (*domain.Matchmaker, error)
}
