package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/repository"
)

type matchmakerRepository struct {
	db *sqlx.DB
}

func NewMatchmakerRepository(db *sqlx.DB) repository.MatchmakerRepository {
	return &matchmakerRepository{db: db}
}

func (r *matchmakerRepository) Create(ctx context.Context, m *domain.Matchmaker) error {
	query := `
		INSERT INTO matchmakers (email, display_name, password_hash, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, m.Email, m.DisplayName, m.PasswordHash, m.IsActive).
		Scan(&m.ID, &m.CreatedAt)
}

func (r *matchmakerRepository) GetByID(ctx context.Context, id int) (*domain.Matchmaker, error) {
	var m domain.Matchmaker
	query := `SELECT id, email, display_name, password_hash, is_active, created_at FROM matchmakers WHERE id = $1`
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchmakerNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchmakerRepository) GetByEmail(ctx context.Context, email string) (*domain.Matchmaker, error) {
	var m domain.Matchmaker
	query := `SELECT id, email, display_name, password_hash, is_active, created_at FROM matchmakers WHERE email = $1`
	err := r.db.GetContext(ctx, &m, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchmakerNotFound
		}
		return nil, err
	}
	return &m, nil
}
