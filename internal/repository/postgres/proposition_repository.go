package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/repository"
)

type propositionRepository struct {
	db *sqlx.DB
}

func NewPropositionRepository(db *sqlx.DB) repository.PropositionRepository {
	return &propositionRepository{db: db}
}

const propositionColumns = `id, reference_id, candidate_id, recipient_id, sender_id, message, status, response_message, responded_at, created_at`

func (r *propositionRepository) Create(ctx context.Context, p *domain.Proposition) error {
	query := `
		INSERT INTO propositions (reference_id, candidate_id, recipient_id, sender_id, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		p.ReferenceID, p.CandidateID, p.RecipientID, p.SenderID, p.Message, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

// CreateGroup couples the grant spend with the group inserts in a single
// transaction: either the whole group lands and the grant is marked used, or
// nothing is.
func (r *propositionRepository) CreateGroup(ctx context.Context, rows []*domain.Proposition, spend *repository.GrantSpend) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if spend != nil {
		result, err := tx.ExecContext(ctx, `
			UPDATE proposal_grants
			SET used_at = CURRENT_TIMESTAMP
			WHERE id = (
				SELECT id FROM proposal_grants
				WHERE matchmaker_id = $1 AND reference_id = $2 AND candidate_id = $3 AND used_at IS NULL
				ORDER BY created_at
				LIMIT 1
			)
		`, spend.MatchmakerID, spend.ReferenceID, spend.CandidateID)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotPermitted
		}
	}

	query := `
		INSERT INTO propositions (reference_id, candidate_id, recipient_id, sender_id, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	for _, p := range rows {
		err := tx.QueryRowContext(ctx, query,
			p.ReferenceID, p.CandidateID, p.RecipientID, p.SenderID, p.Message, p.Status,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *propositionRepository) GetByID(ctx context.Context, id int) (*domain.Proposition, error) {
	var p domain.Proposition
	query := `SELECT ` + propositionColumns + ` FROM propositions WHERE id = $1`
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPropositionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *propositionRepository) GetGroup(ctx context.Context, referenceID, candidateID int, message string) ([]*domain.Proposition, error) {
	var group []*domain.Proposition
	query := `
		SELECT ` + propositionColumns + `
		FROM propositions
		WHERE reference_id = $1 AND candidate_id = $2 AND message = $3
		ORDER BY created_at
	`
	err := r.db.SelectContext(ctx, &group, query, referenceID, candidateID, message)
	return group, err
}

func (r *propositionRepository) ListBySender(ctx context.Context, senderID, limit, offset int) ([]*domain.Proposition, error) {
	var propositions []*domain.Proposition
	query := `
		SELECT ` + propositionColumns + `
		FROM propositions
		WHERE sender_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &propositions, query, senderID, limit, offset)
	return propositions, err
}

// Respond is the compare-and-set: only a row still pending moves to a
// terminal status. A concurrent responder loses the race and gets
// ErrAlreadyResponded instead of silently overwriting.
func (r *propositionRepository) Respond(ctx context.Context, id int, status domain.PropositionStatus, responseMessage *string) error {
	query := `
		UPDATE propositions
		SET status = $1, response_message = $2, responded_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, responseMessage, id, domain.PropositionPending)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAlreadyResponded
	}
	return nil
}
