package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/repository"
)

type propositionRequestRepository struct {
	db *sqlx.DB
}

func NewPropositionRequestRepository(db *sqlx.DB) repository.PropositionRequestRepository {
	return &propositionRequestRepository{db: db}
}

const requestColumns = `id, reference_id, candidate_id, requester_id, owner_id, message, status,
	share_phone, organizer, response_message, rejection_reason, responded_at, created_at`

// Create inserts a new request. The unique triple index backs the
// one-request-ever rule, so a concurrent duplicate surfaces as a validation
// error rather than a raw constraint violation.
func (r *propositionRequestRepository) Create(ctx context.Context, req *domain.PropositionRequest) error {
	query := `
		INSERT INTO proposition_requests (reference_id, candidate_id, requester_id, owner_id, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		req.ReferenceID, req.CandidateID, req.RequesterID, req.OwnerID, req.Message, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ValidationError("a request for this pair already exists")
	}
	return err
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *propositionRequestRepository) GetByID(ctx context.Context, id int) (*domain.PropositionRequest, error) {
	var req domain.PropositionRequest
	query := `SELECT ` + requestColumns + ` FROM proposition_requests WHERE id = $1`
	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIntroRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *propositionRequestRepository) GetByTriple(ctx context.Context, requesterID, referenceID, candidateID int) (*domain.PropositionRequest, error) {
	var req domain.PropositionRequest
	query := `
		SELECT ` + requestColumns + `
		FROM proposition_requests
		WHERE requester_id = $1 AND reference_id = $2 AND candidate_id = $3
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &req, query, requesterID, referenceID, candidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIntroRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Respond moves a pending request to its terminal status and, on acceptance,
// mints the single-use proposal grant in the same transaction so the right
// cannot exist without the accepted request it came from.
func (r *propositionRequestRepository) Respond(ctx context.Context, req *domain.PropositionRequest, grant *domain.ProposalGrant) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE proposition_requests
		SET status = $1, share_phone = $2, organizer = $3, response_message = $4,
		    rejection_reason = $5, responded_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND status = $7
	`
	result, err := tx.ExecContext(ctx, query,
		req.Status, req.SharePhone, req.Organizer, req.ResponseMessage,
		req.RejectionReason, req.ID, domain.RequestPending,
	)
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

	if grant != nil {
		grantQuery := `
			INSERT INTO proposal_grants (token, matchmaker_id, reference_id, candidate_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		if err := tx.QueryRowContext(ctx, grantQuery,
			grant.Token, grant.MatchmakerID, grant.ReferenceID, grant.CandidateID,
		).Scan(&grant.ID, &grant.CreatedAt); err != nil {
			return fmt.Errorf("failed to create proposal grant: %w", err)
		}
	}

	return tx.Commit()
}

func (r *propositionRequestRepository) ListIncoming(ctx context.Context, ownerID, limit, offset int) ([]*domain.PropositionRequest, error) {
	var requests []*domain.PropositionRequest
	query := `
		SELECT ` + requestColumns + `
		FROM proposition_requests
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &requests, query, ownerID, limit, offset)
	return requests, err
}

func (r *propositionRequestRepository) ListOutgoing(ctx context.Context, requesterID, limit, offset int) ([]*domain.PropositionRequest, error) {
	var requests []*domain.PropositionRequest
	query := `
		SELECT ` + requestColumns + `
		FROM proposition_requests
		WHERE requester_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &requests, query, requesterID, limit, offset)
	return requests, err
}
