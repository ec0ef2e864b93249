package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/repository"
)

type transferRequestRepository struct {
	db *sqlx.DB
}

func NewTransferRequestRepository(db *sqlx.DB) repository.TransferRequestRepository {
	return &transferRequestRepository{db: db}
}

const transferColumns = `id, person_id, from_matchmaker_id, to_matchmaker_id, reason, status, rejection_reason, responded_at, created_at`

func (r *transferRequestRepository) Create(ctx context.Context, req *domain.TransferRequest) error {
	query := `
		INSERT INTO transfer_requests (person_id, from_matchmaker_id, to_matchmaker_id, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		req.PersonID, req.FromMatchmaker, req.ToMatchmaker, req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
}

func (r *transferRequestRepository) GetByID(ctx context.Context, id int) (*domain.TransferRequest, error) {
	var req domain.TransferRequest
	query := `SELECT ` + transferColumns + ` FROM transfer_requests WHERE id = $1`
	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Accept couples the pending -> accepted compare-and-set with the ownership
// reassignment in a single transaction: either both happen or neither.
func (r *transferRequestRepository) Accept(ctx context.Context, req *domain.TransferRequest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE transfer_requests
		SET status = $1, responded_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND status = $3
	`, domain.RequestAccepted, req.ID, domain.RequestPending)
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

	result, err = tx.ExecContext(ctx, `
		UPDATE profiles
		SET matchmaker_id = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, req.ToMatchmaker, req.PersonID)
	if err != nil {
		return err
	}
	rows, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}

	return tx.Commit()
}

func (r *transferRequestRepository) Reject(ctx context.Context, id int, reason string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE transfer_requests
		SET status = $1, rejection_reason = $2, responded_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = $4
	`, domain.RequestRejected, reason, id, domain.RequestPending)
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

func (r *transferRequestRepository) ListIncoming(ctx context.Context, matchmakerID, limit, offset int) ([]*domain.TransferRequest, error) {
	var requests []*domain.TransferRequest
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_requests
		WHERE to_matchmaker_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &requests, query, matchmakerID, limit, offset)
	return requests, err
}

func (r *transferRequestRepository) ListOutgoing(ctx context.Context, matchmakerID, limit, offset int) ([]*domain.TransferRequest, error) {
	var requests []*domain.TransferRequest
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_requests
		WHERE from_matchmaker_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &requests, query, matchmakerID, limit, offset)
	return requests, err
}
