package repository

import (
	"context"

	"github.com/mawadda-app/agency-backend/internal/domain"
)

type TransferRequestRepository interface {
	Create(ctx context.Context, r *domain.TransferRequest) error
	GetByID(ctx context.Context, id int) (*domain.TransferRequest, error)
	// Accept runs CAS acceptance and the ownership reassignment in one
	// transaction. Returns domain.ErrAlreadyResponded on a CAS miss.
	Accept(ctx context.Context, r *domain.TransferRequest) error
	Reject(ctx context.Context, id int, reason string) error
	ListIncoming(ctx context.Context, matchmakerID, limit, offset int) ([]*domain.TransferRequest, error)
	ListOutgoing(ctx context.Context, matchmakerID, limit, offset int) ([]*domain.TransferRequest, error)
}
