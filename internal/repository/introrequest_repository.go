package repository

import (
	"context"

	"github.com/mawadda-app/agency-backend/internal/domain"
)

type PropositionRequestRepository interface {
	Create(ctx context.Context, r *domain.PropositionRequest) error
	GetByID(ctx context.Context, id int) (*domain.PropositionRequest, error)
	// GetByTriple looks up any prior request for (requester, reference,
	// candidate); a rejected one permanently blocks re-requesting.
	GetByTriple(ctx context.Context, requesterID, referenceID, candidateID int) (*domain.PropositionRequest, error)
	// Respond applies the pending -> terminal compare-and-set and, when the
	// request is accepted, inserts the proposal grant in the same
	// transaction. Returns domain.ErrAlreadyResponded on a CAS miss.
	Respond(ctx context.Context, r *domain.PropositionRequest, grant *domain.ProposalGrant) error
	ListIncoming(ctx context.Context, ownerID, limit, offset int) ([]*domain.PropositionRequest, error)
	ListOutgoing(ctx context.Context, requesterID, limit, offset int) ([]*domain.PropositionRequest, error)
}
