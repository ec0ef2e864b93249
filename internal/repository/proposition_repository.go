package repository

import (
	"context"

	"github.com/mawadda-app/agency-backend/internal/domain"
)

// GrantSpend identifies the one-time proposal grant to consume together with
// a group insert. Nil means the sender owns the candidate and no grant is
// needed.
type GrantSpend struct {
	MatchmakerID int
	ReferenceID  int
	CandidateID  int
}

type PropositionRepository interface {
	Create(ctx context.Context, p *domain.Proposition) error
	// CreateGroup inserts every row of a new group and, when spend is
	// non-nil, consumes the proposal grant in the same transaction. It
	// returns domain.ErrNotPermitted when no unspent grant exists; nothing
	// is persisted on any failure.
	CreateGroup(ctx context.Context, rows []*domain.Proposition, spend *GrantSpend) error
	GetByID(ctx context.Context, id int) (*domain.Proposition, error)
	// GetGroup returns every proposition sharing (reference, candidate,
	// message) — the members the aggregate status derives from.
	GetGroup(ctx context.Context, referenceID, candidateID int, message string) ([]*domain.Proposition, error)
	ListBySender(ctx context.Context, senderID, limit, offset int) ([]*domain.Proposition, error)
	// Respond performs the pending -> terminal compare-and-set; it returns
	// domain.ErrAlreadyResponded when the row left pending concurrently.
	Respond(ctx context.Context, id int, status domain.PropositionStatus, responseMessage *string) error
}
