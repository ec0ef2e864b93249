// Package proposition implements the introduction workflow: a matchmaker who
// owns (or was granted) a candidate sends the introduction message to one or
// both parties, each recipient answers independently, and the group status is
// derived from the member rows.
package proposition

import (
	"context"
	"time"

	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/notifier"
	"github.com/mawadda-app/agency-backend/internal/repository"
	"go.uber.org/zap"
)

type UseCase struct {
	propositionRepo repository.PropositionRepository
	profileRepo     repository.ProfileRepository
	notifier        notifier.Notifier
	logger          *zap.Logger
	ttl             time.Duration
	now             func() time.Time
}

func NewUseCase(
	propositionRepo repository.PropositionRepository,
	profileRepo repository.ProfileRepository,
	n notifier.Notifier,
	logger *zap.Logger,
	ttl time.Duration,
) *UseCase {
	return &UseCase{
		propositionRepo: propositionRepo,
		profileRepo:     profileRepo,
		notifier:        n,
		logger:          logger,
		ttl:             ttl,
		now:             time.Now,
	}
}

// ProposeRequest selects which parties receive the introduction message.
type ProposeRequest struct {
	ReferenceID int    `json:"reference_id" binding:"required"`
	CandidateID int    `json:"candidate_id" binding:"required"`
	Message     string `json:"message" binding:"required"`
	ToReference bool   `json:"to_reference"`
	ToCandidate bool   `json:"to_candidate"`
}

// RespondRequest answers one proposition on behalf of its recipient.
type RespondRequest struct {
	Status          string  `json:"status" binding:"required,oneof=accepted rejected"`
	ResponseMessage *string `json:"response_message"`
}

// SendToOtherRequest forwards an accepted one-sided group to the remaining
// party.
type SendToOtherRequest struct {
	ReferenceID int    `json:"reference_id" binding:"required"`
	CandidateID int    `json:"candidate_id" binding:"required"`
	Message     string `json:"message" binding:"required"`
}

// GroupView is the derived, never-stored aggregate over a proposition group.
type GroupView struct {
	ReferenceID int                      `json:"reference_id"`
	CandidateID int                      `json:"candidate_id"`
	Message     string                   `json:"message"`
	Status      domain.PropositionStatus `json:"status"`
	Members     []MemberView             `json:"members"`
}

// MemberView is one group member with expiry applied.
type MemberView struct {
	*domain.Proposition
	EffectiveStatus domain.PropositionStatus `json:"effective_status"`
}

// Propose creates one proposition row per selected recipient. The caller must
// own the candidate or hold an unspent proposal grant for the pair.
func (uc *UseCase) Propose(ctx context.Context, actorID int, req *ProposeRequest) ([]*domain.Proposition, error) {
	if req.Message == "" {
		return nil, domain.ValidationError("message is required")
	}
	if !req.ToReference && !req.ToCandidate {
		return nil, domain.ValidationError("at least one recipient must be selected")
	}

	candidate, err := uc.profileRepo.GetByID(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	reference, err := uc.profileRepo.GetByID(ctx, req.ReferenceID)
	if err != nil {
		return nil, err
	}

	// Ownership lets the sender propose directly; otherwise an unspent grant
	// is consumed inside the same transaction as the group insert.
	var spend *repository.GrantSpend
	if !candidate.OwnedBy(actorID) {
		spend = &repository.GrantSpend{
			MatchmakerID: actorID,
			ReferenceID:  reference.ID,
			CandidateID:  candidate.ID,
		}
	}

	var recipients []int
	if req.ToReference {
		recipients = append(recipients, reference.ID)
	}
	if req.ToCandidate {
		recipients = append(recipients, candidate.ID)
	}

	created := make([]*domain.Proposition, 0, len(recipients))
	for _, recipientID := range recipients {
		created = append(created, &domain.Proposition{
			ReferenceID: reference.ID,
			CandidateID: candidate.ID,
			RecipientID: recipientID,
			SenderID:    actorID,
			Message:     req.Message,
			Status:      domain.PropositionPending,
		})
	}
	if err := uc.propositionRepo.CreateGroup(ctx, created, spend); err != nil {
		return nil, err
	}

	uc.logger.Info("proposition sent",
		zap.Int("reference_id", reference.ID),
		zap.Int("candidate_id", candidate.ID),
		zap.Int("recipients", len(created)),
		zap.Int("sender_id", actorID),
	)
	uc.notifier.Publish(ctx, notifier.Event{Type: notifier.EventPropositionCreated, Payload: created})
	return created, nil
}

// Respond records one recipient's answer. Only the matchmaker assigned to the
// addressed recipient may respond; rows no longer pending, expired ones
// included, fail with a state error.
func (uc *UseCase) Respond(ctx context.Context, actorID, propositionID int, req *RespondRequest) (*domain.Proposition, error) {
	p, err := uc.propositionRepo.GetByID(ctx, propositionID)
	if err != nil {
		return nil, err
	}

	recipient, err := uc.profileRepo.GetByID(ctx, p.RecipientID)
	if err != nil {
		return nil, err
	}
	if !recipient.OwnedBy(actorID) {
		return nil, domain.ErrNotPermitted
	}

	now := uc.now()
	if p.IsExpired(now, uc.ttl) {
		return nil, domain.ErrPropositionExpired
	}
	if p.Status != domain.PropositionPending {
		return nil, domain.StateError("proposition is already %s", p.Status)
	}

	status := domain.PropositionStatus(req.Status)
	if err := uc.propositionRepo.Respond(ctx, p.ID, status, req.ResponseMessage); err != nil {
		return nil, err
	}
	p.Status = status
	p.ResponseMessage = req.ResponseMessage
	respondedAt := now
	p.RespondedAt = &respondedAt

	uc.logger.Info("proposition responded",
		zap.Int("proposition_id", p.ID),
		zap.String("status", string(status)),
		zap.Int("matchmaker_id", actorID),
	)
	uc.notifier.Publish(ctx, notifier.Event{Type: notifier.EventPropositionResponded, Payload: p})
	return p, nil
}

// SendToOther creates the second proposition of a group once the single
// addressed recipient has accepted.
func (uc *UseCase) SendToOther(ctx context.Context, actorID int, req *SendToOtherRequest) (*domain.Proposition, error) {
	group, err := uc.propositionRepo.GetGroup(ctx, req.ReferenceID, req.CandidateID, req.Message)
	if err != nil {
		return nil, err
	}
	if len(group) == 0 {
		return nil, domain.ErrPropositionNotFound
	}
	if len(group) > 1 {
		return nil, domain.StateError("both parties have already been addressed")
	}

	first := group[0]
	if first.SenderID != actorID {
		return nil, domain.ErrNotPermitted
	}
	if first.EffectiveStatus(uc.now(), uc.ttl) != domain.PropositionAccepted {
		return nil, domain.StateError("the addressed party has not accepted yet")
	}

	otherID := first.CandidateID
	if !first.RecipientIsReference() {
		otherID = first.ReferenceID
	}

	p := &domain.Proposition{
		ReferenceID: first.ReferenceID,
		CandidateID: first.CandidateID,
		RecipientID: otherID,
		SenderID:    actorID,
		Message:     first.Message,
		Status:      domain.PropositionPending,
	}
	if err := uc.propositionRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.notifier.Publish(ctx, notifier.Event{Type: notifier.EventPropositionCreated, Payload: []*domain.Proposition{p}})
	return p, nil
}

// Group returns the derived aggregate view of a proposition group.
func (uc *UseCase) Group(ctx context.Context, referenceID, candidateID int, message string) (*GroupView, error) {
	members, err := uc.propositionRepo.GetGroup(ctx, referenceID, candidateID, message)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, domain.ErrPropositionNotFound
	}
	now := uc.now()
	view := &GroupView{
		ReferenceID: referenceID,
		CandidateID: candidateID,
		Message:     message,
		Status:      domain.GroupStatus(members, now, uc.ttl),
	}
	for _, m := range members {
		view.Members = append(view.Members, MemberView{
			Proposition:     m,
			EffectiveStatus: m.EffectiveStatus(now, uc.ttl),
		})
	}
	return view, nil
}

// ListSent returns propositions created by the matchmaker, expiry applied.
func (uc *UseCase) ListSent(ctx context.Context, actorID, limit, offset int) ([]MemberView, error) {
	rows, err := uc.propositionRepo.ListBySender(ctx, actorID, limit, offset)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]MemberView, 0, len(rows))
	for _, p := range rows {
		out = append(out, MemberView{Proposition: p, EffectiveStatus: p.EffectiveStatus(now, uc.ttl)})
	}
	return out, nil
}
