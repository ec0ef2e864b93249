// Package introrequest implements the cross-owner permission protocol: a
// matchmaker asks the candidate's owner before proposing someone they do not
// manage. Acceptance mints a single-use proposal grant.
package introrequest

import (
	"context"

	"github.com/google/uuid"
	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/notifier"
	"github.com/mawadda-app/agency-backend/internal/repository"
	"go.uber.org/zap"
)

type UseCase struct {
	requestRepo repository.PropositionRequestRepository
	profileRepo repository.ProfileRepository
	notifier    notifier.Notifier
	logger      *zap.Logger
}

func NewUseCase(
	requestRepo repository.PropositionRequestRepository,
	profileRepo repository.ProfileRepository,
	n notifier.Notifier,
	logger *zap.Logger,
) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		notifier:    n,
		logger:      logger,
	}
}

type CreateRequest struct {
	ReferenceID int    `json:"reference_id" binding:"required"`
	CandidateID int    `json:"candidate_id" binding:"required"`
	Message     string `json:"message" binding:"required"`
}

type RespondRequest struct {
	Status          string  `json:"status" binding:"required,oneof=accepted rejected"`
	RejectionReason *string `json:"rejection_reason"`
	SharePhone      *bool   `json:"share_phone"`
	Organizer       *string `json:"organizer" binding:"omitempty,oneof=requester owner agency"`
	ResponseMessage *string `json:"response_message"`
}

// Create opens a request towards the candidate's owning matchmaker. Owning
// the candidate yourself is a validation error: that case is a direct
// proposition, not a request. A previously rejected request for the same
// triple blocks forever.
func (uc *UseCase) Create(ctx context.Context, actorID int, req *CreateRequest) (*domain.PropositionRequest, error) {
	if req.Message == "" {
		return nil, domain.ValidationError("message is required")
	}

	candidate, err := uc.profileRepo.GetByID(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.profileRepo.GetByID(ctx, req.ReferenceID); err != nil {
		return nil, err
	}
	if candidate.MatchmakerID == nil {
		return nil, domain.ValidationError("candidate has no assigned matchmaker")
	}
	if *candidate.MatchmakerID == actorID {
		return nil, domain.ValidationError("you own this candidate; send a proposition directly")
	}

	prior, err := uc.requestRepo.GetByTriple(ctx, actorID, req.ReferenceID, req.CandidateID)
	if err != nil && domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}
	if prior != nil {
		switch prior.Status {
		case domain.RequestRejected:
			return nil, domain.ValidationError("a previous request for this pair was rejected")
		case domain.RequestPending:
			return nil, domain.ValidationError("a request for this pair is already pending")
		case domain.RequestAccepted:
			return nil, domain.ValidationError("a request for this pair was already accepted")
		}
	}

	request := &domain.PropositionRequest{
		ReferenceID: req.ReferenceID,
		CandidateID: req.CandidateID,
		RequesterID: actorID,
		OwnerID:     *candidate.MatchmakerID,
		Message:     req.Message,
		Status:      domain.RequestPending,
	}
	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	uc.logger.Info("proposition request created",
		zap.Int("request_id", request.ID),
		zap.Int("requester_id", actorID),
		zap.Int("owner_id", request.OwnerID),
	)
	uc.notifier.Publish(ctx, notifier.Event{Type: notifier.EventIntroRequestCreated, Payload: request})
	return request, nil
}

// Respond resolves a pending request. Rejection requires a reason, acceptance
// an organizer; acceptance also mints the requester's single-use proposal
// grant atomically with the status change.
func (uc *UseCase) Respond(ctx context.Context, actorID, requestID int, req *RespondRequest) (*domain.PropositionRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.OwnerID != actorID {
		return nil, domain.ErrNotPermitted
	}
	if request.Status != domain.RequestPending {
		return nil, domain.StateError("request is already %s", request.Status)
	}

	var grant *domain.ProposalGrant
	switch domain.RequestStatus(req.Status) {
	case domain.RequestRejected:
		if req.RejectionReason == nil || *req.RejectionReason == "" {
			return nil, domain.ValidationError("rejection reason is required")
		}
		request.Status = domain.RequestRejected
		request.RejectionReason = req.RejectionReason
	case domain.RequestAccepted:
		if req.Organizer == nil || *req.Organizer == "" {
			return nil, domain.ValidationError("organizer is required on acceptance")
		}
		request.Status = domain.RequestAccepted
		request.Organizer = req.Organizer
		request.SharePhone = req.SharePhone
		grant = &domain.ProposalGrant{
			Token:        uuid.NewString(),
			MatchmakerID: request.RequesterID,
			ReferenceID:  request.ReferenceID,
			CandidateID:  request.CandidateID,
		}
	default:
		return nil, domain.ValidationError("status must be accepted or rejected")
	}
	request.ResponseMessage = req.ResponseMessage

	if err := uc.requestRepo.Respond(ctx, request, grant); err != nil {
		return nil, err
	}

	uc.logger.Info("proposition request resolved",
		zap.Int("request_id", request.ID),
		zap.String("status", string(request.Status)),
	)
	uc.notifier.Publish(ctx, notifier.Event{Type: notifier.EventIntroRequestResolved, Payload: request})
	return request, nil
}

func (uc *UseCase) ListIncoming(ctx context.Context, actorID, limit, offset int) ([]*domain.PropositionRequest, error) {
	return uc.requestRepo.ListIncoming(ctx, actorID, limit, offset)
}

func (uc *UseCase) ListOutgoing(ctx context.Context, actorID, limit, offset int) ([]*domain.PropositionRequest, error) {
	return uc.requestRepo.ListOutgoing(ctx, actorID, limit, offset)
}
