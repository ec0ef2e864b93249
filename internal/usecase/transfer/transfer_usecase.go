// Package transfer implements the ownership handoff of a person record
// between matchmakers.
package transfer

import (
	"context"

	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/notifier"
	"github.com/mawadda-app/agency-backend/internal/repository"
	"go.uber.org/zap"
)

type UseCase struct {
	transferRepo   repository.TransferRequestRepository
	profileRepo    repository.ProfileRepository
	matchmakerRepo repository.MatchmakerRepository
	notifier       notifier.Notifier
	logger         *zap.Logger
}

func NewUseCase(
	transferRepo repository.TransferRequestRepository,
	profileRepo repository.ProfileRepository,
	matchmakerRepo repository.MatchmakerRepository,
	n notifier.Notifier,
	logger *zap.Logger,
) *UseCase {
	return &UseCase{
		transferRepo:   transferRepo,
		profileRepo:    profileRepo,
		matchmakerRepo: matchmakerRepo,
		notifier:       n,
		logger:         logger,
	}
}

type CreateRequest struct {
	PersonID       int    `json:"person_id" binding:"required"`
	ToMatchmakerID int    `json:"to_matchmaker_id" binding:"required"`
	Reason         string `json:"reason" binding:"required"`
}

type RejectRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

// Create opens a transfer of a person the caller currently owns.
func (uc *UseCase) Create(ctx context.Context, actorID int, req *CreateRequest) (*domain.TransferRequest, error) {
	if req.Reason == "" {
		return nil, domain.ValidationError("reason is required")
	}
	if req.ToMatchmakerID == actorID {
		return nil, domain.ValidationError("cannot transfer a person to yourself")
	}

	person, err := uc.profileRepo.GetByID(ctx, req.PersonID)
	if err != nil {
		return nil, err
	}
	if !person.OwnedBy(actorID) {
		return nil, domain.ErrNotPermitted
	}
	if _, err := uc.matchmakerRepo.GetByID(ctx, req.ToMatchmakerID); err != nil {
		return nil, err
	}

	request := &domain.TransferRequest{
		PersonID:       req.PersonID,
		FromMatchmaker: actorID,
		ToMatchmaker:   req.ToMatchmakerID,
		Reason:         req.Reason,
		Status:         domain.RequestPending,
	}
	if err := uc.transferRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	uc.logger.Info("transfer request created",
		zap.Int("request_id", request.ID),
		zap.Int("person_id", request.PersonID),
		zap.Int("from", actorID),
		zap.Int("to", request.ToMatchmaker),
	)
	uc.notifier.Publish(ctx, notifier.Event{Type: notifier.EventTransferCreated, Payload: request})
	return request, nil
}

// Accept reassigns the person to the target matchmaker. The repository runs
// the status change and the reassignment in one transaction; losing the
// compare-and-set surfaces as a state error, not a silent no-op.
func (uc *UseCase) Accept(ctx context.Context, actorID, requestID int) (*domain.TransferRequest, error) {
	request, err := uc.transferRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToMatchmaker != actorID {
		return nil, domain.ErrNotPermitted
	}
	if request.Status != domain.RequestPending {
		return nil, domain.StateError("transfer request is already %s", request.Status)
	}

	if err := uc.transferRepo.Accept(ctx, request); err != nil {
		return nil, err
	}
	request.Status = domain.RequestAccepted

	uc.logger.Info("transfer accepted",
		zap.Int("request_id", request.ID),
		zap.Int("person_id", request.PersonID),
		zap.Int("new_owner", request.ToMatchmaker),
	)
	uc.notifier.Publish(ctx, notifier.Event{Type: notifier.EventTransferResolved, Payload: request})
	return request, nil
}

// Reject closes the request with a mandatory reason.
func (uc *UseCase) Reject(ctx context.Context, actorID, requestID int, req *RejectRequest) (*domain.TransferRequest, error) {
	if req.RejectionReason == "" {
		return nil, domain.ValidationError("rejection reason is required")
	}

	request, err := uc.transferRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToMatchmaker != actorID {
		return nil, domain.ErrNotPermitted
	}
	if request.Status != domain.RequestPending {
		return nil, domain.StateError("transfer request is already %s", request.Status)
	}

	if err := uc.transferRepo.Reject(ctx, request.ID, req.RejectionReason); err != nil {
		return nil, err
	}
	request.Status = domain.RequestRejected
	request.RejectionReason = &req.RejectionReason

	uc.notifier.Publish(ctx, notifier.Event{Type: notifier.EventTransferResolved, Payload: request})
	return request, nil
}

func (uc *UseCase) ListIncoming(ctx context.Context, actorID, limit, offset int) ([]*domain.TransferRequest, error) {
	return uc.transferRepo.ListIncoming(ctx, actorID, limit, offset)
}

func (uc *UseCase) ListOutgoing(ctx context.Context, actorID, limit, offset int) ([]*domain.TransferRequest, error) {
	return uc.transferRepo.ListOutgoing(ctx, actorID, limit, offset)
}
