package introrequest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/notifier"
)

type fakeRequestRepo struct {
	rows   map[int]*domain.PropositionRequest
	grants []*domain.ProposalGrant
	nextID int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{rows: make(map[int]*domain.PropositionRequest)}
}

func (f *fakeRequestRepo) Create(_ context.Context, r *domain.PropositionRequest) error {
	f.nextID++
	r.ID = f.nextID
	f.rows[r.ID] = r
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int) (*domain.PropositionRequest, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrIntroRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) GetByTriple(_ context.Context, requesterID, referenceID, candidateID int) (*domain.PropositionRequest, error) {
	for i := f.nextID; i >= 1; i-- {
		r, ok := f.rows[i]
		if ok && r.RequesterID == requesterID && r.ReferenceID == referenceID && r.CandidateID == candidateID {
			return r, nil
		}
	}
	return nil, domain.ErrIntroRequestNotFound
}

func (f *fakeRequestRepo) Respond(_ context.Context, r *domain.PropositionRequest, grant *domain.ProposalGrant) error {
	if _, ok := f.rows[r.ID]; !ok {
		return domain.ErrAlreadyResponded
	}
	f.rows[r.ID] = r
	if grant != nil {
		f.grants = append(f.grants, grant)
	}
	return nil
}

func (f *fakeRequestRepo) ListIncoming(_ context.Context, ownerID, limit, offset int) ([]*domain.PropositionRequest, error) {
	var out []*domain.PropositionRequest
	for i := 1; i <= f.nextID; i++ {
		if r, ok := f.rows[i]; ok && r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListOutgoing(_ context.Context, requesterID, limit, offset int) ([]*domain.PropositionRequest, error) {
	var out []*domain.PropositionRequest
	for i := 1; i <= f.nextID; i++ {
		if r, ok := f.rows[i]; ok && r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[int]*domain.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id int) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) ListEligible(context.Context, string, int) ([]*domain.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) ListByMatchmaker(context.Context, int, int, int) ([]*domain.Profile, error) {
	return nil, nil
}

// requester 20 manages the reference (1); owner 10 manages the candidate (2).
func newTestUseCase() (*UseCase, *fakeRequestRepo) {
	owner, requester := 10, 20
	requests := newFakeRequestRepo()
	profiles := &fakeProfileRepo{profiles: map[int]*domain.Profile{
		1: {ID: 1, MatchmakerID: &requester, Gender: domain.GenderMale},
		2: {ID: 2, MatchmakerID: &owner, Gender: domain.GenderFemale},
	}}

	uc := &UseCase{
		requestRepo: requests,
		profileRepo: profiles,
		notifier:    notifier.Nop{},
		logger:      zap.NewNop(),
	}
	return uc, requests
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateRequest(t *testing.T) {
	uc, _ := newTestUseCase()

	r, err := uc.Create(context.Background(), 20, &CreateRequest{
		ReferenceID: 1, CandidateID: 2, Message: "may I propose her?",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, r.Status)
	assert.Equal(t, 20, r.RequesterID)
	assert.Equal(t, 10, r.OwnerID)
}

func TestCreateRejectsOwnCandidate(t *testing.T) {
	uc, _ := newTestUseCase()

	// Matchmaker 10 owns candidate 2; a request makes no sense.
	_, err := uc.Create(context.Background(), 10, &CreateRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello",
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCreateBlockedByPriorRequest(t *testing.T) {
	tests := []struct {
		name   string
		status domain.RequestStatus
	}{
		{"pending", domain.RequestPending},
		{"accepted", domain.RequestAccepted},
		{"rejected blocks permanently", domain.RequestRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, requests := newTestUseCase()
			requests.Create(context.Background(), &domain.PropositionRequest{
				ReferenceID: 1, CandidateID: 2, RequesterID: 20, OwnerID: 10,
				Message: "earlier ask", Status: tt.status,
			})

			_, err := uc.Create(context.Background(), 20, &CreateRequest{
				ReferenceID: 1, CandidateID: 2, Message: "asking again",
			})
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestRespondOnlyByOwner(t *testing.T) {
	uc, _ := newTestUseCase()
	r, err := uc.Create(context.Background(), 20, &CreateRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello",
	})
	require.NoError(t, err)

	_, err = uc.Respond(context.Background(), 20, r.ID, &RespondRequest{Status: "accepted"})
	assert.ErrorIs(t, err, domain.ErrNotPermitted)
}

func TestRejectRequiresReason(t *testing.T) {
	uc, _ := newTestUseCase()
	r, err := uc.Create(context.Background(), 20, &CreateRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello",
	})
	require.NoError(t, err)

	_, err = uc.Respond(context.Background(), 10, r.ID, &RespondRequest{Status: "rejected"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	resolved, err := uc.Respond(context.Background(), 10, r.ID, &RespondRequest{
		Status:          "rejected",
		RejectionReason: strPtr("pair does not fit"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, resolved.Status)
}

func TestAcceptRequiresOrganizerAndMintsGrant(t *testing.T) {
	uc, requests := newTestUseCase()
	r, err := uc.Create(context.Background(), 20, &CreateRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello",
	})
	require.NoError(t, err)

	_, err = uc.Respond(context.Background(), 10, r.ID, &RespondRequest{Status: "accepted"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Empty(t, requests.grants)

	resolved, err := uc.Respond(context.Background(), 10, r.ID, &RespondRequest{
		Status:     "accepted",
		Organizer:  strPtr(domain.OrganizerAgency),
		SharePhone: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, resolved.Status)

	require.Len(t, requests.grants, 1)
	grant := requests.grants[0]
	assert.Equal(t, 20, grant.MatchmakerID)
	assert.Equal(t, 1, grant.ReferenceID)
	assert.Equal(t, 2, grant.CandidateID)
	assert.NotEmpty(t, grant.Token)
}

func TestRespondTerminalIsStateError(t *testing.T) {
	uc, _ := newTestUseCase()
	r, err := uc.Create(context.Background(), 20, &CreateRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello",
	})
	require.NoError(t, err)

	_, err = uc.Respond(context.Background(), 10, r.ID, &RespondRequest{
		Status: "rejected", RejectionReason: strPtr("no"),
	})
	require.NoError(t, err)

	_, err = uc.Respond(context.Background(), 10, r.ID, &RespondRequest{
		Status: "accepted", Organizer: strPtr(domain.OrganizerOwner),
	})
	assert.Equal(t, domain.KindState, domain.KindOf(err))
}
