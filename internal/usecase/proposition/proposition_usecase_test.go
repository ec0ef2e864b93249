package proposition

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/notifier"
	"github.com/mawadda-app/agency-backend/internal/repository"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

const testTTL = 14 * 24 * time.Hour

var errInsertFailed = errors.New("insert failed")

type fakePropositionRepo struct {
	rows   map[int]*domain.Proposition
	grants map[[3]int]int
	nextID int
	// failRow makes the insert of the n-th group row fail (1-based);
	// zero disables the fault.
	failRow int
}

func newFakePropositionRepo() *fakePropositionRepo {
	return &fakePropositionRepo{
		rows:   make(map[int]*domain.Proposition),
		grants: make(map[[3]int]int),
	}
}

func (f *fakePropositionRepo) Create(_ context.Context, p *domain.Proposition) error {
	f.nextID++
	p.ID = f.nextID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = testNow
	}
	f.rows[p.ID] = p
	return nil
}

// CreateGroup mirrors the transactional store: on any failure nothing is
// persisted and the grant stays unspent.
func (f *fakePropositionRepo) CreateGroup(_ context.Context, rows []*domain.Proposition, spend *repository.GrantSpend) error {
	var key [3]int
	if spend != nil {
		key = [3]int{spend.MatchmakerID, spend.ReferenceID, spend.CandidateID}
		if f.grants[key] == 0 {
			return domain.ErrNotPermitted
		}
	}
	for i := range rows {
		if f.failRow == i+1 {
			return errInsertFailed
		}
	}
	if spend != nil {
		f.grants[key]--
	}
	for _, p := range rows {
		f.nextID++
		p.ID = f.nextID
		p.CreatedAt = testNow
		f.rows[p.ID] = p
	}
	return nil
}

func (f *fakePropositionRepo) GetByID(_ context.Context, id int) (*domain.Proposition, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrPropositionNotFound
	}
	return p, nil
}

func (f *fakePropositionRepo) GetGroup(_ context.Context, referenceID, candidateID int, message string) ([]*domain.Proposition, error) {
	var out []*domain.Proposition
	for i := 1; i <= f.nextID; i++ {
		p, ok := f.rows[i]
		if ok && p.ReferenceID == referenceID && p.CandidateID == candidateID && p.Message == message {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropositionRepo) ListBySender(_ context.Context, senderID, limit, offset int) ([]*domain.Proposition, error) {
	var out []*domain.Proposition
	for i := 1; i <= f.nextID; i++ {
		if p, ok := f.rows[i]; ok && p.SenderID == senderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropositionRepo) Respond(_ context.Context, id int, status domain.PropositionStatus, responseMessage *string) error {
	p, ok := f.rows[id]
	if !ok || p.Status != domain.PropositionPending {
		return domain.ErrAlreadyResponded
	}
	p.Status = status
	p.ResponseMessage = responseMessage
	respondedAt := testNow
	p.RespondedAt = &respondedAt
	return nil
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

func newTestUseCase() (*UseCase, *fakePropositionRepo, *fakeProfileRepo) {
	owner := 10
	propositions := newFakePropositionRepo()
	profiles := &fakeProfileRepo{profiles: map[int]*domain.Profile{
		1: {ID: 1, MatchmakerID: &owner, DisplayName: "Amina", Gender: domain.GenderFemale},
		2: {ID: 2, MatchmakerID: &owner, DisplayName: "Karim", Gender: domain.GenderMale},
	}}

	uc := &UseCase{
		propositionRepo: propositions,
		profileRepo:     profiles,
		notifier:        notifier.Nop{},
		logger:          zap.NewNop(),
		ttl:             testTTL,
		now:             func() time.Time { return testNow },
	}
	return uc, propositions, profiles
}

func TestProposeToBothParties(t *testing.T) {
	uc, _, _ := newTestUseCase()

	created, err := uc.Propose(context.Background(), 10, &ProposeRequest{
		ReferenceID: 1,
		CandidateID: 2,
		Message:     "a promising introduction",
		ToReference: true,
		ToCandidate: true,
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, 1, created[0].RecipientID)
	assert.Equal(t, 2, created[1].RecipientID)
	for _, p := range created {
		assert.Equal(t, domain.PropositionPending, p.Status)
		assert.Equal(t, 10, p.SenderID)
	}
}

func TestProposeRequiresRecipient(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Propose(context.Background(), 10, &ProposeRequest{
		ReferenceID: 1,
		CandidateID: 2,
		Message:     "hello",
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestProposeForeignCandidateNeedsGrant(t *testing.T) {
	uc, propositions, profiles := newTestUseCase()
	stranger := 99
	profiles.profiles[2].MatchmakerID = &stranger

	req := &ProposeRequest{ReferenceID: 1, CandidateID: 2, Message: "hello", ToCandidate: true}

	_, err := uc.Propose(context.Background(), 10, req)
	assert.ErrorIs(t, err, domain.ErrNotPermitted)

	// With a grant the same call succeeds, and the grant is spent.
	propositions.grants[[3]int{10, 1, 2}] = 1
	_, err = uc.Propose(context.Background(), 10, req)
	require.NoError(t, err)

	_, err = uc.Propose(context.Background(), 10, req)
	assert.ErrorIs(t, err, domain.ErrNotPermitted)
}

func TestProposeGroupInsertIsAtomic(t *testing.T) {
	uc, propositions, profiles := newTestUseCase()
	stranger := 99
	profiles.profiles[2].MatchmakerID = &stranger
	propositions.grants[[3]int{10, 1, 2}] = 1
	propositions.failRow = 2

	req := &ProposeRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello",
		ToReference: true, ToCandidate: true,
	}

	_, err := uc.Propose(context.Background(), 10, req)
	require.ErrorIs(t, err, errInsertFailed)

	// A failed group insert persists no rows and leaves the grant unspent.
	assert.Empty(t, propositions.rows)
	assert.Equal(t, 1, propositions.grants[[3]int{10, 1, 2}])

	propositions.failRow = 0
	created, err := uc.Propose(context.Background(), 10, req)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 0, propositions.grants[[3]int{10, 1, 2}])
}

func TestRespondRecordsAnswer(t *testing.T) {
	uc, _, _ := newTestUseCase()

	created, err := uc.Propose(context.Background(), 10, &ProposeRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello", ToReference: true,
	})
	require.NoError(t, err)

	msg := "with pleasure"
	p, err := uc.Respond(context.Background(), 10, created[0].ID, &RespondRequest{
		Status:          string(domain.PropositionAccepted),
		ResponseMessage: &msg,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PropositionAccepted, p.Status)
	require.NotNil(t, p.RespondedAt)
	assert.Equal(t, &msg, p.ResponseMessage)
}

func TestRespondOnlyByRecipientOwner(t *testing.T) {
	uc, _, _ := newTestUseCase()

	created, err := uc.Propose(context.Background(), 10, &ProposeRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello", ToReference: true,
	})
	require.NoError(t, err)

	_, err = uc.Respond(context.Background(), 99, created[0].ID, &RespondRequest{Status: "accepted"})
	assert.ErrorIs(t, err, domain.ErrNotPermitted)
}

func TestRespondTerminalIsStateError(t *testing.T) {
	uc, _, _ := newTestUseCase()

	created, err := uc.Propose(context.Background(), 10, &ProposeRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello", ToReference: true,
	})
	require.NoError(t, err)

	_, err = uc.Respond(context.Background(), 10, created[0].ID, &RespondRequest{Status: "accepted"})
	require.NoError(t, err)

	_, err = uc.Respond(context.Background(), 10, created[0].ID, &RespondRequest{Status: "rejected"})
	assert.Equal(t, domain.KindState, domain.KindOf(err))
}

func TestRespondExpired(t *testing.T) {
	uc, propositions, _ := newTestUseCase()

	created, err := uc.Propose(context.Background(), 10, &ProposeRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello", ToReference: true,
	})
	require.NoError(t, err)

	propositions.rows[created[0].ID].CreatedAt = testNow.Add(-testTTL)

	_, err = uc.Respond(context.Background(), 10, created[0].ID, &RespondRequest{Status: "accepted"})
	assert.ErrorIs(t, err, domain.ErrPropositionExpired)
}

func TestSendToOther(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Propose(ctx, 10, &ProposeRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello", ToReference: true,
	})
	require.NoError(t, err)

	fwd := &SendToOtherRequest{ReferenceID: 1, CandidateID: 2, Message: "hello"}

	// Not yet accepted.
	_, err = uc.SendToOther(ctx, 10, fwd)
	assert.Equal(t, domain.KindState, domain.KindOf(err))

	_, err = uc.Respond(ctx, 10, created[0].ID, &RespondRequest{Status: "accepted"})
	require.NoError(t, err)

	// Only the original sender may forward.
	_, err = uc.SendToOther(ctx, 99, fwd)
	assert.ErrorIs(t, err, domain.ErrNotPermitted)

	second, err := uc.SendToOther(ctx, 10, fwd)
	require.NoError(t, err)
	assert.Equal(t, 2, second.RecipientID)
	assert.Equal(t, domain.PropositionPending, second.Status)

	// Both parties addressed now.
	_, err = uc.SendToOther(ctx, 10, fwd)
	assert.Equal(t, domain.KindState, domain.KindOf(err))
}

func TestGroupView(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Propose(ctx, 10, &ProposeRequest{
		ReferenceID: 1, CandidateID: 2, Message: "hello", ToReference: true, ToCandidate: true,
	})
	require.NoError(t, err)

	view, err := uc.Group(ctx, 1, 2, "hello")
	require.NoError(t, err)
	assert.Equal(t, domain.PropositionPending, view.Status)
	assert.Len(t, view.Members, 2)

	for _, id := range []int{created[0].ID, created[1].ID} {
		_, err = uc.Respond(ctx, 10, id, &RespondRequest{Status: "accepted"})
		require.NoError(t, err)
	}

	view, err = uc.Group(ctx, 1, 2, "hello")
	require.NoError(t, err)
	assert.Equal(t, domain.PropositionAccepted, view.Status)

	_, err = uc.Group(ctx, 1, 2, "no such message")
	assert.ErrorIs(t, err, domain.ErrPropositionNotFound)
}
