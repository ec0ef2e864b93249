package matchmaking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/matching"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

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

func (f *fakeProfileRepo) ListEligible(_ context.Context, gender string, excludeID int) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for id := 1; id <= len(f.profiles)+10; id++ {
		p, ok := f.profiles[id]
		if ok && p.ID != excludeID && p.Gender == gender && p.Status == domain.ProfileStatusMember {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) ListByMatchmaker(context.Context, int, int, int) ([]*domain.Profile, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }

func birth(year int) *time.Time {
	t := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func newTestUseCase(profiles map[int]*domain.Profile) *UseCase {
	return &UseCase{
		profileRepo: &fakeProfileRepo{profiles: profiles},
		scorer:      matching.NewScorer(),
		logger:      zap.NewNop(),
		now:         func() time.Time { return testNow },
	}
}

func TestScoreCandidatesRanking(t *testing.T) {
	uc := newTestUseCase(map[int]*domain.Profile{
		1: {
			ID: 1, Gender: domain.GenderMale, Status: domain.ProfileStatusMember,
			BirthDate:    birth(1990),
			PrefReligion: strPtr("muslim"),
			Hobbies:      []string{"reading", "cooking"},
		},
		// Matches religion and one hobby.
		2: {
			ID: 2, Gender: domain.GenderFemale, Status: domain.ProfileStatusMember,
			BirthDate: birth(1992), Religion: strPtr("muslim"), Hobbies: []string{"cooking"},
		},
		// Matches nothing beyond age.
		3: {
			ID: 3, Gender: domain.GenderFemale, Status: domain.ProfileStatusMember,
			BirthDate: birth(1993),
		},
		// Wrong gender: never in the pool.
		4: {
			ID: 4, Gender: domain.GenderMale, Status: domain.ProfileStatusMember,
			BirthDate: birth(1991), Religion: strPtr("muslim"),
		},
		// Prospect: not eligible.
		5: {
			ID: 5, Gender: domain.GenderFemale, Status: domain.ProfileStatusProspect,
			BirthDate: birth(1992), Religion: strPtr("muslim"),
		},
	})

	results, err := uc.ScoreCandidates(context.Background(), 1, matching.FilterSpec{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].CandidateID)
	assert.Equal(t, 3, results[1].CandidateID)
	assert.Greater(t, results[0].Total, results[1].Total)
}

func TestScoreCandidatesTieBreaksOnID(t *testing.T) {
	uc := newTestUseCase(map[int]*domain.Profile{
		1: {ID: 1, Gender: domain.GenderFemale, Status: domain.ProfileStatusMember},
		7: {ID: 7, Gender: domain.GenderMale, Status: domain.ProfileStatusMember},
		3: {ID: 3, Gender: domain.GenderMale, Status: domain.ProfileStatusMember},
	})

	results, err := uc.ScoreCandidates(context.Background(), 1, matching.FilterSpec{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].CandidateID)
	assert.Equal(t, 7, results[1].CandidateID)
}

func TestScoreCandidatesAppliesFilter(t *testing.T) {
	uc := newTestUseCase(map[int]*domain.Profile{
		1: {ID: 1, Gender: domain.GenderMale, Status: domain.ProfileStatusMember},
		2: {
			ID: 2, Gender: domain.GenderFemale, Status: domain.ProfileStatusMember,
			CountryResidence: strPtr("France"),
		},
		3: {
			ID: 3, Gender: domain.GenderFemale, Status: domain.ProfileStatusMember,
			CountryResidence: strPtr("Belgium"),
		},
	})

	results, err := uc.ScoreCandidates(context.Background(), 1, matching.FilterSpec{
		Countries: []string{"France"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].CandidateID)
}

func TestScoreCandidatesRequiresGender(t *testing.T) {
	uc := newTestUseCase(map[int]*domain.Profile{
		1: {ID: 1, Status: domain.ProfileStatusMember},
	})

	_, err := uc.ScoreCandidates(context.Background(), 1, matching.FilterSpec{})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestSuggestIntroductionDisabledWithoutClient(t *testing.T) {
	uc := newTestUseCase(map[int]*domain.Profile{
		1: {ID: 1, Gender: domain.GenderMale, Status: domain.ProfileStatusMember},
		2: {ID: 2, Gender: domain.GenderFemale, Status: domain.ProfileStatusMember},
	})

	_, err := uc.SuggestIntroduction(context.Background(), 1, 2)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
