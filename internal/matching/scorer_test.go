package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mawadda-app/agency-backend/internal/domain"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func birth(year int) *time.Time {
	t := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestScorerFullPair(t *testing.T) {
	reference := &domain.Profile{
		BirthDate:     birth(1990), // 35 at testNow
		PrefCountries: []string{"France"},
		PrefReligion:  strPtr("muslim"),
		PrefMinIncome: strPtr("2500-5000"),
		PrefEducation: strPtr("master"),
		Hobbies:       []string{"reading", "cooking", "travel"},
	}
	candidate := &domain.Profile{
		BirthDate:        birth(1998), // 27, inside [25, 45]
		CountryResidence: strPtr("France"),
		Religion:         strPtr("muslim"),
		IncomeBracket:    strPtr("5000-10000"),
		EducationLevel:   strPtr("bachelor"),
		Hobbies:          []string{"cooking", "travel", "chess"},
	}

	score := NewScorer().Score(reference, candidate, testNow)

	// age 20 + country 10 + religion 10 + income 10 + education 0 + hobbies 2
	assert.Equal(t, 52.0, score.Total)

	require.Contains(t, score.Breakdown, CriterionAge)
	assert.True(t, score.Breakdown[CriterionAge].Matched)
	assert.Equal(t, "age 27, window 25-45", score.Breakdown[CriterionAge].Detail)

	assert.Equal(t, "residence: France", score.Breakdown[CriterionCountry].Detail)

	// Missed preferences stay visible with zero points.
	require.Contains(t, score.Breakdown, CriterionEducation)
	assert.False(t, score.Breakdown[CriterionEducation].Matched)
	assert.Equal(t, 0.0, score.Breakdown[CriterionEducation].Points)

	assert.Equal(t, 2.0, score.Breakdown[CriterionHobbies].Points)
}

func TestScorerDeterministic(t *testing.T) {
	reference := &domain.Profile{
		BirthDate:    birth(1985),
		PrefReligion: strPtr("muslim"),
		Hobbies:      []string{"hiking", "music"},
	}
	candidate := &domain.Profile{
		BirthDate: birth(1988),
		Religion:  strPtr("muslim"),
		Hobbies:   []string{"music"},
	}

	s := NewScorer()
	first := s.Score(reference, candidate, testNow)
	second := s.Score(reference, candidate, testNow)
	assert.Equal(t, first, second)
}

func TestScorerAgeWindow(t *testing.T) {
	tests := []struct {
		name      string
		refBirth  int
		cndBirth  int
		tolerance *int
		matched   bool
	}{
		{"inside window", 1985, 1990, intPtr(10), true},
		{"upper boundary inclusive", 1985, 1975, intPtr(10), true}, // 40+10=50, candidate 50
		{"above upper boundary", 1985, 1974, intPtr(10), false},
		{"lower boundary inclusive", 1985, 1995, intPtr(10), true},
		{"below lower boundary", 1985, 1996, intPtr(10), false},
		{"zero tolerance same age", 1985, 1985, intPtr(0), true},
		{"zero tolerance off by one", 1985, 1986, intPtr(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reference := &domain.Profile{BirthDate: birth(tt.refBirth), PrefAgeTolerance: tt.tolerance}
			candidate := &domain.Profile{BirthDate: birth(tt.cndBirth)}
			score := NewScorer().Score(reference, candidate, testNow)
			require.Contains(t, score.Breakdown, CriterionAge)
			assert.Equal(t, tt.matched, score.Breakdown[CriterionAge].Matched)
		})
	}
}

func TestScorerAgeWindowClampedToMinimum(t *testing.T) {
	// Reference is 22; window floor is 18, not 22-10=12.
	reference := &domain.Profile{BirthDate: birth(2003)}
	candidate := &domain.Profile{BirthDate: birth(2006)} // 19

	score := NewScorer().Score(reference, candidate, testNow)
	require.Contains(t, score.Breakdown, CriterionAge)
	assert.True(t, score.Breakdown[CriterionAge].Matched)
	assert.Equal(t, "age 19, window 18-32", score.Breakdown[CriterionAge].Detail)
}

func TestScorerAgeSkippedWithoutBirthDate(t *testing.T) {
	reference := &domain.Profile{BirthDate: birth(1990)}
	candidate := &domain.Profile{}

	score := NewScorer().Score(reference, candidate, testNow)
	assert.NotContains(t, score.Breakdown, CriterionAge)
	assert.Equal(t, 0.0, score.Total)
}

func TestScorerIncomeLadder(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		have    *string
		matched bool
	}{
		{"above minimum", "2500-5000", strPtr("20000-50000"), true},
		{"exactly minimum", "2500-5000", strPtr("2500-5000"), true},
		{"below minimum", "10000-20000", strPtr("0-2500"), false},
		{"unset bracket", "0-2500", nil, false},
		{"unmapped bracket counts as zero", "0-2500", strPtr("plenty"), false},
		{"unmapped minimum accepts anything", "whatever", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reference := &domain.Profile{PrefMinIncome: strPtr(tt.want)}
			candidate := &domain.Profile{IncomeBracket: tt.have}
			score := NewScorer().Score(reference, candidate, testNow)
			require.Contains(t, score.Breakdown, CriterionIncome)
			assert.Equal(t, tt.matched, score.Breakdown[CriterionIncome].Matched)
		})
	}
}

func TestScorerHobbiesOverlap(t *testing.T) {
	reference := &domain.Profile{
		Hobbies: []string{"a", "b", "c", "d", "e", "f", "g"},
	}
	candidate := &domain.Profile{
		Hobbies: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
	}

	s := NewScorer()
	score := s.Score(reference, candidate, testNow)
	assert.Equal(t, 7.0, score.Breakdown[CriterionHobbies].Points)

	s.ClampHobbies = true
	score = s.Score(reference, candidate, testNow)
	assert.Equal(t, Weights[CriterionHobbies], score.Breakdown[CriterionHobbies].Points)
}

func TestScorerOriginPresenceCredit(t *testing.T) {
	reference := &domain.Profile{}

	score := NewScorer().Score(reference, &domain.Profile{OriginTag: strPtr("kabyle")}, testNow)
	require.Contains(t, score.Breakdown, CriterionOrigin)
	assert.Equal(t, Weights[CriterionOrigin], score.Breakdown[CriterionOrigin].Points)

	score = NewScorer().Score(reference, &domain.Profile{}, testNow)
	assert.NotContains(t, score.Breakdown, CriterionOrigin)
}

func TestScorerPlaceFallsBackToOrigin(t *testing.T) {
	reference := &domain.Profile{PrefCities: []string{"Lyon"}}
	candidate := &domain.Profile{
		CityResidence: strPtr("Paris"),
		CityOrigin:    strPtr("Lyon"),
	}

	score := NewScorer().Score(reference, candidate, testNow)
	require.Contains(t, score.Breakdown, CriterionCity)
	assert.True(t, score.Breakdown[CriterionCity].Matched)
	assert.Equal(t, "origin: Lyon", score.Breakdown[CriterionCity].Detail)
}

func TestScorerHealthIntersection(t *testing.T) {
	reference := &domain.Profile{PrefHealthStatuses: []string{"healthy", "minor_condition"}}

	score := NewScorer().Score(reference, &domain.Profile{HealthStatuses: []string{"minor_condition"}}, testNow)
	assert.True(t, score.Breakdown[CriterionHealth].Matched)

	score = NewScorer().Score(reference, &domain.Profile{HealthStatuses: []string{"chronic"}}, testNow)
	assert.False(t, score.Breakdown[CriterionHealth].Matched)
}
