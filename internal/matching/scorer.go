// Package matching holds the compatibility scorer and the candidate filter
// engine. Everything here is pure: no storage, no clocks other than the
// instant passed in, safe to run per candidate in parallel.
package matching

import (
	"fmt"
	"strings"
	"time"

	"github.com/mawadda-app/agency-backend/internal/domain"
)

// Criterion names as they appear in score breakdowns.
const (
	CriterionAge           = "age"
	CriterionCountry       = "country"
	CriterionCity          = "city"
	CriterionReligion      = "religion"
	CriterionIncome        = "income"
	CriterionEducation     = "education"
	CriterionEmployment    = "employment"
	CriterionMaritalStatus = "marital_status"
	CriterionHealth        = "health"
	CriterionSmoking       = "smoking"
	CriterionDrinking      = "drinking"
	CriterionHasChildren   = "has_children"
	CriterionHousing       = "housing"
	CriterionSport         = "sport"
	CriterionHobbies       = "hobbies"
	CriterionOrigin        = "origin"
)

// Weights are the fixed maximum points per criterion. The total scale is
// their sum; scores are raw sums, not normalized.
var Weights = map[string]float64{
	CriterionAge:           20,
	CriterionCountry:       10,
	CriterionCity:          10,
	CriterionReligion:      10,
	CriterionIncome:        10,
	CriterionEducation:     15,
	CriterionEmployment:    10,
	CriterionMaritalStatus: 10,
	CriterionHealth:        10,
	CriterionSmoking:       5,
	CriterionDrinking:      5,
	CriterionHasChildren:   5,
	CriterionHousing:       5,
	CriterionSport:         5,
	CriterionHobbies:       5,
	CriterionOrigin:        5,
}

// MinimumAge is the lower bound of every age window.
const MinimumAge = 18

// CriterionScore is one breakdown entry. Points is either the full weight or
// zero, except for hobbies where it is the overlap count. Unmatched criteria
// stay in the breakdown whenever the reference expressed a preference, so
// callers can explain why a candidate fell short.
type CriterionScore struct {
	Criterion string  `json:"criterion"`
	Points    float64 `json:"points"`
	Max       float64 `json:"max"`
	Matched   bool    `json:"matched"`
	Detail    string  `json:"detail,omitempty"`
}

// Score is the result of comparing one candidate against a reference.
type Score struct {
	Total     float64                   `json:"total"`
	Breakdown map[string]CriterionScore `json:"breakdown"`
}

// Scorer computes weighted compatibility scores.
type Scorer struct {
	// DefaultAgeTolerance widens the age window when the reference has no
	// explicit tolerance preference.
	DefaultAgeTolerance int
	// ClampHobbies caps the hobbies overlap at the criterion weight. The
	// historical behaviour adds the raw overlap count, so this is off by
	// default.
	ClampHobbies bool
}

// NewScorer returns a scorer with the default tolerance of 10 years.
func NewScorer() *Scorer {
	return &Scorer{DefaultAgeTolerance: 10}
}

// Score compares candidate against reference at the given instant. Missing
// optional fields never error: a criterion with no stated preference is
// omitted, a stated preference the candidate misses is reported with zero
// points.
func (s *Scorer) Score(reference, candidate *domain.Profile, now time.Time) Score {
	result := Score{Breakdown: make(map[string]CriterionScore)}

	add := func(criterion string, matched bool, points float64, detail string) {
		result.Breakdown[criterion] = CriterionScore{
			Criterion: criterion,
			Points:    points,
			Max:       Weights[criterion],
			Matched:   matched,
			Detail:    detail,
		}
		result.Total += points
	}
	full := func(criterion string, matched bool, detail string) {
		points := 0.0
		if matched {
			points = Weights[criterion]
		}
		add(criterion, matched, points, detail)
	}

	s.scoreAge(reference, candidate, now, full)

	if len(reference.PrefCountries) > 0 {
		matched, detail := matchPlace(reference.PrefCountries, candidate.CountryResidence, candidate.CountryOrigin)
		full(CriterionCountry, matched, detail)
	}
	if len(reference.PrefCities) > 0 {
		matched, detail := matchPlace(reference.PrefCities, candidate.CityResidence, candidate.CityOrigin)
		full(CriterionCity, matched, detail)
	}
	if reference.PrefReligion != nil {
		full(CriterionReligion, equalStr(candidate.Religion, *reference.PrefReligion), "")
	}
	if reference.PrefMinIncome != nil {
		want := domain.IncomeLevel(*reference.PrefMinIncome)
		have := 0
		if candidate.IncomeBracket != nil {
			have = domain.IncomeLevel(*candidate.IncomeBracket)
		}
		full(CriterionIncome, have >= want, fmt.Sprintf("level %d, minimum %d", have, want))
	}
	if reference.PrefEducation != nil {
		full(CriterionEducation, equalStr(candidate.EducationLevel, *reference.PrefEducation), "")
	}
	if reference.PrefEmployment != nil {
		full(CriterionEmployment, equalStr(candidate.EmploymentStatus, *reference.PrefEmployment), "")
	}
	if len(reference.PrefMaritalStatuses) > 0 {
		matched := candidate.MaritalStatus != nil && contains(reference.PrefMaritalStatuses, *candidate.MaritalStatus)
		full(CriterionMaritalStatus, matched, "")
	}
	if len(reference.PrefHealthStatuses) > 0 {
		common := intersect(reference.PrefHealthStatuses, candidate.HealthStatuses)
		full(CriterionHealth, len(common) > 0, strings.Join(common, ", "))
	}
	if reference.PrefSmoking != nil {
		full(CriterionSmoking, equalStr(candidate.Smoking, *reference.PrefSmoking), "")
	}
	if reference.PrefDrinking != nil {
		full(CriterionDrinking, equalStr(candidate.Drinking, *reference.PrefDrinking), "")
	}
	if reference.PrefHasChildren != nil {
		matched := candidate.HasChildren != nil && *candidate.HasChildren == *reference.PrefHasChildren
		full(CriterionHasChildren, matched, "")
	}
	if reference.PrefHousing != nil {
		full(CriterionHousing, equalStr(candidate.Housing, *reference.PrefHousing), "")
	}
	if reference.PrefSport != nil {
		full(CriterionSport, equalStr(candidate.Sport, *reference.PrefSport), "")
	}

	if len(reference.Hobbies) > 0 {
		overlap := intersect(reference.Hobbies, candidate.Hobbies)
		points := float64(len(overlap))
		if s.ClampHobbies && points > Weights[CriterionHobbies] {
			points = Weights[CriterionHobbies]
		}
		add(CriterionHobbies, len(overlap) > 0, points, strings.Join(overlap, ", "))
	}

	// Presence-only informational criterion: credit for carrying an origin
	// tag at all, no reference preference involved.
	if candidate.OriginTag != nil && *candidate.OriginTag != "" {
		full(CriterionOrigin, true, *candidate.OriginTag)
	}

	return result
}

// scoreAge applies the symmetric window [max(18, refAge-tol), refAge+tol].
// Either birth date missing skips the criterion entirely.
func (s *Scorer) scoreAge(reference, candidate *domain.Profile, now time.Time, full func(string, bool, string)) {
	if reference.BirthDate == nil || candidate.BirthDate == nil {
		return
	}
	tolerance := s.DefaultAgeTolerance
	if reference.PrefAgeTolerance != nil {
		tolerance = *reference.PrefAgeTolerance
	}
	refAge := reference.AgeAt(now)
	lo := refAge - tolerance
	if lo < MinimumAge {
		lo = MinimumAge
	}
	hi := refAge + tolerance
	age := candidate.AgeAt(now)
	full(CriterionAge, age >= lo && age <= hi, fmt.Sprintf("age %d, window %d-%d", age, lo, hi))
}

// matchPlace checks residence before origin against a preferred set and
// surfaces which one matched.
func matchPlace(preferred []string, residence, origin *string) (bool, string) {
	if residence != nil && contains(preferred, *residence) {
		return true, "residence: " + *residence
	}
	if origin != nil && contains(preferred, *origin) {
		return true, "origin: " + *origin
	}
	return false, ""
}

func equalStr(value *string, want string) bool {
	return value != nil && *value == want
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func intersect(a, b []string) []string {
	var out []string
	for _, x := range a {
		if contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}
