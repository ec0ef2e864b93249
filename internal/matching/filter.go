package matching

import (
	"time"

	"github.com/mawadda-app/agency-backend/internal/domain"
)

// FilterSpec is the explicit, per-call filter over a candidate pool. Zero
// values impose no constraint; every populated field is a hard AND-ed
// predicate. Filtering decides eligibility, scoring decides ranking — the two
// stages never mix.
type FilterSpec struct {
	AgeMin             *int     `json:"age_min" binding:"omitempty,min=18,max=99"`
	AgeMax             *int     `json:"age_max" binding:"omitempty,min=18,max=99"`
	Countries          []string `json:"countries"`
	Cities             []string `json:"cities"`
	MaritalStatuses    []string `json:"marital_statuses"`
	Religion           *string  `json:"religion"`
	EducationLevels    []string `json:"education_levels"`
	EmploymentStatuses []string `json:"employment_statuses"`
	MinIncome          *string  `json:"min_income"`
	Smoking            *string  `json:"smoking"`
	Drinking           *string  `json:"drinking"`
	HasChildren        *bool    `json:"has_children"`
	HealthStatuses     []string `json:"health_statuses"`
	Housing            *string  `json:"housing"`
	Sport              *string  `json:"sport"`

	// Only meaningful when the reference searches for a female counterpart;
	// silently ignored otherwise.
	Veils                  []string `json:"veils"`
	AcceptsPolygamy        *bool    `json:"accepts_polygamy"`
	AcceptsForeignMarriage *bool    `json:"accepts_foreign_marriage"`
	WorksAfterMarriage     *bool    `json:"works_after_marriage"`
}

// IsZero reports whether the filter imposes no constraint at all.
func (f FilterSpec) IsZero() bool {
	return f.AgeMin == nil && f.AgeMax == nil &&
		len(f.Countries) == 0 && len(f.Cities) == 0 &&
		len(f.MaritalStatuses) == 0 && f.Religion == nil &&
		len(f.EducationLevels) == 0 && len(f.EmploymentStatuses) == 0 &&
		f.MinIncome == nil && f.Smoking == nil && f.Drinking == nil &&
		f.HasChildren == nil && len(f.HealthStatuses) == 0 &&
		f.Housing == nil && f.Sport == nil &&
		len(f.Veils) == 0 && f.AcceptsPolygamy == nil &&
		f.AcceptsForeignMarriage == nil && f.WorksAfterMarriage == nil
}

// Apply reduces pool to the candidates passing every populated predicate.
// The reference profile supplies the gender context gating the
// female-specific predicates.
func Apply(reference *domain.Profile, pool []*domain.Profile, spec FilterSpec, now time.Time) []*domain.Profile {
	womenSought := reference.SeeksGender() == domain.GenderFemale
	out := make([]*domain.Profile, 0, len(pool))
	for _, c := range pool {
		if passes(c, spec, womenSought, now) {
			out = append(out, c)
		}
	}
	return out
}

func passes(c *domain.Profile, spec FilterSpec, womenSought bool, now time.Time) bool {
	if spec.AgeMin != nil || spec.AgeMax != nil {
		age := c.AgeAt(now)
		if age < 0 {
			return false
		}
		if spec.AgeMin != nil && age < *spec.AgeMin {
			return false
		}
		if spec.AgeMax != nil && age > *spec.AgeMax {
			return false
		}
	}
	if len(spec.Countries) > 0 && !inSetPtr(spec.Countries, c.CountryResidence) {
		return false
	}
	if len(spec.Cities) > 0 && !inSetPtr(spec.Cities, c.CityResidence) {
		return false
	}
	if len(spec.MaritalStatuses) > 0 && !inSetPtr(spec.MaritalStatuses, c.MaritalStatus) {
		return false
	}
	if spec.Religion != nil && !equalStr(c.Religion, *spec.Religion) {
		return false
	}
	if len(spec.EducationLevels) > 0 && !inSetPtr(spec.EducationLevels, c.EducationLevel) {
		return false
	}
	if len(spec.EmploymentStatuses) > 0 && !inSetPtr(spec.EmploymentStatuses, c.EmploymentStatus) {
		return false
	}
	if spec.MinIncome != nil {
		have := 0
		if c.IncomeBracket != nil {
			have = domain.IncomeLevel(*c.IncomeBracket)
		}
		if have < domain.IncomeLevel(*spec.MinIncome) {
			return false
		}
	}
	if spec.Smoking != nil && !equalStr(c.Smoking, *spec.Smoking) {
		return false
	}
	if spec.Drinking != nil && !equalStr(c.Drinking, *spec.Drinking) {
		return false
	}
	if spec.HasChildren != nil && (c.HasChildren == nil || *c.HasChildren != *spec.HasChildren) {
		return false
	}
	if len(spec.HealthStatuses) > 0 && len(intersect(spec.HealthStatuses, c.HealthStatuses)) == 0 {
		return false
	}
	if spec.Housing != nil && !equalStr(c.Housing, *spec.Housing) {
		return false
	}
	if spec.Sport != nil && !equalStr(c.Sport, *spec.Sport) {
		return false
	}

	if womenSought {
		if len(spec.Veils) > 0 && !inSetPtr(spec.Veils, c.Veil) {
			return false
		}
		if spec.AcceptsPolygamy != nil && (c.AcceptsPolygamy == nil || *c.AcceptsPolygamy != *spec.AcceptsPolygamy) {
			return false
		}
		if spec.AcceptsForeignMarriage != nil && (c.AcceptsForeignMarriage == nil || *c.AcceptsForeignMarriage != *spec.AcceptsForeignMarriage) {
			return false
		}
		if spec.WorksAfterMarriage != nil && (c.WorksAfterMarriage == nil || *c.WorksAfterMarriage != *spec.WorksAfterMarriage) {
			return false
		}
	}
	return true
}

func inSetPtr(set []string, value *string) bool {
	return value != nil && contains(set, *value)
}
