package domain

import "time"

// Gender values stored on a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Profile lifecycle states. Profiles are never hard-deleted; archiving is a
// status change.
const (
	ProfileStatusProspect = "prospect"
	ProfileStatusMember   = "member"
	ProfileStatusArchived = "archived"
)

// Profile holds a person's demographic attributes and the preferences that
// describe the counterpart they are looking for. Almost everything is
// optional: profiles are filled in over a four-step wizard and the scorer
// treats absent fields as "no preference" or "no match", never as an error.
type Profile struct {
	ID           int     `json:"id" db:"id"`
	MatchmakerID *int    `json:"matchmaker_id" db:"matchmaker_id"`
	DisplayName  string  `json:"display_name" db:"display_name"`
	Gender       string  `json:"gender" db:"gender"`
	Status       string  `json:"status" db:"status"`
	WizardStep   int     `json:"wizard_step" db:"wizard_step"`
	Phone        *string `json:"phone" db:"phone"`

	BirthDate        *time.Time `json:"birth_date" db:"birth_date"`
	Religion         *string    `json:"religion" db:"religion"`
	IncomeBracket    *string    `json:"income_bracket" db:"income_bracket"`
	EducationLevel   *string    `json:"education_level" db:"education_level"`
	EmploymentStatus *string    `json:"employment_status" db:"employment_status"`
	MaritalStatus    *string    `json:"marital_status" db:"marital_status"`
	CountryResidence *string    `json:"country_residence" db:"country_residence"`
	CityResidence    *string    `json:"city_residence" db:"city_residence"`
	CountryOrigin    *string    `json:"country_origin" db:"country_origin"`
	CityOrigin       *string    `json:"city_origin" db:"city_origin"`
	HealthStatuses   []string   `json:"health_statuses" db:"health_statuses"`
	Smoking          *string    `json:"smoking" db:"smoking"`
	Drinking         *string    `json:"drinking" db:"drinking"`
	HasChildren      *bool      `json:"has_children" db:"has_children"`
	ChildrenCount    *int       `json:"children_count" db:"children_count"`
	ChildrenGuardian *string    `json:"children_guardian" db:"children_guardian"`
	Housing          *string    `json:"housing" db:"housing"`
	Motorized        *bool      `json:"motorized" db:"motorized"`
	Sport            *string    `json:"sport" db:"sport"`
	Hobbies          []string   `json:"hobbies" db:"hobbies"`
	OriginTag        *string    `json:"origin_tag" db:"origin_tag"`

	// Attributes only meaningful for female profiles; filters targeting them
	// are ignored when the reference is not searching for a woman.
	Veil                   *string `json:"veil" db:"veil"`
	AcceptsPolygamy        *bool   `json:"accepts_polygamy" db:"accepts_polygamy"`
	AcceptsForeignMarriage *bool   `json:"accepts_foreign_marriage" db:"accepts_foreign_marriage"`
	WorksAfterMarriage     *bool   `json:"works_after_marriage" db:"works_after_marriage"`

	// Preferences for the counterpart being sought.
	PrefAgeTolerance    *int     `json:"pref_age_tolerance" db:"pref_age_tolerance"`
	PrefMaritalStatuses []string `json:"pref_marital_statuses" db:"pref_marital_statuses"`
	PrefCountries       []string `json:"pref_countries" db:"pref_countries"`
	PrefCities          []string `json:"pref_cities" db:"pref_cities"`
	PrefEducation       *string  `json:"pref_education" db:"pref_education"`
	PrefEmployment      *string  `json:"pref_employment" db:"pref_employment"`
	PrefMinIncome       *string  `json:"pref_min_income" db:"pref_min_income"`
	PrefReligion        *string  `json:"pref_religion" db:"pref_religion"`
	PrefHealthStatuses  []string `json:"pref_health_statuses" db:"pref_health_statuses"`
	PrefSmoking         *string  `json:"pref_smoking" db:"pref_smoking"`
	PrefDrinking        *string  `json:"pref_drinking" db:"pref_drinking"`
	PrefHasChildren     *bool    `json:"pref_has_children" db:"pref_has_children"`
	PrefHousing         *string  `json:"pref_housing" db:"pref_housing"`
	PrefSport           *string  `json:"pref_sport" db:"pref_sport"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AgeAt returns full years since birth date at the given instant, decremented
// when the birthday has not yet been reached that year. Returns -1 when the
// birth date is unset.
func (p *Profile) AgeAt(now time.Time) int {
	if p.BirthDate == nil {
		return -1
	}
	b := *p.BirthDate
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age
}

// OwnedBy reports whether the profile is assigned to the given matchmaker.
func (p *Profile) OwnedBy(matchmakerID int) bool {
	return p.MatchmakerID != nil && *p.MatchmakerID == matchmakerID
}

// SeeksGender returns the gender of the counterpart the profile searches for,
// or "" when the profile's own gender is unset.
func (p *Profile) SeeksGender() string {
	switch p.Gender {
	case GenderMale:
		return GenderFemale
	case GenderFemale:
		return GenderMale
	}
	return ""
}

// incomeLevels is the ordinal ladder used by the income criterion and the
// minimum-income filter. Unknown labels resolve to level 0.
var incomeLevels = map[string]int{
	"0-2500":      1,
	"2500-5000":   2,
	"5000-10000":  3,
	"10000-20000": 4,
	"20000-50000": 5,
	"50000+":      6,
}

// IncomeLevel maps an income bracket label to its ordinal level.
func IncomeLevel(label string) int {
	return incomeLevels[label]
}
