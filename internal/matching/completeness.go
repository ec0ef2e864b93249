package matching

import "github.com/mawadda-app/agency-backend/internal/domain"

// Completeness is the percentage of optional profile fields that are
// populated. Display-only: it never feeds into a score.
func Completeness(p *domain.Profile) int {
	fields := []bool{
		p.BirthDate != nil,
		p.Religion != nil,
		p.IncomeBracket != nil,
		p.EducationLevel != nil,
		p.EmploymentStatus != nil,
		p.MaritalStatus != nil,
		p.CountryResidence != nil,
		p.CityResidence != nil,
		p.CountryOrigin != nil,
		p.CityOrigin != nil,
		len(p.HealthStatuses) > 0,
		p.Smoking != nil,
		p.Drinking != nil,
		p.HasChildren != nil,
		p.Housing != nil,
		p.Motorized != nil,
		p.Sport != nil,
		len(p.Hobbies) > 0,
		p.OriginTag != nil,
		p.Phone != nil,
	}
	set := 0
	for _, ok := range fields {
		if ok {
			set++
		}
	}
	return set * 100 / len(fields)
}
