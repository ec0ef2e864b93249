// Package profile manages the person records the matchmaking core consumes:
// creation at account validation, incremental completion across the
// four-step wizard, and the soft lifecycle (prospect, member, archived).
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/matching"
	"github.com/mawadda-app/agency-backend/internal/repository"
)

const wizardSteps = 4

type UseCase struct {
	profileRepo repository.ProfileRepository
}

func NewUseCase(profileRepo repository.ProfileRepository) *UseCase {
	return &UseCase{profileRepo: profileRepo}
}

type CreateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=2,max=100"`
	Gender      string `json:"gender" binding:"required,oneof=male female"`
	BirthDate   *time.Time `json:"birth_date"`
	Phone       *string    `json:"phone" binding:"omitempty,max=20"`
}

// UpdateProfileRequest carries one wizard step's worth of fields; everything
// is optional and only provided fields are applied.
type UpdateProfileRequest struct {
	Step int `json:"step" binding:"omitempty,min=1,max=4"`

	DisplayName      *string    `json:"display_name" binding:"omitempty,min=2,max=100"`
	Phone            *string    `json:"phone" binding:"omitempty,max=20"`
	BirthDate        *time.Time `json:"birth_date"`
	Religion         *string    `json:"religion"`
	IncomeBracket    *string    `json:"income_bracket" binding:"omitempty,income_bracket"`
	EducationLevel   *string    `json:"education_level"`
	EmploymentStatus *string    `json:"employment_status"`
	MaritalStatus    *string    `json:"marital_status"`
	CountryResidence *string    `json:"country_residence"`
	CityResidence    *string    `json:"city_residence"`
	CountryOrigin    *string    `json:"country_origin"`
	CityOrigin       *string    `json:"city_origin"`
	HealthStatuses   *[]string  `json:"health_statuses"`
	Smoking          *string    `json:"smoking"`
	Drinking         *string    `json:"drinking"`
	HasChildren      *bool      `json:"has_children"`
	ChildrenCount    *int       `json:"children_count" binding:"omitempty,min=0,max=20"`
	ChildrenGuardian *string    `json:"children_guardian"`
	Housing          *string    `json:"housing"`
	Motorized        *bool      `json:"motorized"`
	Sport            *string    `json:"sport"`
	Hobbies          *[]string  `json:"hobbies" binding:"omitempty,max=20"`
	OriginTag        *string    `json:"origin_tag"`

	Veil                   *string `json:"veil"`
	AcceptsPolygamy        *bool   `json:"accepts_polygamy"`
	AcceptsForeignMarriage *bool   `json:"accepts_foreign_marriage"`
	WorksAfterMarriage     *bool   `json:"works_after_marriage"`

	PrefAgeTolerance    *int      `json:"pref_age_tolerance" binding:"omitempty,min=0,max=50"`
	PrefMaritalStatuses *[]string `json:"pref_marital_statuses"`
	PrefCountries       *[]string `json:"pref_countries"`
	PrefCities          *[]string `json:"pref_cities"`
	PrefEducation       *string   `json:"pref_education"`
	PrefEmployment      *string   `json:"pref_employment"`
	PrefMinIncome       *string   `json:"pref_min_income" binding:"omitempty,income_bracket"`
	PrefReligion        *string   `json:"pref_religion"`
	PrefHealthStatuses  *[]string `json:"pref_health_statuses"`
	PrefSmoking         *string   `json:"pref_smoking"`
	PrefDrinking        *string   `json:"pref_drinking"`
	PrefHasChildren     *bool     `json:"pref_has_children"`
	PrefHousing         *string   `json:"pref_housing"`
	PrefSport           *string   `json:"pref_sport"`
}

// ProfileResponse adds the display-only completeness metric.
type ProfileResponse struct {
	*domain.Profile
	Completeness int `json:"completeness"`
}

// Create registers a new prospect assigned to the calling matchmaker.
func (uc *UseCase) Create(ctx context.Context, actorID int, req *CreateProfileRequest) (*domain.Profile, error) {
	p := &domain.Profile{
		MatchmakerID: &actorID,
		DisplayName:  req.DisplayName,
		Gender:       req.Gender,
		Status:       domain.ProfileStatusProspect,
		BirthDate:    req.BirthDate,
		Phone:        req.Phone,
	}
	if err := uc.profileRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

// Get returns a profile with completeness. Read access is not restricted to
// the owner: any matchmaker may inspect a candidate they were suggested.
func (uc *UseCase) Get(ctx context.Context, profileID int) (*ProfileResponse, error) {
	p, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{Profile: p, Completeness: matching.Completeness(p)}, nil
}

// Update applies one wizard step. Only the assigned matchmaker may mutate a
// profile; the wizard step only ever advances.
func (uc *UseCase) Update(ctx context.Context, actorID, profileID int, req *UpdateProfileRequest) (*ProfileResponse, error) {
	p, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(actorID) {
		return nil, domain.ErrNotPermitted
	}

	applyUpdate(p, req)
	if req.Step > p.WizardStep {
		p.WizardStep = req.Step
		if p.WizardStep > wizardSteps {
			p.WizardStep = wizardSteps
		}
	}

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &ProfileResponse{Profile: p, Completeness: matching.Completeness(p)}, nil
}

// Validate promotes a prospect to paying member, making it visible in
// candidate pools.
func (uc *UseCase) Validate(ctx context.Context, actorID, profileID int) (*domain.Profile, error) {
	p, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(actorID) {
		return nil, domain.ErrNotPermitted
	}
	if p.Status != domain.ProfileStatusProspect {
		return nil, domain.StateError("profile is already %s", p.Status)
	}
	p.Status = domain.ProfileStatusMember
	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Archive soft-retires a profile; the record itself is never deleted.
func (uc *UseCase) Archive(ctx context.Context, actorID, profileID int) (*domain.Profile, error) {
	p, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(actorID) {
		return nil, domain.ErrNotPermitted
	}
	if p.Status == domain.ProfileStatusArchived {
		return nil, domain.StateError("profile is already archived")
	}
	p.Status = domain.ProfileStatusArchived
	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListMine returns the caller's assigned profiles.
func (uc *UseCase) ListMine(ctx context.Context, actorID, limit, offset int) ([]*ProfileResponse, error) {
	profiles, err := uc.profileRepo.ListByMatchmaker(ctx, actorID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, &ProfileResponse{Profile: p, Completeness: matching.Completeness(p)})
	}
	return out, nil
}

func applyUpdate(p *domain.Profile, req *UpdateProfileRequest) {
	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.BirthDate != nil {
		p.BirthDate = req.BirthDate
	}
	if req.Religion != nil {
		p.Religion = req.Religion
	}
	if req.IncomeBracket != nil {
		p.IncomeBracket = req.IncomeBracket
	}
	if req.EducationLevel != nil {
		p.EducationLevel = req.EducationLevel
	}
	if req.EmploymentStatus != nil {
		p.EmploymentStatus = req.EmploymentStatus
	}
	if req.MaritalStatus != nil {
		p.MaritalStatus = req.MaritalStatus
	}
	if req.CountryResidence != nil {
		p.CountryResidence = req.CountryResidence
	}
	if req.CityResidence != nil {
		p.CityResidence = req.CityResidence
	}
	if req.CountryOrigin != nil {
		p.CountryOrigin = req.CountryOrigin
	}
	if req.CityOrigin != nil {
		p.CityOrigin = req.CityOrigin
	}
	if req.HealthStatuses != nil {
		p.HealthStatuses = *req.HealthStatuses
	}
	if req.Smoking != nil {
		p.Smoking = req.Smoking
	}
	if req.Drinking != nil {
		p.Drinking = req.Drinking
	}
	if req.HasChildren != nil {
		p.HasChildren = req.HasChildren
	}
	if req.ChildrenCount != nil {
		p.ChildrenCount = req.ChildrenCount
	}
	if req.ChildrenGuardian != nil {
		p.ChildrenGuardian = req.ChildrenGuardian
	}
	if req.Housing != nil {
		p.Housing = req.Housing
	}
	if req.Motorized != nil {
		p.Motorized = req.Motorized
	}
	if req.Sport != nil {
		p.Sport = req.Sport
	}
	if req.Hobbies != nil {
		p.Hobbies = *req.Hobbies
	}
	if req.OriginTag != nil {
		p.OriginTag = req.OriginTag
	}
	if req.Veil != nil {
		p.Veil = req.Veil
	}
	if req.AcceptsPolygamy != nil {
		p.AcceptsPolygamy = req.AcceptsPolygamy
	}
	if req.AcceptsForeignMarriage != nil {
		p.AcceptsForeignMarriage = req.AcceptsForeignMarriage
	}
	if req.WorksAfterMarriage != nil {
		p.WorksAfterMarriage = req.WorksAfterMarriage
	}
	if req.PrefAgeTolerance != nil {
		p.PrefAgeTolerance = req.PrefAgeTolerance
	}
	if req.PrefMaritalStatuses != nil {
		p.PrefMaritalStatuses = *req.PrefMaritalStatuses
	}
	if req.PrefCountries != nil {
		p.PrefCountries = *req.PrefCountries
	}
	if req.PrefCities != nil {
		p.PrefCities = *req.PrefCities
	}
	if req.PrefEducation != nil {
		p.PrefEducation = req.PrefEducation
	}
	if req.PrefEmployment != nil {
		p.PrefEmployment = req.PrefEmployment
	}
	if req.PrefMinIncome != nil {
		p.PrefMinIncome = req.PrefMinIncome
	}
	if req.PrefReligion != nil {
		p.PrefReligion = req.PrefReligion
	}
	if req.PrefHealthStatuses != nil {
		p.PrefHealthStatuses = *req.PrefHealthStatuses
	}
	if req.PrefSmoking != nil {
		p.PrefSmoking = req.PrefSmoking
	}
	if req.PrefDrinking != nil {
		p.PrefDrinking = req.PrefDrinking
	}
	if req.PrefHasChildren != nil {
		p.PrefHasChildren = req.PrefHasChildren
	}
	if req.PrefHousing != nil {
		p.PrefHousing = req.PrefHousing
	}
	if req.PrefSport != nil {
		p.PrefSport = req.PrefSport
	}
}
