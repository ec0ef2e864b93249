package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, matchmaker_id, display_name, gender, status, wizard_step, phone,
	birth_date, religion, income_bracket, education_level, employment_status,
	marital_status, country_residence, city_residence, country_origin, city_origin,
	health_statuses, smoking, drinking, has_children, children_count, children_guardian,
	housing, motorized, sport, hobbies, origin_tag,
	veil, accepts_polygamy, accepts_foreign_marriage, works_after_marriage,
	pref_age_tolerance, pref_marital_statuses, pref_countries, pref_cities,
	pref_education, pref_employment, pref_min_income, pref_religion,
	pref_health_statuses, pref_smoking, pref_drinking, pref_has_children,
	pref_housing, pref_sport, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.MatchmakerID, &p.DisplayName, &p.Gender, &p.Status, &p.WizardStep, &p.Phone,
		&p.BirthDate, &p.Religion, &p.IncomeBracket, &p.EducationLevel, &p.EmploymentStatus,
		&p.MaritalStatus, &p.CountryResidence, &p.CityResidence, &p.CountryOrigin, &p.CityOrigin,
		pq.Array(&p.HealthStatuses), &p.Smoking, &p.Drinking, &p.HasChildren, &p.ChildrenCount, &p.ChildrenGuardian,
		&p.Housing, &p.Motorized, &p.Sport, pq.Array(&p.Hobbies), &p.OriginTag,
		&p.Veil, &p.AcceptsPolygamy, &p.AcceptsForeignMarriage, &p.WorksAfterMarriage,
		&p.PrefAgeTolerance, pq.Array(&p.PrefMaritalStatuses), pq.Array(&p.PrefCountries), pq.Array(&p.PrefCities),
		&p.PrefEducation, &p.PrefEmployment, &p.PrefMinIncome, &p.PrefReligion,
		pq.Array(&p.PrefHealthStatuses), &p.PrefSmoking, &p.PrefDrinking, &p.PrefHasChildren,
		&p.PrefHousing, &p.PrefSport, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			matchmaker_id, display_name, gender, status, wizard_step, phone,
			birth_date, religion, income_bracket, education_level, employment_status,
			marital_status, country_residence, city_residence, country_origin, city_origin,
			health_statuses, smoking, drinking, has_children, children_count, children_guardian,
			housing, motorized, sport, hobbies, origin_tag,
			veil, accepts_polygamy, accepts_foreign_marriage, works_after_marriage,
			pref_age_tolerance, pref_marital_statuses, pref_countries, pref_cities,
			pref_education, pref_employment, pref_min_income, pref_religion,
			pref_health_statuses, pref_smoking, pref_drinking, pref_has_children,
			pref_housing, pref_sport
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
		        $29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39, $40, $41,
		        $42, $43, $44, $45)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.MatchmakerID, profile.DisplayName, profile.Gender, profile.Status, profile.WizardStep, profile.Phone,
		profile.BirthDate, profile.Religion, profile.IncomeBracket, profile.EducationLevel, profile.EmploymentStatus,
		profile.MaritalStatus, profile.CountryResidence, profile.CityResidence, profile.CountryOrigin, profile.CityOrigin,
		pq.Array(profile.HealthStatuses), profile.Smoking, profile.Drinking, profile.HasChildren, profile.ChildrenCount, profile.ChildrenGuardian,
		profile.Housing, profile.Motorized, profile.Sport, pq.Array(profile.Hobbies), profile.OriginTag,
		profile.Veil, profile.AcceptsPolygamy, profile.AcceptsForeignMarriage, profile.WorksAfterMarriage,
		profile.PrefAgeTolerance, pq.Array(profile.PrefMaritalStatuses), pq.Array(profile.PrefCountries), pq.Array(profile.PrefCities),
		profile.PrefEducation, profile.PrefEmployment, profile.PrefMinIncome, profile.PrefReligion,
		pq.Array(profile.PrefHealthStatuses), profile.PrefSmoking, profile.PrefDrinking, profile.PrefHasChildren,
		profile.PrefHousing, profile.PrefSport,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET matchmaker_id = $1, display_name = $2, gender = $3, status = $4, wizard_step = $5, phone = $6,
		    birth_date = $7, religion = $8, income_bracket = $9, education_level = $10, employment_status = $11,
		    marital_status = $12, country_residence = $13, city_residence = $14, country_origin = $15, city_origin = $16,
		    health_statuses = $17, smoking = $18, drinking = $19, has_children = $20, children_count = $21, children_guardian = $22,
		    housing = $23, motorized = $24, sport = $25, hobbies = $26, origin_tag = $27,
		    veil = $28, accepts_polygamy = $29, accepts_foreign_marriage = $30, works_after_marriage = $31,
		    pref_age_tolerance = $32, pref_marital_statuses = $33, pref_countries = $34, pref_cities = $35,
		    pref_education = $36, pref_employment = $37, pref_min_income = $38, pref_religion = $39,
		    pref_health_statuses = $40, pref_smoking = $41, pref_drinking = $42, pref_has_children = $43,
		    pref_housing = $44, pref_sport = $45,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $46
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.MatchmakerID, profile.DisplayName, profile.Gender, profile.Status, profile.WizardStep, profile.Phone,
		profile.BirthDate, profile.Religion, profile.IncomeBracket, profile.EducationLevel, profile.EmploymentStatus,
		profile.MaritalStatus, profile.CountryResidence, profile.CityResidence, profile.CountryOrigin, profile.CityOrigin,
		pq.Array(profile.HealthStatuses), profile.Smoking, profile.Drinking, profile.HasChildren, profile.ChildrenCount, profile.ChildrenGuardian,
		profile.Housing, profile.Motorized, profile.Sport, pq.Array(profile.Hobbies), profile.OriginTag,
		profile.Veil, profile.AcceptsPolygamy, profile.AcceptsForeignMarriage, profile.WorksAfterMarriage,
		profile.PrefAgeTolerance, pq.Array(profile.PrefMaritalStatuses), pq.Array(profile.PrefCountries), pq.Array(profile.PrefCities),
		profile.PrefEducation, profile.PrefEmployment, profile.PrefMinIncome, profile.PrefReligion,
		pq.Array(profile.PrefHealthStatuses), profile.PrefSmoking, profile.PrefDrinking, profile.PrefHasChildren,
		profile.PrefHousing, profile.PrefSport,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) ListEligible(ctx context.Context, gender string, excludeID int) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE gender = $1 AND status = $2 AND id <> $3
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, gender, domain.ProfileStatusMember, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) ListByMatchmaker(ctx context.Context, matchmakerID, limit, offset int) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE matchmaker_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, matchmakerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
