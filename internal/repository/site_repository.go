package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shodhsrija/foundation-backend/internal/models"
)

// ErrSingletonExists is returned when a second settings or stats row is
// attempted; these tables hold exactly one row for the lifetime of the site.
var ErrSingletonExists = errors.New("singleton record already exists")

type SiteRepository struct {
	db *sql.DB
}

func NewSiteRepository(db *sql.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

const settingsColumns = `id, site_title, site_tagline, site_description, primary_email,
	phone_primary, address_line1, city, state, country, registration_number, pan_number,
	tax_exemption_80g, tax_exemption_12a, darpan_id, maintenance_mode, allow_registrations,
	allow_anonymous_donations, allow_anonymous_issue_reports, updated_at`

func (r *SiteRepository) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	var s models.SiteSettings
	err := r.db.QueryRowContext(ctx,
		`SELECT `+settingsColumns+` FROM site_settings LIMIT 1`,
	).Scan(&s.ID, &s.SiteTitle, &s.SiteTagline, &s.SiteDescription, &s.PrimaryEmail,
		&s.PhonePrimary, &s.AddressLine1, &s.City, &s.State, &s.Country,
		&s.RegistrationNumber, &s.PANNumber, &s.TaxExemption80G, &s.TaxExemption12A,
		&s.DarpanID, &s.MaintenanceMode, &s.AllowRegistrations,
		&s.AllowAnonymousDonations, &s.AllowAnonymousIssues, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSettings enforces the singleton at the write boundary rather than in
// a save hook: the guarded INSERT writes nothing when a row already exists.
func (r *SiteRepository) CreateSettings(ctx context.Context, s *models.SiteSettings) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO site_settings (id, site_title, site_tagline, site_description,
			primary_email, phone_primary, address_line1, city, state, country,
			registration_number, pan_number, tax_exemption_80g, tax_exemption_12a,
			darpan_id, maintenance_mode, allow_registrations, allow_anonymous_donations,
			allow_anonymous_issue_reports, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		WHERE NOT EXISTS (SELECT 1 FROM site_settings)
	`, s.ID, s.SiteTitle, s.SiteTagline, s.SiteDescription, s.PrimaryEmail,
		s.PhonePrimary, s.AddressLine1, s.City, s.State, s.Country,
		s.RegistrationNumber, s.PANNumber, s.TaxExemption80G, s.TaxExemption12A,
		s.DarpanID, s.MaintenanceMode, s.AllowRegistrations, s.AllowAnonymousDonations,
		s.AllowAnonymousIssues, time.Now())
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSingletonExists
	}
	return nil
}

func (r *SiteRepository) UpdateSettings(ctx context.Context, s *models.SiteSettings) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE site_settings SET site_title = $1, site_tagline = $2, site_description = $3,
			primary_email = $4, phone_primary = $5, address_line1 = $6, city = $7,
			state = $8, country = $9, registration_number = $10, pan_number = $11,
			tax_exemption_80g = $12, tax_exemption_12a = $13, darpan_id = $14,
			maintenance_mode = $15, allow_registrations = $16,
			allow_anonymous_donations = $17, allow_anonymous_issue_reports = $18,
			updated_at = NOW()
		WHERE id = $19
	`, s.SiteTitle, s.SiteTagline, s.SiteDescription, s.PrimaryEmail, s.PhonePrimary,
		s.AddressLine1, s.City, s.State, s.Country, s.RegistrationNumber, s.PANNumber,
		s.TaxExemption80G, s.TaxExemption12A, s.DarpanID, s.MaintenanceMode,
		s.AllowRegistrations, s.AllowAnonymousDonations, s.AllowAnonymousIssues, s.ID)
	return err
}

func (r *SiteRepository) GetStats(ctx context.Context) (*models.SiteStats, error) {
	var s models.SiteStats
	err := r.db.QueryRowContext(ctx, `
		SELECT id, active_projects, total_members, research_papers_published,
			cities_impacted, updated_at
		FROM site_stats LIMIT 1
	`).Scan(&s.ID, &s.ActiveProjects, &s.TotalMembers, &s.ResearchPapers,
		&s.CitiesImpacted, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) UpdateStats(ctx context.Context, s *models.SiteStats) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE site_stats SET active_projects = $1, total_members = $2,
			research_papers_published = $3, cities_impacted = $4, updated_at = NOW()
		WHERE id = $5
	`, s.ActiveProjects, s.TotalMembers, s.ResearchPapers, s.CitiesImpacted, s.ID)
	return err
}
