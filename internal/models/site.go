package models

import "time"

// SiteSettings is a singleton: the repository rejects a second row at the
// write boundary.
type SiteSettings struct {
	ID                      string    `json:"id"`
	SiteTitle               string    `json:"site_title"`
	SiteTagline             string    `json:"site_tagline"`
	SiteDescription         string    `json:"site_description"`
	PrimaryEmail            string    `json:"primary_email"`
	PhonePrimary            string    `json:"phone_primary,omitempty"`
	AddressLine1            string    `json:"address_line1,omitempty"`
	City                    string    `json:"city"`
	State                   string    `json:"state"`
	Country                 string    `json:"country"`
	RegistrationNumber      string    `json:"registration_number,omitempty"`
	PANNumber               string    `json:"pan_number,omitempty"`
	TaxExemption80G         string    `json:"tax_exemption_80g,omitempty"`
	TaxExemption12A         string    `json:"tax_exemption_12a,omitempty"`
	DarpanID                string    `json:"darpan_id,omitempty"`
	MaintenanceMode         bool      `json:"maintenance_mode"`
	AllowRegistrations      bool      `json:"allow_registrations"`
	AllowAnonymousDonations bool      `json:"allow_anonymous_donations"`
	AllowAnonymousIssues    bool      `json:"allow_anonymous_issue_reports"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// SiteStats is the homepage counter singleton.
type SiteStats struct {
	ID             string    `json:"id"`
	ActiveProjects int       `json:"active_projects"`
	TotalMembers   int       `json:"total_members"`
	ResearchPapers int       `json:"research_papers_published"`
	CitiesImpacted int       `json:"cities_impacted"`
	UpdatedAt      time.Time `json:"updated_at"`
}
