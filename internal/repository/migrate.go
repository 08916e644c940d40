package repository

import "database/sql"

// InitDB creates the schema. Statements are idempotent so startup is safe to
// repeat.
func InitDB(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS payments (
			payment_id VARCHAR(100) PRIMARY KEY,
			razorpay_order_id VARCHAR(100) NOT NULL,
			razorpay_payment_id VARCHAR(100) NOT NULL DEFAULT '',
			razorpay_signature VARCHAR(200) NOT NULL DEFAULT '',
			amount DECIMAL(10,2) NOT NULL,
			currency VARCHAR(3) NOT NULL DEFAULT 'INR',
			user_id VARCHAR(100) NOT NULL,
			payment_type VARCHAR(15) NOT NULL,
			status VARCHAR(15) NOT NULL DEFAULT 'pending',
			membership_application_id VARCHAR(100),
			gateway_response JSONB NOT NULL DEFAULT '{}',
			initiated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_user_id ON payments(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_razorpay_order_id ON payments(razorpay_order_id)`,

		`CREATE TABLE IF NOT EXISTS membership_tiers (
			id VARCHAR(100) PRIMARY KEY,
			name VARCHAR(50) NOT NULL UNIQUE,
			display_name VARCHAR(100) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price_2_months DECIMAL(10,2) NOT NULL DEFAULT 0,
			price_4_months DECIMAL(10,2) NOT NULL DEFAULT 0,
			benefits JSONB NOT NULL DEFAULT '[]',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			display_order INT NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS membership_applications (
			id VARCHAR(100) PRIMARY KEY,
			user_id VARCHAR(100) NOT NULL,
			tier_id VARCHAR(100) NOT NULL REFERENCES membership_tiers(id),
			duration_months INT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			full_name VARCHAR(100) NOT NULL,
			phone VARCHAR(15) NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			city VARCHAR(50) NOT NULL DEFAULT '',
			state VARCHAR(50) NOT NULL DEFAULT '',
			postal_code VARCHAR(10) NOT NULL DEFAULT '',
			motivation TEXT NOT NULL DEFAULT '',
			reviewed_by VARCHAR(100),
			reviewed_at TIMESTAMPTZ,
			admin_notes TEXT NOT NULL DEFAULT '',
			rejection_reason TEXT NOT NULL DEFAULT '',
			approved_at TIMESTAMPTZ,
			membership_start_date TIMESTAMPTZ,
			membership_end_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_membership_applications_user_id ON membership_applications(user_id)`,

		`CREATE TABLE IF NOT EXISTS donations (
			donation_id VARCHAR(100) PRIMARY KEY,
			amount DECIMAL(10,2) NOT NULL,
			currency VARCHAR(3) NOT NULL DEFAULT 'INR',
			donor_name VARCHAR(100) NOT NULL DEFAULT '',
			donor_email VARCHAR(200) NOT NULL DEFAULT '',
			donor_phone VARCHAR(15) NOT NULL DEFAULT '',
			user_id VARCHAR(100),
			is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
			status VARCHAR(15) NOT NULL DEFAULT 'pending',
			wants_80g_certificate BOOLEAN NOT NULL DEFAULT FALSE,
			pan VARCHAR(10) NOT NULL DEFAULT '',
			payment_id VARCHAR(100) NOT NULL REFERENCES payments(payment_id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_donations_payment_id ON donations(payment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_donations_user_id ON donations(user_id)`,

		`CREATE TABLE IF NOT EXISTS donation_certificates (
			certificate_number VARCHAR(30) PRIMARY KEY,
			financial_year VARCHAR(10) NOT NULL,
			donation_id VARCHAR(100) NOT NULL UNIQUE REFERENCES donations(donation_id),
			issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS issue_categories (
			id VARCHAR(100) PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			icon VARCHAR(50) NOT NULL DEFAULT 'report_problem',
			color VARCHAR(7) NOT NULL DEFAULT '#dc3545',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			display_order INT NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS reported_issues (
			id VARCHAR(100) PRIMARY KEY,
			issue_number VARCHAR(20) NOT NULL UNIQUE,
			title VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			category_id VARCHAR(100) REFERENCES issue_categories(id),
			location_description VARCHAR(300) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL DEFAULT '',
			state VARCHAR(100) NOT NULL DEFAULT '',
			reporter_name VARCHAR(100) NOT NULL DEFAULT '',
			reporter_email VARCHAR(200) NOT NULL DEFAULT '',
			is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
			reported_by VARCHAR(100),
			status VARCHAR(15) NOT NULL DEFAULT 'new',
			priority VARCHAR(10) NOT NULL DEFAULT 'medium',
			is_public BOOLEAN NOT NULL DEFAULT TRUE,
			resolution_notes TEXT NOT NULL DEFAULT '',
			resolved_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reported_issues_status ON reported_issues(status)`,

		`CREATE TABLE IF NOT EXISTS site_settings (
			id VARCHAR(100) PRIMARY KEY,
			site_title VARCHAR(200) NOT NULL,
			site_tagline VARCHAR(300) NOT NULL DEFAULT '',
			site_description TEXT NOT NULL DEFAULT '',
			primary_email VARCHAR(200) NOT NULL DEFAULT '',
			phone_primary VARCHAR(20) NOT NULL DEFAULT '',
			address_line1 VARCHAR(200) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL DEFAULT 'New Delhi',
			state VARCHAR(100) NOT NULL DEFAULT 'Delhi',
			country VARCHAR(100) NOT NULL DEFAULT 'India',
			registration_number VARCHAR(100) NOT NULL DEFAULT '',
			pan_number VARCHAR(10) NOT NULL DEFAULT '',
			tax_exemption_80g VARCHAR(100) NOT NULL DEFAULT '',
			tax_exemption_12a VARCHAR(100) NOT NULL DEFAULT '',
			darpan_id VARCHAR(100) NOT NULL DEFAULT '',
			maintenance_mode BOOLEAN NOT NULL DEFAULT FALSE,
			allow_registrations BOOLEAN NOT NULL DEFAULT TRUE,
			allow_anonymous_donations BOOLEAN NOT NULL DEFAULT TRUE,
			allow_anonymous_issue_reports BOOLEAN NOT NULL DEFAULT TRUE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS site_stats (
			id VARCHAR(100) PRIMARY KEY,
			active_projects INT NOT NULL DEFAULT 0,
			total_members INT NOT NULL DEFAULT 0,
			research_papers_published INT NOT NULL DEFAULT 0,
			cities_impacted INT NOT NULL DEFAULT 1,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS sequence_counters (
			scope VARCHAR(50) NOT NULL,
			period VARCHAR(10) NOT NULL,
			value BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (scope, period)
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
