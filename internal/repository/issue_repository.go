package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shodhsrija/foundation-backend/internal/models"
)

type IssueRepository struct {
	db *sql.DB
}

func NewIssueRepository(db *sql.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) ListCategories(ctx context.Context) ([]models.IssueCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, icon, color, is_active, display_order
		FROM issue_categories WHERE is_active = TRUE
		ORDER BY display_order, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.IssueCategory
	for rows.Next() {
		var c models.IssueCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Color,
			&c.IsActive, &c.Order); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateIssue allocates the yearly issue number and inserts the report in one
// transaction, so the number is unique even under concurrent submissions.
func (r *IssueRepository) CreateIssue(ctx context.Context, issue *models.ReportedIssue) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	year := issue.CreatedAt.Year()
	seq, err := nextSequence(ctx, tx, "reported_issue", time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006"))
	if err != nil {
		return err
	}
	issue.IssueNumber = models.IssueNumberFor(year, seq)

	var categoryID, reportedBy any
	if issue.CategoryID != "" {
		categoryID = issue.CategoryID
	}
	if issue.ReportedByUserID != "" {
		reportedBy = issue.ReportedByUserID
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reported_issues (id, issue_number, title, description, category_id,
			location_description, city, state, reporter_name, reporter_email,
			is_anonymous, reported_by, status, priority, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, issue.ID, issue.IssueNumber, issue.Title, issue.Description, categoryID,
		issue.LocationDescription, issue.City, issue.State, issue.ReporterName,
		issue.ReporterEmail, issue.IsAnonymous, reportedBy, issue.Status,
		issue.Priority, issue.IsPublic, issue.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

const issueColumns = `id, issue_number, title, description, category_id, location_description,
	city, state, reporter_name, reporter_email, is_anonymous, reported_by, status, priority,
	is_public, resolution_notes, resolved_at, created_at`

func scanIssue(row interface{ Scan(...any) error }) (*models.ReportedIssue, error) {
	var i models.ReportedIssue
	var categoryID, reportedBy sql.NullString
	var resolvedAt sql.NullTime
	err := row.Scan(&i.ID, &i.IssueNumber, &i.Title, &i.Description, &categoryID,
		&i.LocationDescription, &i.City, &i.State, &i.ReporterName, &i.ReporterEmail,
		&i.IsAnonymous, &reportedBy, &i.Status, &i.Priority, &i.IsPublic,
		&i.ResolutionNotes, &resolvedAt, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		i.CategoryID = categoryID.String
	}
	if reportedBy.Valid {
		i.ReportedByUserID = reportedBy.String
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		i.ResolvedAt = &t
	}
	return &i, nil
}

func (r *IssueRepository) GetIssue(ctx context.Context, id string) (*models.ReportedIssue, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+issueColumns+` FROM reported_issues WHERE id = $1`, id)
	return scanIssue(row)
}

func (r *IssueRepository) ListPublic(ctx context.Context, limit, offset int) ([]models.ReportedIssue, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+issueColumns+` FROM reported_issues
		 WHERE is_public = TRUE ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []models.ReportedIssue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, *i)
	}
	return issues, rows.Err()
}

// UpdateStatus applies a validated transition; the WHERE clause pins the
// expected current status.
func (r *IssueRepository) UpdateStatus(ctx context.Context, id string, from, to models.IssueStatus, notes string, at time.Time) (bool, error) {
	var resolvedAt any
	if to == models.IssueResolved {
		resolvedAt = at
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE reported_issues
		SET status = $1, resolution_notes = $2, resolved_at = COALESCE($3, resolved_at)
		WHERE id = $4 AND status = $5
	`, to, notes, resolvedAt, id, from)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
