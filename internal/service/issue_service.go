package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shodhsrija/foundation-backend/internal/interfaces"
	"github.com/shodhsrija/foundation-backend/internal/models"
	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

var (
	ErrIssueNotFound     = errors.New("issue not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// IssueService handles public civic-issue reports.
type IssueService struct {
	issues interfaces.IssueRepository
	now    func() time.Time
}

func NewIssueService(issues interfaces.IssueRepository) *IssueService {
	return &IssueService{issues: issues, now: time.Now}
}

func (s *IssueService) ListCategories(ctx context.Context) ([]models.IssueCategory, error) {
	return s.issues.ListCategories(ctx)
}

// ReportInput is a citizen's issue report.
type ReportInput struct {
	Title               string
	Description         string
	CategoryID          string
	LocationDescription string
	City                string
	State               string
	ReporterName        string
	ReporterEmail       string
	IsAnonymous         bool
}

// Report registers an issue and assigns its yearly reference number from the
// atomic counter.
func (s *IssueService) Report(ctx context.Context, userID string, in ReportInput) (*models.ReportedIssue, error) {
	if in.Title == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrValidation)
	}

	issue := &models.ReportedIssue{
		ID:                  uuid.New().String(),
		Title:               in.Title,
		Description:         in.Description,
		CategoryID:          in.CategoryID,
		LocationDescription: in.LocationDescription,
		City:                in.City,
		State:               in.State,
		ReporterName:        in.ReporterName,
		ReporterEmail:       in.ReporterEmail,
		IsAnonymous:         in.IsAnonymous,
		ReportedByUserID:    userID,
		Status:              models.IssueNew,
		Priority:            models.PriorityMedium,
		IsPublic:            true,
		CreatedAt:           s.now(),
	}
	if err := s.issues.CreateIssue(ctx, issue); err != nil {
		telemetry.Logger.Error("Failed to create issue report", zap.Error(err))
		return nil, fmt.Errorf("failed to create issue")
	}

	telemetry.IssuesReported.Inc()
	telemetry.Logger.Info("Issue reported",
		zap.String("issue_number", issue.IssueNumber),
		zap.Bool("anonymous", in.IsAnonymous),
	)
	return issue, nil
}

func (s *IssueService) Get(ctx context.Context, id string) (*models.ReportedIssue, error) {
	issue, err := s.issues.GetIssue(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to load issue")
	}
	return issue, nil
}

func (s *IssueService) ListPublic(ctx context.Context, limit, offset int) ([]models.ReportedIssue, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.issues.ListPublic(ctx, limit, offset)
}

// UpdateStatus moves an issue along its workflow. The repository update is
// conditional on the expected current status, so concurrent staff edits
// cannot skip a step.
func (s *IssueService) UpdateStatus(ctx context.Context, id string, to models.IssueStatus, notes string) error {
	issue, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !issue.Status.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, issue.Status, to)
	}
	moved, err := s.issues.UpdateStatus(ctx, id, issue.Status, to, notes, s.now())
	if err != nil {
		return fmt.Errorf("failed to update issue")
	}
	if !moved {
		return fmt.Errorf("%w: issue status changed concurrently", ErrInvalidTransition)
	}
	telemetry.Logger.Info("Issue status updated",
		zap.String("issue_number", issue.IssueNumber),
		zap.String("from", string(issue.Status)),
		zap.String("to", string(to)),
	)
	return nil
}
