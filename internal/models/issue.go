package models

import (
	"fmt"
	"time"
)

type IssueStatus string

const (
	IssueNew           IssueStatus = "new"
	IssueUnderReview   IssueStatus = "under_review"
	IssueInvestigating IssueStatus = "investigating"
	IssueInProgress    IssueStatus = "in_progress"
	IssueResolved      IssueStatus = "resolved"
	IssueClosed        IssueStatus = "closed"
	IssueDuplicate     IssueStatus = "duplicate"
	IssueInvalid       IssueStatus = "invalid"
)

var issueTransitions = map[IssueStatus][]IssueStatus{
	IssueNew:           {IssueUnderReview, IssueDuplicate, IssueInvalid, IssueClosed},
	IssueUnderReview:   {IssueInvestigating, IssueInProgress, IssueDuplicate, IssueInvalid, IssueClosed},
	IssueInvestigating: {IssueInProgress, IssueResolved, IssueInvalid, IssueClosed},
	IssueInProgress:    {IssueResolved, IssueClosed},
	IssueResolved:      {IssueClosed, IssueInProgress},
}

func (s IssueStatus) CanTransition(to IssueStatus) bool {
	for _, next := range issueTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type IssuePriority string

const (
	PriorityLow      IssuePriority = "low"
	PriorityMedium   IssuePriority = "medium"
	PriorityHigh     IssuePriority = "high"
	PriorityCritical IssuePriority = "critical"
)

type IssueCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsActive    bool   `json:"is_active"`
	Order       int    `json:"order"`
}

// ReportedIssue is a public report of a civic problem.
type ReportedIssue struct {
	ID                  string        `json:"id"`
	IssueNumber         string        `json:"issue_number"`
	Title               string        `json:"title"`
	Description         string        `json:"description"`
	CategoryID          string        `json:"category_id,omitempty"`
	LocationDescription string        `json:"location_description"`
	City                string        `json:"city,omitempty"`
	State               string        `json:"state,omitempty"`
	ReporterName        string        `json:"-"`
	ReporterEmail       string        `json:"-"`
	IsAnonymous         bool          `json:"is_anonymous"`
	ReportedByUserID    string        `json:"-"`
	Status              IssueStatus   `json:"status"`
	Priority            IssuePriority `json:"priority"`
	IsPublic            bool          `json:"is_public"`
	ResolutionNotes     string        `json:"resolution_notes,omitempty"`
	ResolvedAt          *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
}

// IssueNumberFor formats a yearly-scoped issue reference, e.g. ISS-2026-0042.
func IssueNumberFor(year int, seq int64) string {
	return fmt.Sprintf("ISS-%d-%04d", year, seq)
}

// ReporterDisplayName hides the reporter's identity when anonymous.
func (i *ReportedIssue) ReporterDisplayName() string {
	if i.IsAnonymous {
		return "Anonymous"
	}
	if i.ReporterName != "" {
		return i.ReporterName
	}
	return "Unknown"
}

// LocationDisplay joins the available location parts for listings.
func (i *ReportedIssue) LocationDisplay() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{i.LocationDescription, i.City, i.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "Location not specified"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
