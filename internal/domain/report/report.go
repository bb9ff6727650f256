package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
)

// Status represents the lifecycle status of a weekly report
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// WeeklyReport is an author's report for one calendar week. Access is
// restricted to the author, active grant holders, and master-tier principals.
type WeeklyReport struct {
	shared.BaseAggregateRoot
	Number       string // WR<YYYYMMDD><NNNN>
	Author       uuid.UUID
	WeekStart    time.Time
	WeekEnd      time.Time
	Title        string
	Body         string
	Status       Status
	Approver     *uuid.UUID
	DecidedAt    *time.Time
	RejectReason string
	Grants       []AccessGrant
}

// NewWeeklyReport creates a draft report covering one Monday-to-Sunday week
func NewWeeklyReport(number string, author uuid.UUID, weekStart time.Time, title, body string) (*WeeklyReport, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Report number cannot be empty")
	}
	if author == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author is required")
	}
	if weekStart.Weekday() != time.Monday {
		return nil, shared.NewDomainError("INVALID_WEEK", "Week must start on a Monday")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Report title cannot be empty")
	}

	weekStart = weekStart.Truncate(24 * time.Hour)
	r := &WeeklyReport{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Author:            author,
		WeekStart:         weekStart,
		WeekEnd:           weekStart.AddDate(0, 0, 6),
		Title:             title,
		Body:              body,
		Status:            StatusDraft,
	}
	r.AddDomainEvent(NewReportCreatedEvent(r))
	return r, nil
}

// UpdateBody edits the report content. Only the author may edit, and only
// while the report is a draft or after a rejection.
func (r *WeeklyReport) UpdateBody(editor uuid.UUID, title, body string) error {
	if editor != r.Author && !r.hasGrant(editor, LevelEdit) {
		return shared.ErrForbidden
	}
	if r.Status == StatusApproved {
		return shared.ErrAlreadyDecided
	}
	if title != "" {
		r.Title = title
	}
	r.Body = body
	r.Status = StatusDraft
	r.UpdatedAt = time.Now()
	return nil
}

// Submit puts the report in front of the approver
func (r *WeeklyReport) Submit(actor uuid.UUID) error {
	if actor != r.Author {
		return shared.ErrForbidden
	}
	if r.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATUS", "Only draft reports can be submitted")
	}
	if r.Body == "" {
		return shared.NewDomainError("EMPTY_BODY", "Report body cannot be empty")
	}
	r.Status = StatusSubmitted
	r.UpdatedAt = time.Now()
	return nil
}

// Approve marks a submitted report approved
func (r *WeeklyReport) Approve(approver uuid.UUID) error {
	if err := r.checkDecidable(approver); err != nil {
		return err
	}
	now := time.Now()
	r.Status = StatusApproved
	r.Approver = &approver
	r.DecidedAt = &now
	r.UpdatedAt = now
	r.AddDomainEvent(NewReportDecidedEvent(r))
	return nil
}

// Reject sends a submitted report back to the author with a reason
func (r *WeeklyReport) Reject(approver uuid.UUID, reason string) error {
	if err := r.checkDecidable(approver); err != nil {
		return err
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Reject reason is required")
	}
	now := time.Now()
	r.Status = StatusRejected
	r.Approver = &approver
	r.DecidedAt = &now
	r.RejectReason = reason
	r.UpdatedAt = now
	r.AddDomainEvent(NewReportDecidedEvent(r))
	return nil
}

func (r *WeeklyReport) checkDecidable(approver uuid.UUID) error {
	if r.Status != StatusSubmitted {
		return shared.ErrAlreadyDecided
	}
	if approver == r.Author {
		return shared.NewDomainError("SELF_APPROVAL", "Authors cannot decide their own reports")
	}
	if !r.hasGrant(approver, LevelApprove) {
		return shared.ErrForbidden
	}
	return nil
}

// Grant gives a principal access at the given level. Granting to a principal
// who already holds an active grant fails with ALREADY_GRANTED.
func (r *WeeklyReport) Grant(grantor, grantee uuid.UUID, level AccessLevel) (*AccessGrant, error) {
	if grantor != r.Author {
		return nil, shared.ErrForbidden
	}
	if grantee == r.Author {
		return nil, shared.NewDomainError("SELF_GRANT", "Authors already hold full access")
	}
	if !level.IsValid() {
		return nil, shared.NewDomainError("INVALID_LEVEL", "Unknown access level: "+string(level))
	}
	for i := range r.Grants {
		if r.Grants[i].Grantee == grantee && r.Grants[i].Active {
			return nil, shared.ErrAlreadyGranted
		}
	}

	g := newAccessGrant(r.ID, grantor, grantee, level)
	r.Grants = append(r.Grants, *g)
	r.UpdatedAt = time.Now()
	r.AddDomainEvent(NewAccessGrantedEvent(r, g))
	return g, nil
}

// Revoke deactivates the grantee's active grant. The record stays for audit.
func (r *WeeklyReport) Revoke(grantor, grantee uuid.UUID) error {
	if grantor != r.Author {
		return shared.ErrForbidden
	}
	for i := range r.Grants {
		if r.Grants[i].Grantee == grantee && r.Grants[i].Active {
			r.Grants[i].deactivate()
			r.UpdatedAt = time.Now()
			r.AddDomainEvent(NewAccessRevokedEvent(r, &r.Grants[i]))
			return nil
		}
	}
	return shared.ErrNotFound
}

// VisibleTo reports whether a principal may read this report. Master-tier
// visibility is layered on top by the service; here only author and grants
// count.
func (r *WeeklyReport) VisibleTo(principal uuid.UUID) bool {
	if principal == r.Author {
		return true
	}
	return r.hasGrant(principal, LevelRead)
}

// hasGrant checks for an active grant at or above the given level
func (r *WeeklyReport) hasGrant(principal uuid.UUID, level AccessLevel) bool {
	for i := range r.Grants {
		g := &r.Grants[i]
		if g.Grantee == principal && g.Active && g.Level.Covers(level) {
			return true
		}
	}
	return false
}

// ActiveGrants returns the grants currently in force
func (r *WeeklyReport) ActiveGrants() []AccessGrant {
	var active []AccessGrant
	for _, g := range r.Grants {
		if g.Active {
			active = append(active, g)
		}
	}
	return active
}
