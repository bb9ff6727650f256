package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/report"
)

// CreateReportRequest creates a draft weekly report
type CreateReportRequest struct {
	WeekStart time.Time `json:"week_start" binding:"required"`
	Title     string    `json:"title" binding:"required,max=200"`
	Body      string    `json:"body"`
	Author    uuid.UUID `json:"-"`
}

// UpdateReportRequest edits a report's content
type UpdateReportRequest struct {
	Title  string    `json:"title" binding:"max=200"`
	Body   string    `json:"body" binding:"required"`
	Editor uuid.UUID `json:"-"`
}

// RejectReportRequest sends a report back with a reason
type RejectReportRequest struct {
	Reason   string    `json:"reason" binding:"required,max=500"`
	Approver uuid.UUID `json:"-"`
}

// GrantAccessRequest gives a principal access to a report
type GrantAccessRequest struct {
	Grantee uuid.UUID `json:"grantee" binding:"required"`
	Level   string    `json:"level" binding:"required,oneof=READ EDIT APPROVE"`
	Grantor uuid.UUID `json:"-"`
}

// RevokeAccessRequest removes a principal's access
type RevokeAccessRequest struct {
	Grantee uuid.UUID `json:"grantee" binding:"required"`
	Grantor uuid.UUID `json:"-"`
}

// GrantResponse represents an access grant in API responses
type GrantResponse struct {
	ID        uuid.UUID  `json:"id"`
	Grantee   uuid.UUID  `json:"grantee"`
	Level     string     `json:"level"`
	Active    bool       `json:"active"`
	GrantedAt time.Time  `json:"granted_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// ReportResponse represents a weekly report in API responses
type ReportResponse struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	Author       uuid.UUID       `json:"author"`
	WeekStart    time.Time       `json:"week_start"`
	WeekEnd      time.Time       `json:"week_end"`
	Title        string          `json:"title"`
	Body         string          `json:"body"`
	Status       string          `json:"status"`
	Approver     *uuid.UUID      `json:"approver,omitempty"`
	DecidedAt    *time.Time      `json:"decided_at,omitempty"`
	RejectReason string          `json:"reject_reason,omitempty"`
	Grants       []GrantResponse `json:"grants"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToGrantResponse converts a domain grant to its API shape
func ToGrantResponse(g *report.AccessGrant) GrantResponse {
	return GrantResponse{
		ID:        g.ID,
		Grantee:   g.Grantee,
		Level:     string(g.Level),
		Active:    g.Active,
		GrantedAt: g.GrantedAt,
		RevokedAt: g.RevokedAt,
	}
}

// ToReportResponse converts a domain report to its API shape. Only active
// grants are exposed.
func ToReportResponse(r *report.WeeklyReport) ReportResponse {
	active := r.ActiveGrants()
	grants := make([]GrantResponse, len(active))
	for i := range active {
		grants[i] = ToGrantResponse(&active[i])
	}
	return ReportResponse{
		ID:           r.ID,
		Number:       r.Number,
		Author:       r.Author,
		WeekStart:    r.WeekStart,
		WeekEnd:      r.WeekEnd,
		Title:        r.Title,
		Body:         r.Body,
		Status:       string(r.Status),
		Approver:     r.Approver,
		DecidedAt:    r.DecidedAt,
		RejectReason: r.RejectReason,
		Grants:       grants,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToReportResponses converts a slice of domain reports
func ToReportResponses(reports []report.WeeklyReport) []ReportResponse {
	out := make([]ReportResponse, len(reports))
	for i := range reports {
		out[i] = ToReportResponse(&reports[i])
	}
	return out
}
