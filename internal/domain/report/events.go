package report

import (
	"github.com/tradeops/backend/internal/domain/shared"
)

// Event types for the report domain
const (
	EventReportCreated = "report.created"
	EventReportDecided = "report.decided"
	EventAccessGranted = "report.access_granted"
	EventAccessRevoked = "report.access_revoked"
)

// ReportCreatedEvent fires when a weekly report is created
type ReportCreatedEvent struct {
	shared.BaseDomainEvent
	Number    string `json:"number"`
	Author    string `json:"author"`
	WeekStart string `json:"week_start"`
}

func NewReportCreatedEvent(r *WeeklyReport) *ReportCreatedEvent {
	return &ReportCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReportCreated, "WeeklyReport", r.ID),
		Number:          r.Number,
		Author:          r.Author.String(),
		WeekStart:       r.WeekStart.Format("2006-01-02"),
	}
}

// ReportDecidedEvent fires on approval or rejection
type ReportDecidedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Status string `json:"status"`
}

func NewReportDecidedEvent(r *WeeklyReport) *ReportDecidedEvent {
	return &ReportDecidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReportDecided, "WeeklyReport", r.ID),
		Number:          r.Number,
		Status:          string(r.Status),
	}
}

// AccessGrantedEvent fires when the author shares the report
type AccessGrantedEvent struct {
	shared.BaseDomainEvent
	Number  string `json:"number"`
	Grantee string `json:"grantee"`
	Level   string `json:"level"`
}

func NewAccessGrantedEvent(r *WeeklyReport, g *AccessGrant) *AccessGrantedEvent {
	return &AccessGrantedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventAccessGranted, "WeeklyReport", r.ID),
		Number:          r.Number,
		Grantee:         g.Grantee.String(),
		Level:           string(g.Level),
	}
}

// AccessRevokedEvent fires when a grant is deactivated
type AccessRevokedEvent struct {
	shared.BaseDomainEvent
	Number  string `json:"number"`
	Grantee string `json:"grantee"`
}

func NewAccessRevokedEvent(r *WeeklyReport, g *AccessGrant) *AccessRevokedEvent {
	return &AccessRevokedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventAccessRevoked, "WeeklyReport", r.ID),
		Number:          r.Number,
		Grantee:         g.Grantee.String(),
	}
}
