package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/report"
)

// AccessGrantModel is one report access grant. Grants get their own table so
// visibility queries can join on grantee.
type AccessGrantModel struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key"`
	ReportID  uuid.UUID          `gorm:"type:uuid;not null;index"`
	Grantor   uuid.UUID          `gorm:"type:uuid;not null"`
	Grantee   uuid.UUID          `gorm:"type:uuid;not null;index"`
	Level     report.AccessLevel `gorm:"type:varchar(10);not null"`
	Active    bool               `gorm:"not null;default:true"`
	GrantedAt time.Time          `gorm:"not null"`
	RevokedAt *time.Time
}

// TableName returns the table name for GORM
func (AccessGrantModel) TableName() string {
	return "report_access_grants"
}

// WeeklyReportModel is the persistence model for the WeeklyReport aggregate
type WeeklyReportModel struct {
	AggregateModel
	Number       string        `gorm:"type:varchar(20);not null;uniqueIndex"`
	Author       uuid.UUID     `gorm:"type:uuid;not null;index"`
	WeekStart    time.Time     `gorm:"not null;index"`
	WeekEnd      time.Time     `gorm:"not null"`
	Title        string        `gorm:"type:varchar(200);not null"`
	Body         string        `gorm:"type:text"`
	Status       report.Status `gorm:"type:varchar(20);not null;index"`
	Approver     *uuid.UUID    `gorm:"type:uuid"`
	DecidedAt    *time.Time
	RejectReason string             `gorm:"type:varchar(500)"`
	Grants       []AccessGrantModel `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (WeeklyReportModel) TableName() string {
	return "weekly_reports"
}

// ToDomain converts the persistence model to a domain WeeklyReport
func (m *WeeklyReportModel) ToDomain() *report.WeeklyReport {
	grants := make([]report.AccessGrant, len(m.Grants))
	for i, g := range m.Grants {
		grants[i] = report.AccessGrant{
			ID:        g.ID,
			ReportID:  g.ReportID,
			Grantor:   g.Grantor,
			Grantee:   g.Grantee,
			Level:     g.Level,
			Active:    g.Active,
			GrantedAt: g.GrantedAt,
			RevokedAt: g.RevokedAt,
		}
	}

	return &report.WeeklyReport{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		Author:            m.Author,
		WeekStart:         m.WeekStart,
		WeekEnd:           m.WeekEnd,
		Title:             m.Title,
		Body:              m.Body,
		Status:            m.Status,
		Approver:          m.Approver,
		DecidedAt:         m.DecidedAt,
		RejectReason:      m.RejectReason,
		Grants:            grants,
	}
}

// FromDomain populates the persistence model from a domain WeeklyReport
func (m *WeeklyReportModel) FromDomain(r *report.WeeklyReport) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Number = r.Number
	m.Author = r.Author
	m.WeekStart = r.WeekStart
	m.WeekEnd = r.WeekEnd
	m.Title = r.Title
	m.Body = r.Body
	m.Status = r.Status
	m.Approver = r.Approver
	m.DecidedAt = r.DecidedAt
	m.RejectReason = r.RejectReason

	m.Grants = make([]AccessGrantModel, len(r.Grants))
	for i, g := range r.Grants {
		m.Grants[i] = AccessGrantModel{
			ID:        g.ID,
			ReportID:  r.ID,
			Grantor:   g.Grantor,
			Grantee:   g.Grantee,
			Level:     g.Level,
			Active:    g.Active,
			GrantedAt: g.GrantedAt,
			RevokedAt: g.RevokedAt,
		}
	}
}

// WeeklyReportModelFromDomain creates a persistence model from a domain WeeklyReport
func WeeklyReportModelFromDomain(r *report.WeeklyReport) *WeeklyReportModel {
	m := &WeeklyReportModel{}
	m.FromDomain(r)
	return m
}
