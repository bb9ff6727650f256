package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/identity"
	"github.com/tradeops/backend/internal/domain/numbering"
	"github.com/tradeops/backend/internal/domain/report"
	"github.com/tradeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles weekly report operations. Reads go through a visibility
// check: authors and grant holders see their reports, master-tier principals
// see everything.
type Service struct {
	reports    report.Repository
	principals identity.Repository
	numbers    numbering.Generator
	logger     *zap.Logger
}

// NewService creates a new report Service
func NewService(reports report.Repository, principals identity.Repository, numbers numbering.Generator, logger *zap.Logger) *Service {
	return &Service{
		reports:    reports,
		principals: principals,
		numbers:    numbers,
		logger:     logger,
	}
}

// Create starts a draft report for one calendar week
func (s *Service) Create(ctx context.Context, req CreateReportRequest) (*ReportResponse, error) {
	number, err := s.numbers.Next(ctx, numbering.KindWeeklyReport, time.Now())
	if err != nil {
		return nil, err
	}

	r, err := report.NewWeeklyReport(number, req.Author, req.WeekStart, req.Title, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("weekly report created",
		zap.String("number", r.Number),
		zap.String("author", r.Author.String()))

	resp := ToReportResponse(r)
	return &resp, nil
}

// Update edits a report's title and body
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateReportRequest) (*ReportResponse, error) {
	r, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.UpdateBody(req.Editor, req.Title, req.Body); err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToReportResponse(r)
	return &resp, nil
}

// Submit puts a draft report in front of its approvers
func (s *Service) Submit(ctx context.Context, id, actor uuid.UUID) (*ReportResponse, error) {
	return s.mutate(ctx, id, func(r *report.WeeklyReport) error {
		return r.Submit(actor)
	})
}

// Approve marks a submitted report approved
func (s *Service) Approve(ctx context.Context, id, approver uuid.UUID) (*ReportResponse, error) {
	return s.mutate(ctx, id, func(r *report.WeeklyReport) error {
		if err := r.Approve(approver); err != nil {
			return err
		}
		s.logger.Info("weekly report approved",
			zap.String("number", r.Number),
			zap.String("approver", approver.String()))
		return nil
	})
}

// Reject sends a submitted report back to the author
func (s *Service) Reject(ctx context.Context, id uuid.UUID, req RejectReportRequest) (*ReportResponse, error) {
	return s.mutate(ctx, id, func(r *report.WeeklyReport) error {
		return r.Reject(req.Approver, req.Reason)
	})
}

// Grant gives a principal access at the requested level
func (s *Service) Grant(ctx context.Context, id uuid.UUID, req GrantAccessRequest) (*ReportResponse, error) {
	if _, err := s.principals.FindByID(ctx, req.Grantee); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(r *report.WeeklyReport) error {
		g, err := r.Grant(req.Grantor, req.Grantee, report.AccessLevel(req.Level))
		if err != nil {
			return err
		}
		s.logger.Info("report access granted",
			zap.String("number", r.Number),
			zap.String("grantee", g.Grantee.String()),
			zap.String("level", string(g.Level)))
		return nil
	})
}

// Revoke deactivates a principal's grant
func (s *Service) Revoke(ctx context.Context, id uuid.UUID, req RevokeAccessRequest) (*ReportResponse, error) {
	return s.mutate(ctx, id, func(r *report.WeeklyReport) error {
		return r.Revoke(req.Grantor, req.Grantee)
	})
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(r *report.WeeklyReport) error) (*ReportResponse, error) {
	r, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(r); err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToReportResponse(r)
	return &resp, nil
}

// GetByID retrieves one report if the caller may read it
func (s *Service) GetByID(ctx context.Context, id, caller uuid.UUID) (*ReportResponse, error) {
	r, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.canRead(ctx, r, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Hidden reports look like missing ones
		return nil, shared.ErrNotFound
	}
	resp := ToReportResponse(r)
	return &resp, nil
}

// List returns the reports visible to the caller
func (s *Service) List(ctx context.Context, caller uuid.UUID, filter shared.Filter) ([]ReportResponse, error) {
	p, err := s.principals.FindByID(ctx, caller)
	if err != nil {
		return nil, err
	}

	var reports []report.WeeklyReport
	if p.Tier == identity.TierMaster {
		reports, err = s.reports.FindAll(ctx, filter)
	} else {
		reports, err = s.reports.FindVisibleTo(ctx, caller, filter)
	}
	if err != nil {
		return nil, err
	}
	return ToReportResponses(reports), nil
}

// canRead layers master-tier visibility on top of the report's own rules
func (s *Service) canRead(ctx context.Context, r *report.WeeklyReport, caller uuid.UUID) (bool, error) {
	if r.VisibleTo(caller) {
		return true, nil
	}
	p, err := s.principals.FindByID(ctx, caller)
	if err != nil {
		return false, err
	}
	return p.Active && p.Tier == identity.TierMaster, nil
}
