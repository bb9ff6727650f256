package report

import (
	"time"

	"github.com/google/uuid"
)

// AccessLevel is the strength of a report access grant
type AccessLevel string

const (
	LevelRead    AccessLevel = "READ"
	LevelEdit    AccessLevel = "EDIT"
	LevelApprove AccessLevel = "APPROVE"
)

// IsValid checks if the level is a known AccessLevel
func (l AccessLevel) IsValid() bool {
	switch l {
	case LevelRead, LevelEdit, LevelApprove:
		return true
	}
	return false
}

// rank orders levels so a stronger grant covers weaker needs
func (l AccessLevel) rank() int {
	switch l {
	case LevelRead:
		return 1
	case LevelEdit:
		return 2
	case LevelApprove:
		return 3
	}
	return 0
}

// Covers reports whether this level satisfies a requirement of other
func (l AccessLevel) Covers(other AccessLevel) bool {
	return l.rank() >= other.rank() && l.rank() > 0
}

// AccessGrant is one principal's access to one report. Revocation
// deactivates rather than deletes, preserving the audit trail.
type AccessGrant struct {
	ID        uuid.UUID
	ReportID  uuid.UUID
	Grantor   uuid.UUID
	Grantee   uuid.UUID
	Level     AccessLevel
	Active    bool
	GrantedAt time.Time
	RevokedAt *time.Time
}

func newAccessGrant(reportID, grantor, grantee uuid.UUID, level AccessLevel) *AccessGrant {
	return &AccessGrant{
		ID:        uuid.New(),
		ReportID:  reportID,
		Grantor:   grantor,
		Grantee:   grantee,
		Level:     level,
		Active:    true,
		GrantedAt: time.Now(),
	}
}

func (g *AccessGrant) deactivate() {
	now := time.Now()
	g.Active = false
	g.RevokedAt = &now
}
