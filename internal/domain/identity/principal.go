package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Principal is a user of the system. Its tier determines which operations it
// may perform; tier assignment is idempotent and recorded.
type Principal struct {
	shared.BaseAggregateRoot
	Number         string // P<YYYYMMDD><NNNN>
	Username       string
	DisplayName    string
	PasswordHash   string
	Tier           Tier
	TierAssignedBy *uuid.UUID
	TierAssignedAt *time.Time
	Active         bool
}

// NewPrincipal creates a new active principal at the restricted tier
func NewPrincipal(number, username, displayName, password string) (*Principal, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Principal number cannot be empty")
	}
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Principal{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Username:          username,
		DisplayName:       displayName,
		PasswordHash:      string(hash),
		Tier:              TierRestricted,
		Active:            true,
	}, nil
}

// VerifyPassword checks a cleartext password against the stored hash
func (p *Principal) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

// AssignTier sets the principal's tier. Assigning the current tier again is a
// no-op, observationally identical to a single assignment.
func (p *Principal) AssignTier(tier Tier, assignedBy uuid.UUID) error {
	if !tier.IsValid() {
		return shared.NewDomainError("INVALID_TIER", "Unknown tier: "+string(tier))
	}
	if p.Tier == tier {
		return nil
	}

	now := time.Now()
	p.Tier = tier
	p.TierAssignedBy = &assignedBy
	p.TierAssignedAt = &now
	p.UpdatedAt = now
	return nil
}

// Can reports whether the principal may perform the named operation.
// Inactive principals may do nothing.
func (p *Principal) Can(operation string) bool {
	return p.Active && p.Tier.Allows(operation)
}

// Deactivate disables the principal
func (p *Principal) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}
