package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/identity"
	"github.com/tradeops/backend/internal/infrastructure/auth"
)

// LoginRequest carries credentials for authentication
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterRequest creates a new principal at the restricted tier
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=2,max=100"`
	DisplayName string `json:"display_name" binding:"required,max=200"`
	Password    string `json:"password" binding:"required,min=8,max=200"`
}

// AssignTierRequest changes a principal's tier
type AssignTierRequest struct {
	Tier       string    `json:"tier" binding:"required,oneof=RESTRICTED NORMAL ADVANCED ADMIN MASTER"`
	AssignedBy uuid.UUID `json:"-"`
}

// LoginResponse is the result of a successful authentication
type LoginResponse struct {
	Principal PrincipalResponse `json:"principal"`
	Tokens    auth.TokenPair    `json:"tokens"`
}

// PrincipalResponse represents a principal in API responses
type PrincipalResponse struct {
	ID             uuid.UUID  `json:"id"`
	Number         string     `json:"number"`
	Username       string     `json:"username"`
	DisplayName    string     `json:"display_name"`
	Tier           string     `json:"tier"`
	TierAssignedAt *time.Time `json:"tier_assigned_at,omitempty"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CheckResponse is the result of a permission check
type CheckResponse struct {
	Operation string `json:"operation"`
	Allowed   bool   `json:"allowed"`
}

// ToPrincipalResponse converts a domain principal to its API shape
func ToPrincipalResponse(p *identity.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:             p.ID,
		Number:         p.Number,
		Username:       p.Username,
		DisplayName:    p.DisplayName,
		Tier:           p.Tier.String(),
		TierAssignedAt: p.TierAssignedAt,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
	}
}

// ToPrincipalResponses converts a slice of domain principals
func ToPrincipalResponses(principals []identity.Principal) []PrincipalResponse {
	out := make([]PrincipalResponse, len(principals))
	for i := range principals {
		out[i] = ToPrincipalResponse(&principals[i])
	}
	return out
}
