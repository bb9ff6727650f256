package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/identity"
	"github.com/tradeops/backend/internal/domain/numbering"
	"github.com/tradeops/backend/internal/domain/shared"
	"github.com/tradeops/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// ErrBadCredentials is returned for unknown usernames and wrong passwords
// alike, so responses do not leak which usernames exist.
var ErrBadCredentials = shared.NewDomainError("BAD_CREDENTIALS", "Invalid username or password")

// Service handles authentication and principal management
type Service struct {
	principals identity.Repository
	numbers    numbering.Generator
	jwt        *auth.JWTService
	logger     *zap.Logger
}

// NewService creates a new identity Service
func NewService(principals identity.Repository, numbers numbering.Generator, jwt *auth.JWTService, logger *zap.Logger) *Service {
	return &Service{
		principals: principals,
		numbers:    numbers,
		jwt:        jwt,
		logger:     logger,
	}
}

// Login authenticates a principal and issues a token pair
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	p, err := s.principals.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !p.Active || !p.VerifyPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, ErrBadCredentials
	}

	tokens, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		PrincipalID: p.ID,
		Username:    p.Username,
		Tier:        p.Tier.String(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("principal logged in",
		zap.String("username", p.Username),
		zap.String("tier", p.Tier.String()))

	return &LoginResponse{
		Principal: ToPrincipalResponse(p),
		Tokens:    *tokens,
	}, nil
}

// Refresh exchanges a refresh token for a fresh pair, re-reading the tier so
// assignments made since the last login take effect
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	principalID, err := claims.PrincipalUUID()
	if err != nil {
		return nil, err
	}

	p, err := s.principals.FindByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, shared.ErrForbidden
	}
	return s.jwt.RefreshTokenPair(req.RefreshToken, p.Tier.String())
}

// Register creates a new principal at the restricted tier
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*PrincipalResponse, error) {
	existing, err := s.principals.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	number, err := s.numbers.Next(ctx, numbering.KindPrincipal, time.Now())
	if err != nil {
		return nil, err
	}

	p, err := identity.NewPrincipal(number, req.Username, req.DisplayName, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.principals.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("principal registered",
		zap.String("number", p.Number),
		zap.String("username", p.Username))

	resp := ToPrincipalResponse(p)
	return &resp, nil
}

// AssignTier sets a principal's tier. Only master-tier callers may assign.
func (s *Service) AssignTier(ctx context.Context, principalID uuid.UUID, req AssignTierRequest) (*PrincipalResponse, error) {
	assigner, err := s.principals.FindByID(ctx, req.AssignedBy)
	if err != nil {
		return nil, err
	}
	if !assigner.Active || assigner.Tier != identity.TierMaster {
		return nil, shared.ErrForbidden
	}

	p, err := s.principals.FindByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	tier, ok := identity.ParseTier(req.Tier)
	if !ok {
		return nil, shared.NewDomainError("INVALID_TIER", "Unknown tier: "+req.Tier)
	}
	if err := p.AssignTier(tier, assigner.ID); err != nil {
		return nil, err
	}
	if err := s.principals.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("tier assigned",
		zap.String("principal", p.Username),
		zap.String("tier", tier.String()),
		zap.String("by", assigner.Username))

	resp := ToPrincipalResponse(p)
	return &resp, nil
}

// Check reports whether the principal may perform the named operation.
// The answer depends only on the principal's tier.
func (s *Service) Check(ctx context.Context, principalID uuid.UUID, operation string) (*CheckResponse, error) {
	p, err := s.principals.FindByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return &CheckResponse{
		Operation: operation,
		Allowed:   p.Can(operation),
	}, nil
}

// GetByID retrieves one principal
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*PrincipalResponse, error) {
	p, err := s.principals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPrincipalResponse(p)
	return &resp, nil
}

// List returns all principals
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]PrincipalResponse, error) {
	principals, err := s.principals.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToPrincipalResponses(principals), nil
}

// Deactivate disables a principal. Master only.
func (s *Service) Deactivate(ctx context.Context, principalID, actor uuid.UUID) error {
	caller, err := s.principals.FindByID(ctx, actor)
	if err != nil {
		return err
	}
	if !caller.Active || caller.Tier != identity.TierMaster {
		return shared.ErrForbidden
	}

	p, err := s.principals.FindByID(ctx, principalID)
	if err != nil {
		return err
	}
	p.Deactivate()
	return s.principals.Save(ctx, p)
}
