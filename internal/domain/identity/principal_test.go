package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeops/backend/internal/domain/shared"
)

func createTestPrincipal(t *testing.T) *Principal {
	t.Helper()
	p, err := NewPrincipal("P202504160001", "jchoi", "Choi Jiwon", "s3cret-pass")
	require.NoError(t, err)
	return p
}

func TestNewPrincipal(t *testing.T) {
	p := createTestPrincipal(t)

	assert.Equal(t, "P202504160001", p.Number)
	assert.Equal(t, "jchoi", p.Username)
	assert.Equal(t, TierRestricted, p.Tier)
	assert.True(t, p.Active)
	assert.Nil(t, p.TierAssignedBy)
	assert.True(t, p.VerifyPassword("s3cret-pass"))
	assert.False(t, p.VerifyPassword("wrong"))
}

func TestNewPrincipal_Validation(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		username string
		display  string
		password string
		wantCode string
	}{
		{"empty number", "", "u", "U", "password1", "INVALID_NUMBER"},
		{"empty username", "P202504160001", "  ", "U", "password1", "INVALID_USERNAME"},
		{"empty display name", "P202504160001", "u", "", "password1", "INVALID_DISPLAY_NAME"},
		{"short password", "P202504160001", "u", "U", "short", "INVALID_PASSWORD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPrincipal(tt.number, tt.username, tt.display, tt.password)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestPrincipal_AssignTier(t *testing.T) {
	p := createTestPrincipal(t)
	admin := uuid.New()

	require.NoError(t, p.AssignTier(TierAdvanced, admin))
	assert.Equal(t, TierAdvanced, p.Tier)
	require.NotNil(t, p.TierAssignedBy)
	assert.Equal(t, admin, *p.TierAssignedBy)
	firstAssignedAt := p.TierAssignedAt

	// Re-assigning the same tier is a no-op
	require.NoError(t, p.AssignTier(TierAdvanced, uuid.New()))
	assert.Equal(t, admin, *p.TierAssignedBy)
	assert.Equal(t, firstAssignedAt, p.TierAssignedAt)

	err := p.AssignTier(Tier("GUEST"), admin)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TIER", domainErr.Code)
}

func TestPrincipal_Can(t *testing.T) {
	p := createTestPrincipal(t)
	require.NoError(t, p.AssignTier(TierNormal, uuid.New()))

	assert.True(t, p.Can("customer.edit"))
	assert.False(t, p.Can("workflow.advance"))

	p.Deactivate()
	assert.False(t, p.Can("customer.edit"))
}
