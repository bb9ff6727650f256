package identity

import (
	"strings"
)

// Tier is one of the five permission levels. Each tier's capability set is a
// strict superset of the one below it.
type Tier string

const (
	TierRestricted Tier = "RESTRICTED"
	TierNormal     Tier = "NORMAL"
	TierAdvanced   Tier = "ADVANCED"
	TierAdmin      Tier = "ADMIN"
	TierMaster     Tier = "MASTER"
)

// Tiers lists all tiers in ascending order of privilege
var Tiers = []Tier{TierRestricted, TierNormal, TierAdvanced, TierAdmin, TierMaster}

// IsValid checks if the tier is a known Tier
func (t Tier) IsValid() bool {
	switch t {
	case TierRestricted, TierNormal, TierAdvanced, TierAdmin, TierMaster:
		return true
	}
	return false
}

// String returns the string representation of the tier
func (t Tier) String() string {
	return string(t)
}

// Rank returns the 1-based privilege rank, 0 for unknown tiers
func (t Tier) Rank() int {
	for i, tier := range Tiers {
		if tier == t {
			return i + 1
		}
	}
	return 0
}

// AtLeast reports whether this tier carries at least the privilege of other
func (t Tier) AtLeast(other Tier) bool {
	return t.Rank() >= other.Rank() && t.Rank() > 0
}

// capability patterns added per tier, on top of everything below it.
// A trailing ".*" matches every action on the resource.
var tierGrants = map[Tier][]string{
	TierRestricted: {"personal.view", "fx.view"},
	TierNormal:     {"customer.*", "product.*", "quotation.*", "supplier.*"},
	TierAdvanced: {"workflow.*", "purchase_order.*", "shipping.*", "approval.*",
		"cash_flow.*", "invoice.*", "pdf_design.*"},
	TierAdmin:  {"employee.*", "vacation.*"},
	TierMaster: {"data.delete"},
}

// Allows reports whether this tier may perform the named operation.
// The decision depends only on the tier: no time, no state.
func (t Tier) Allows(operation string) bool {
	rank := t.Rank()
	if rank == 0 || operation == "" {
		return false
	}
	for _, tier := range Tiers[:rank] {
		for _, pattern := range tierGrants[tier] {
			if matchCapability(pattern, operation) {
				return true
			}
		}
	}
	return false
}

// Capabilities returns the full expanded pattern set of the tier
func (t Tier) Capabilities() []string {
	rank := t.Rank()
	if rank == 0 {
		return nil
	}
	var caps []string
	for _, tier := range Tiers[:rank] {
		caps = append(caps, tierGrants[tier]...)
	}
	return caps
}

// matchCapability matches "resource.action" operations against patterns,
// where "resource.*" covers every action on the resource
func matchCapability(pattern, operation string) bool {
	if pattern == operation {
		return true
	}
	if resource, ok := strings.CutSuffix(pattern, ".*"); ok {
		return strings.HasPrefix(operation, resource+".")
	}
	return false
}

// ParseTier parses a tier name case-insensitively
func ParseTier(s string) (Tier, bool) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	if t.IsValid() {
		return t, true
	}
	return "", false
}
