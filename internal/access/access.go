// Package access gates operations by subscription tier.
//
// The policy is an explicit value checked at the top of gated handlers,
// not an implicit wrapper: handlers call Check and convert a denial into
// a taxonomy error.
package access

import (
	"github.com/capitolworks/congressd/internal/apierr"
)

// Tier is the server's subscription level.
type Tier string

const (
	TierFree Tier = "free"
	TierPaid Tier = "paid"
)

// Policy decides which operations a tier may invoke.
type Policy struct {
	paidOnly map[string]struct{}
}

// NewPolicy builds a policy from the set of paid-only operation names.
// Operations not listed are available to every tier.
func NewPolicy(paidOnly []string) *Policy {
	set := make(map[string]struct{}, len(paidOnly))
	for _, op := range paidOnly {
		set[op] = struct{}{}
	}
	return &Policy{paidOnly: set}
}

// DefaultPaidOperations are the tools reserved for the paid tier.
var DefaultPaidOperations = []string{
	"search_crs_reports",
	"get_crs_report",
}

// Check returns nil if tier may invoke operation, or an AccessDenied
// taxonomy error otherwise.
func (p *Policy) Check(tier Tier, operation string) error {
	if _, gated := p.paidOnly[operation]; !gated {
		return nil
	}
	if tier == TierPaid {
		return nil
	}
	return apierr.AccessDenied(operation)
}

// IsGated reports whether operation requires the paid tier.
func (p *Policy) IsGated(operation string) bool {
	_, gated := p.paidOnly[operation]
	return gated
}
