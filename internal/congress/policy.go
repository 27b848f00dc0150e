package congress

import (
	"strings"
	"time"
)

// Family is a logical endpoint grouping sharing one retry/timeout policy.
type Family string

const (
	FamilyDefault        Family = "default"
	FamilyBills          Family = "bills"
	FamilyAmendments     Family = "amendments"
	FamilyCommittees     Family = "committees"
	FamilyMembers        Family = "members"
	FamilyNominations    Family = "nominations"
	FamilyTreaties       Family = "treaties"
	FamilyCommunications Family = "communications"
	FamilySummaries      Family = "summaries"
	FamilyHearings       Family = "hearings"
	FamilyRecord         Family = "congressional-record"
	FamilyCRSReports     Family = "crs-reports"
)

// Policy is the immutable retry/timeout template for an endpoint family.
// Resolve copies it before applying per-call overrides.
type Policy struct {
	Timeout           time.Duration
	RetryCount        int
	RetryDelay        time.Duration
	MaxRetryDelay     time.Duration
	BackoffMultiplier float64
	SanitizeParams    bool
	RemoveEmptyParams bool
}

// defaultPolicy is the template for anything without a family entry.
var defaultPolicy = Policy{
	Timeout:           10 * time.Second,
	RetryCount:        1,
	RetryDelay:        time.Second,
	MaxRetryDelay:     5 * time.Second,
	BackoffMultiplier: 2.0,
	SanitizeParams:    true,
	RemoveEmptyParams: true,
}

// policies is the single canonical policy table. Families not listed use
// defaultPolicy. Retry counts reflect observed upstream flakiness: the
// bill and CRS report endpoints time out more often than the rest.
var policies = map[Family]Policy{
	FamilyBills:      withRetries(3),
	FamilyAmendments: withRetries(2),
	FamilyCRSReports: withRetries(3),
	FamilyRecord:     withRetries(2),
}

func withRetries(n int) Policy {
	p := defaultPolicy
	p.RetryCount = n
	return p
}

// familyBySegment routes the leading path segment of a request to its
// family. Routing on the whole segment, not a substring, keeps
// "committee-report" from ever matching a "committee" rule by accident.
var familyBySegment = map[string]Family{
	"bill":                       FamilyBills,
	"law":                        FamilyBills,
	"amendment":                  FamilyAmendments,
	"committee":                  FamilyCommittees,
	"committee-report":           FamilyCommittees,
	"committee-print":            FamilyCommittees,
	"committee-meeting":          FamilyCommittees,
	"member":                     FamilyMembers,
	"nomination":                 FamilyNominations,
	"treaty":                     FamilyTreaties,
	"house-communication":        FamilyCommunications,
	"senate-communication":       FamilyCommunications,
	"house-requirement":          FamilyCommunications,
	"summaries":                  FamilySummaries,
	"hearing":                    FamilyHearings,
	"congressional-record":       FamilyRecord,
	"daily-congressional-record": FamilyRecord,
	"bound-congressional-record": FamilyRecord,
	"crsreport":                  FamilyCRSReports,
}

// ResolveFamily maps a request path to its endpoint family by its first
// path segment.
func ResolveFamily(endpoint string) Family {
	seg := strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if f, found := familyBySegment[seg]; found {
		return f
	}
	return FamilyDefault
}

// PolicyFor returns a copy of the policy for a family.
func PolicyFor(f Family) Policy {
	if p, found := policies[f]; found {
		return p
	}
	return defaultPolicy
}
