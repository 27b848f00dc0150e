package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitolworks/congressd/internal/access"
	"github.com/capitolworks/congressd/internal/congress"
)

func newTestServer(t *testing.T, cfg *Config) *Server {
	t.Helper()
	client, err := congress.NewClient(congress.Config{APIKey: "test-key"})
	require.NoError(t, err)
	s, err := NewServer(cfg, client)
	require.NoError(t, err)
	return s
}

func TestNewServerRequiresClient(t *testing.T) {
	_, err := NewServer(DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestNewServerDefaults(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Equal(t, access.TierFree, s.tier)
	assert.Equal(t, "dev", s.version)
}

func TestNewServerRegistersAllTools(t *testing.T) {
	s := newTestServer(t, nil)

	expected := []string{
		"search_bills", "get_bill", "get_bill_actions", "get_bill_text",
		"search_amendments", "get_amendment",
		"search_committees", "get_committee",
		"search_committee_reports", "search_committee_prints",
		"search_members", "get_member", "get_member_sponsored",
		"search_summaries",
		"search_house_communications", "search_senate_communications",
		"search_daily_congressional_record", "search_bound_congressional_record",
		"search_nominations", "get_nomination",
		"search_treaties", "get_treaty",
		"search_hearings",
		"search_crs_reports", "get_crs_report",
		"server_status", "tool_search",
	}
	for _, name := range expected {
		_, found := s.registry.Get(name)
		assert.True(t, found, "tool %s not registered", name)
	}
	assert.Equal(t, len(expected), s.registry.Count())
}

func TestCRSReportsGatedByTier(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Error(t, s.access.Check(s.tier, "search_crs_reports"))

	cfg := DefaultConfig()
	cfg.Tier = access.TierPaid
	paid := newTestServer(t, cfg)
	assert.NoError(t, paid.access.Check(paid.tier, "search_crs_reports"))
}
