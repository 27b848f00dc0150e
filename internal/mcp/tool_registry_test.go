package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *ToolRegistry {
	r := NewToolRegistry()
	r.Register(&ToolMetadata{
		Name:        "search_bills",
		Description: "Search bills and resolutions",
		Category:    CategoryBills,
		Keywords:    []string{"legislation"},
	})
	r.Register(&ToolMetadata{
		Name:        "get_bill",
		Description: "Get detailed information about a specific bill",
		Category:    CategoryBills,
	})
	r.Register(&ToolMetadata{
		Name:        "search_treaties",
		Description: "Search treaties received by the Senate",
		Category:    CategoryNominations,
		Keywords:    []string{"ratification"},
	})
	return r
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := newTestRegistry()

	assert.Equal(t, 3, r.Count())

	tool, found := r.Get("search_bills")
	require.True(t, found)
	assert.Equal(t, CategoryBills, tool.Category)

	_, found = r.Get("nonexistent")
	assert.False(t, found)
}

func TestRegistryIgnoresInvalid(t *testing.T) {
	r := NewToolRegistry()
	r.Register(nil)
	r.Register(&ToolMetadata{Description: "no name"})
	assert.Equal(t, 0, r.Count())
}

func TestRegistryListSorted(t *testing.T) {
	r := newTestRegistry()
	names := make([]string, 0)
	for _, tool := range r.List() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"get_bill", "search_bills", "search_treaties"}, names)
}

func TestRegistryListByCategory(t *testing.T) {
	r := newTestRegistry()
	bills := r.ListByCategory(CategoryBills)
	assert.Len(t, bills, 2)
	assert.Empty(t, r.ListByCategory(CategoryMeta))
}

func TestRegistrySearchScoring(t *testing.T) {
	r := newTestRegistry()

	results := r.Search("search_bills")
	require.NotEmpty(t, results)
	assert.Equal(t, 3, results[0].Score)
	assert.Equal(t, "search_bills", results[0].Tool.Name)

	results = r.Search("bill")
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, 2, res.Score)
	}

	results = r.Search("ratification")
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Score)
	assert.Equal(t, "search_treaties", results[0].Tool.Name)
}

func TestRegistrySearchEmptyQuery(t *testing.T) {
	r := newTestRegistry()
	assert.Nil(t, r.Search(""))
	assert.Nil(t, r.Search("   "))
}

func TestRegistrySearchCaseInsensitive(t *testing.T) {
	r := newTestRegistry()
	results := r.Search("TREATIES")
	require.Len(t, results, 1)
	assert.Equal(t, "search_treaties", results[0].Tool.Name)
}
