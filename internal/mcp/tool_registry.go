package mcp

import (
	"sort"
	"strings"
	"sync"
)

// ToolCategory represents the functional category of a tool.
type ToolCategory string

const (
	// CategoryBills is for bill search and detail tools.
	CategoryBills ToolCategory = "bills"
	// CategoryAmendments is for amendment tools.
	CategoryAmendments ToolCategory = "amendments"
	// CategoryCommittees is for committee, report and print tools.
	CategoryCommittees ToolCategory = "committees"
	// CategoryMembers is for member tools.
	CategoryMembers ToolCategory = "members"
	// CategoryRecords is for summaries, communications and the
	// Congressional Record.
	CategoryRecords ToolCategory = "records"
	// CategoryNominations is for nomination, treaty and hearing tools.
	CategoryNominations ToolCategory = "nominations"
	// CategoryResearch is for CRS report tools.
	CategoryResearch ToolCategory = "research"
	// CategoryMeta is for server introspection tools.
	CategoryMeta ToolCategory = "meta"
)

// ToolMetadata describes a registered MCP tool.
type ToolMetadata struct {
	// Name is the unique tool name (e.g., "search_bills").
	Name string `json:"name"`

	// Description is a human-readable description of what the tool does.
	Description string `json:"description"`

	// Category is the functional category of the tool.
	Category ToolCategory `json:"category"`

	// Keywords are additional searchable terms for this tool.
	Keywords []string `json:"keywords,omitempty"`
}

// ToolRegistry tracks metadata about all registered MCP tools. It backs
// tool discovery and the status tool's inventory.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]*ToolMetadata
}

// NewToolRegistry creates a new tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]*ToolMetadata),
	}
}

// Register adds a tool to the registry.
func (r *ToolRegistry) Register(tool *ToolMetadata) {
	if tool == nil || tool.Name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name] = tool
}

// Get returns the metadata for a specific tool.
func (r *ToolRegistry) Get(name string) (*ToolMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, found := r.tools[name]
	return tool, found
}

// List returns all registered tool metadata, sorted by name.
func (r *ToolRegistry) List() []*ToolMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*ToolMetadata, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// ListByCategory returns all tools in a specific category, sorted by name.
func (r *ToolRegistry) ListByCategory(category ToolCategory) []*ToolMetadata {
	result := make([]*ToolMetadata, 0)
	for _, tool := range r.List() {
		if tool.Category == category {
			result = append(result, tool)
		}
	}
	return result
}

// Count returns the total number of registered tools.
func (r *ToolRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// SearchResult is a tool match from a search query.
type SearchResult struct {
	// Tool is the matched tool metadata.
	Tool *ToolMetadata `json:"tool"`

	// Score indicates match quality (higher is better).
	// 3 = exact name match
	// 2 = name contains query
	// 1 = description/keywords match
	Score int `json:"score"`

	// MatchReason describes why this tool matched.
	MatchReason string `json:"match_reason"`
}

// Search finds tools matching the query, case-insensitively, against
// names, descriptions and keywords. Results are ordered by score then name.
func (r *ToolRegistry) Search(query string) []*SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []*SearchResult
	for _, tool := range r.List() {
		if match := r.match(tool, query); match != nil {
			results = append(results, match)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func (r *ToolRegistry) match(tool *ToolMetadata, query string) *SearchResult {
	name := strings.ToLower(tool.Name)
	if name == query {
		return &SearchResult{Tool: tool, Score: 3, MatchReason: "exact name match"}
	}
	if strings.Contains(name, query) {
		return &SearchResult{Tool: tool, Score: 2, MatchReason: "name contains query"}
	}
	if strings.Contains(strings.ToLower(tool.Description), query) {
		return &SearchResult{Tool: tool, Score: 1, MatchReason: "description contains query"}
	}
	for _, kw := range tool.Keywords {
		if strings.Contains(strings.ToLower(kw), query) {
			return &SearchResult{Tool: tool, Score: 1, MatchReason: "keyword contains query"}
		}
	}
	return nil
}
