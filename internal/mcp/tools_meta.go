package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type serverStatusInput struct{}

type serverStatusOutput struct {
	Version       string  `json:"version" jsonschema:"Server version"`
	UptimeSeconds float64 `json:"uptime_seconds" jsonschema:"Seconds since the server started"`
	Requests      uint64  `json:"requests" jsonschema:"Upstream API requests issued since start"`
	CacheSize     int     `json:"cache_size" jsonschema:"Entries currently cached"`
	CacheHits     uint64  `json:"cache_hits" jsonschema:"Cache hits since start"`
	CacheMisses   uint64  `json:"cache_misses" jsonschema:"Cache misses since start"`
	Tools         int     `json:"tools" jsonschema:"Number of registered tools"`
	Tier          string  `json:"tier" jsonschema:"Configured access tier"`
}

type toolSearchInput struct {
	Query    string `json:"query" jsonschema:"required,Search query matched against tool names descriptions and keywords"`
	Category string `json:"category,omitempty" jsonschema:"Restrict to a category (bills amendments committees members records nominations research meta)"`
}

type toolSearchOutput struct {
	Tools []*SearchResult `json:"tools" jsonschema:"Matching tools ordered by score"`
	Count int             `json:"count" jsonschema:"Number of matches"`
}

func (s *Server) registerMetaTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "server_status",
		Description: "Report server uptime, upstream request count and cache statistics",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args serverStatusInput) (*mcp.CallToolResult, serverStatusOutput, error) {
		ctx, done := s.track(ctx, "server_status")
		defer func() { done(nil) }()

		stats := s.client.CacheStats()
		out := serverStatusOutput{
			Version:       s.version,
			UptimeSeconds: time.Since(s.started).Seconds(),
			Requests:      s.client.RequestCount(),
			CacheSize:     stats.Size,
			CacheHits:     stats.Hits,
			CacheMisses:   stats.Misses,
			Tools:         s.registry.Count(),
			Tier:          string(s.tier),
		}

		var b strings.Builder
		b.WriteString("# Server Status\n\n")
		fmt.Fprintf(&b, "- **Version:** %s\n", out.Version)
		fmt.Fprintf(&b, "- **Uptime:** %s\n", time.Since(s.started).Round(time.Second))
		fmt.Fprintf(&b, "- **Upstream requests:** %d\n", out.Requests)
		fmt.Fprintf(&b, "- **Cache:** %d entries, %d hits / %d misses (%.1f%% hit ratio)\n",
			out.CacheSize, out.CacheHits, out.CacheMisses, stats.HitRatio*100)
		fmt.Fprintf(&b, "- **Tools:** %d registered\n", out.Tools)
		fmt.Fprintf(&b, "- **Tier:** %s\n", out.Tier)

		return textResult(b.String()), out, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "server_status",
		Description: "Report server uptime, request count and cache statistics",
		Category:    CategoryMeta,
		Keywords:    []string{"health", "uptime", "cache"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "tool_search",
		Description: "Discover available tools by keyword",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args toolSearchInput) (*mcp.CallToolResult, toolSearchOutput, error) {
		ctx, done := s.track(ctx, "tool_search")
		defer func() { done(nil) }()

		results := s.registry.Search(args.Query)
		if args.Category != "" {
			category := ToolCategory(strings.ToLower(strings.TrimSpace(args.Category)))
			filtered := results[:0]
			for _, r := range results {
				if r.Tool.Category == category {
					filtered = append(filtered, r)
				}
			}
			results = filtered
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Found %d tool(s) for %q.\n", len(results), args.Query)
		for _, r := range results {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", r.Tool.Name, r.Tool.Category, r.Tool.Description)
		}

		return textResult(b.String()), toolSearchOutput{Tools: results, Count: len(results)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "tool_search",
		Description: "Discover available tools by keyword",
		Category:    CategoryMeta,
		Keywords:    []string{"discovery", "help"},
	})
}
