package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/capitolworks/congressd/internal/format"
)

const (
	overviewURI      = "congress://overview"
	billURIPrefix    = "congress://bill/"
	billURITemplate  = "congress://bill/{congress}/{bill_type}/{number}"
	resourceMIMEType = "text/markdown"
)

// registerResources exposes read-only views over the same pipeline the
// tools use.
func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         overviewURI,
		Name:        "overview",
		Description: "Server capabilities and tool inventory",
		MIMEType:    resourceMIMEType,
	}, s.readOverview)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: billURITemplate,
		Name:        "bill",
		Description: "Detailed information about a specific bill",
		MIMEType:    resourceMIMEType,
	}, s.readBill)
}

func (s *Server) readOverview(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	var b strings.Builder
	b.WriteString("# congressd\n\n")
	b.WriteString("MCP server for the Congress.gov API v3.\n\n")
	fmt.Fprintf(&b, "%d tools registered:\n\n", s.registry.Count())
	for _, tool := range s.registry.List() {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", tool.Name, tool.Category, tool.Description)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      overviewURI,
			MIMEType: resourceMIMEType,
			Text:     b.String(),
		}},
	}, nil
}

func (s *Server) readBill(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	rest := strings.TrimPrefix(uri, billURIPrefix)
	parts := strings.Split(rest, "/")
	if rest == uri || len(parts) != 3 {
		return nil, fmt.Errorf("invalid bill resource URI %q, want %s", uri, billURITemplate)
	}

	congress, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid congress number in %q", uri)
	}
	number, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid bill number in %q", uri)
	}

	endpoint, _, vErr := billRef(billRefInput{
		Congress: congress,
		BillType: parts[1],
		Number:   number,
	})
	if vErr != nil {
		return nil, vErr
	}

	data, reqErr := s.client.SafeRequest(ctx, endpoint, nil)
	if reqErr != nil {
		return nil, reqErr
	}

	bill, _ := data["bill"].(map[string]any)
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: resourceMIMEType,
			Text:     format.BillDetail(bill),
		}},
	}, nil
}
