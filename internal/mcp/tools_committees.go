package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/capitolworks/congressd/internal/apierr"
	"github.com/capitolworks/congressd/internal/format"
	"github.com/capitolworks/congressd/internal/process"
)

type searchCommitteesInput struct {
	Chamber string `json:"chamber,omitempty" jsonschema:"Chamber filter (house senate or joint)"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset  int    `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

type committeeRefInput struct {
	Chamber    string `json:"chamber" jsonschema:"required,Chamber (house senate or joint)"`
	SystemCode string `json:"system_code" jsonschema:"required,Committee system code (e.g. hsju00)"`
}

type searchReportsInput struct {
	Congress int `json:"congress,omitempty" jsonschema:"Congress number to search within (1-119)"`
	Limit    int `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset   int `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

// checkChamber canonicalizes the chamber argument; empty means absent.
func checkChamber(chamber string) (string, *apierr.Error) {
	chamber = strings.ToLower(strings.TrimSpace(chamber))
	switch chamber {
	case "", "house", "senate", "joint":
		return chamber, nil
	}
	return "", apierr.FromValidation(
		fmt.Sprintf("invalid chamber %q", chamber),
		[]string{"Use one of: house, senate, joint"})
}

func (s *Server) registerCommitteeTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_committees",
		Description: "List congressional committees, optionally filtered by chamber",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchCommitteesInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_committees")
		var toolErr error
		defer func() { done(toolErr) }()

		chamber, vErr := checkChamber(args.Chamber)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := "/committee"
		if chamber != "" {
			endpoint = "/committee/" + chamber
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		committees := process.Pipeline(data, "committees", process.PipelineOptions{
			SortField:   "name",
			SortDefault: "",
		})
		md := format.CommitteeList(committees)
		return textResult(md), listOutput{Markdown: md, Count: len(committees)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_committees",
		Description: "List congressional committees by chamber",
		Category:    CategoryCommittees,
		Keywords:    []string{"subcommittee", "jurisdiction"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_committee",
		Description: "Get detailed information about a specific committee",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args committeeRefInput) (*mcp.CallToolResult, detailOutput, error) {
		ctx, done := s.track(ctx, "get_committee")
		var toolErr error
		defer func() { done(toolErr) }()

		chamber, vErr := checkChamber(args.Chamber)
		if vErr != nil || chamber == "" {
			if vErr == nil {
				vErr = apierr.FromValidation("chamber is required",
					[]string{"Use one of: house, senate, joint"})
			}
			toolErr = vErr
			return errorResult(vErr), detailOutput{}, nil
		}
		code := strings.ToLower(strings.TrimSpace(args.SystemCode))
		if code == "" {
			toolErr = apierr.FromValidation("system_code is required",
				[]string{"Find codes with search_committees, e.g. hsju00 for House Judiciary"})
			return errorResult(toolErr), detailOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, fmt.Sprintf("/committee/%s/%s", chamber, code), nil)
		if err != nil {
			toolErr = err
			return errorResult(err), detailOutput{}, nil
		}

		committee, _ := data["committee"].(map[string]any)
		md := format.CommitteeDetail(committee)
		return textResult(md), detailOutput{Markdown: md}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "get_committee",
		Description: "Get detailed information about a specific committee",
		Category:    CategoryCommittees,
		Keywords:    []string{"system code", "subcommittees"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_committee_reports",
		Description: "Search committee reports, optionally scoped to a congress",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchReportsInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_committee_reports")
		var toolErr error
		defer func() { done(toolErr) }()

		congress, vErr := checkCongress(args.Congress)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := "/committee-report"
		if congress != 0 {
			endpoint = fmt.Sprintf("/committee-report/%d", congress)
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		reports := process.Pipeline(data, "reports", process.PipelineOptions{
			DedupKeys:   process.CommitteeReportKeys,
			SortField:   "updateDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.CommitteeReportList(reports)
		return textResult(md), listOutput{Markdown: md, Count: len(reports)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_committee_reports",
		Description: "Search committee reports across congresses",
		Category:    CategoryCommittees,
		Keywords:    []string{"hrpt", "srpt", "citation"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_committee_prints",
		Description: "Search committee prints, optionally scoped to a congress",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchReportsInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_committee_prints")
		var toolErr error
		defer func() { done(toolErr) }()

		congress, vErr := checkCongress(args.Congress)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := "/committee-print"
		if congress != 0 {
			endpoint = fmt.Sprintf("/committee-print/%d", congress)
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		prints := process.Pipeline(data, "committeePrints", process.PipelineOptions{
			DedupKeys:   process.CommitteePrintKeys,
			SortField:   "updateDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.CommitteePrintList(prints)
		return textResult(md), listOutput{Markdown: md, Count: len(prints)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_committee_prints",
		Description: "Search committee prints across congresses",
		Category:    CategoryCommittees,
		Keywords:    []string{"jacket"},
	})
}
