package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/capitolworks/congressd/internal/apierr"
	"github.com/capitolworks/congressd/internal/format"
	"github.com/capitolworks/congressd/internal/process"
)

type searchCRSReportsInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset int `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

type crsReportRefInput struct {
	ReportID string `json:"report_id" jsonschema:"required,CRS report identifier (e.g. R47175)"`
}

func (s *Server) registerResearchTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_crs_reports",
		Description: "Search Congressional Research Service reports (paid tier)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchCRSReportsInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_crs_reports")
		var toolErr error
		defer func() { done(toolErr) }()

		if err := s.access.Check(s.tier, "search_crs_reports"); err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, "/crsreport", listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		reports := process.Pipeline(data, "CRSReports", process.PipelineOptions{
			DedupKeys:   []string{"id"},
			SortField:   "publishDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.CRSReportList(reports)
		return textResult(md), listOutput{Markdown: md, Count: len(reports)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_crs_reports",
		Description: "Search Congressional Research Service reports (paid tier)",
		Category:    CategoryResearch,
		Keywords:    []string{"crs", "research", "report"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_crs_report",
		Description: "Get a Congressional Research Service report (paid tier)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args crsReportRefInput) (*mcp.CallToolResult, detailOutput, error) {
		ctx, done := s.track(ctx, "get_crs_report")
		var toolErr error
		defer func() { done(toolErr) }()

		if err := s.access.Check(s.tier, "get_crs_report"); err != nil {
			toolErr = err
			return errorResult(err), detailOutput{}, nil
		}

		id := strings.ToUpper(strings.TrimSpace(args.ReportID))
		if id == "" {
			toolErr = apierr.FromValidation("report_id is required",
				[]string{"Find report IDs with search_crs_reports, e.g. R47175"})
			return errorResult(toolErr), detailOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, "/crsreport/"+id, nil)
		if err != nil {
			toolErr = err
			return errorResult(err), detailOutput{}, nil
		}

		report, _ := data["CRSReport"].(map[string]any)
		md := format.CRSReportDetail(report)
		return textResult(md), detailOutput{Markdown: md}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "get_crs_report",
		Description: "Get a Congressional Research Service report (paid tier)",
		Category:    CategoryResearch,
		Keywords:    []string{"crs", "research"},
	})
}
