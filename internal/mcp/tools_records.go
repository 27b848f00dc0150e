package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/capitolworks/congressd/internal/apierr"
	"github.com/capitolworks/congressd/internal/format"
	"github.com/capitolworks/congressd/internal/process"
	"github.com/capitolworks/congressd/internal/validate"
)

// The bound Congressional Record only covers volumes printed between
// these years; later material lives in the daily record.
const (
	boundRecordMinYear = 1873
	boundRecordMaxYear = 1997
)

type searchSummariesInput struct {
	Congress int    `json:"congress,omitempty" jsonschema:"Congress number to search within (1-119)"`
	BillType string `json:"bill_type,omitempty" jsonschema:"Bill type filter (hr s hjres sjres hconres sconres hres sres)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset   int    `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

type searchCommunicationsInput struct {
	Congress int `json:"congress,omitempty" jsonschema:"Congress number to search within (1-119)"`
	Limit    int `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset   int `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

type dailyRecordInput struct {
	Volume int `json:"volume,omitempty" jsonschema:"Record volume number (e.g. 169)"`
	Issue  int `json:"issue,omitempty" jsonschema:"Issue number within the volume"`
	Limit  int `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset int `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

type boundRecordInput struct {
	Year   int `json:"year,omitempty" jsonschema:"Year of the bound record (1873-1997)"`
	Month  int `json:"month,omitempty" jsonschema:"Month (1-12), requires year"`
	Day    int `json:"day,omitempty" jsonschema:"Day (1-31), requires year and month"`
	Limit  int `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset int `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

func (s *Server) registerRecordTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_summaries",
		Description: "Search CRS-written bill summaries, optionally scoped to a congress",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchSummariesInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_summaries")
		var toolErr error
		defer func() { done(toolErr) }()

		congress, vErr := checkCongress(args.Congress)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := "/summaries"
		if congress != 0 {
			endpoint = fmt.Sprintf("/summaries/%d", congress)
			if args.BillType != "" {
				res := validate.BillType(args.BillType)
				if !res.Valid {
					toolErr = apierr.FromValidation(res.Message, res.Suggestions)
					return errorResult(toolErr), listOutput{}, nil
				}
				endpoint = fmt.Sprintf("/summaries/%d/%s", congress, res.Sanitized.(string))
			}
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		summaries := process.Pipeline(data, "summaries", process.PipelineOptions{
			DedupKeys:   process.SummaryKeys,
			SortField:   "actionDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.SummaryList(summaries)
		return textResult(md), listOutput{Markdown: md, Count: len(summaries)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_summaries",
		Description: "Search bill summaries across congresses",
		Category:    CategoryRecords,
		Keywords:    []string{"summary", "crs"},
	})

	s.registerCommunicationTool("search_house_communications", "House", "/house-communication")
	s.registerCommunicationTool("search_senate_communications", "Senate", "/senate-communication")

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_daily_congressional_record",
		Description: "Search daily Congressional Record issues",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args dailyRecordInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_daily_congressional_record")
		var toolErr error
		defer func() { done(toolErr) }()

		endpoint := "/daily-congressional-record"
		switch {
		case args.Volume > 0 && args.Issue > 0:
			endpoint = fmt.Sprintf("/daily-congressional-record/%d/%d", args.Volume, args.Issue)
		case args.Volume > 0:
			endpoint = fmt.Sprintf("/daily-congressional-record/%d", args.Volume)
		case args.Issue > 0:
			toolErr = apierr.FromValidation("issue requires a volume",
				[]string{"Provide the volume number alongside the issue"})
			return errorResult(toolErr), listOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		issues := process.Pipeline(data, "dailyCongressionalRecord", process.PipelineOptions{
			SortField:   "issueDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.RecordIssueList("Daily Congressional Record", issues)
		return textResult(md), listOutput{Markdown: md, Count: len(issues)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_daily_congressional_record",
		Description: "Search daily Congressional Record issues",
		Category:    CategoryRecords,
		Keywords:    []string{"record", "floor", "proceedings"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_bound_congressional_record",
		Description: "Search bound Congressional Record volumes (1873-1997)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args boundRecordInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_bound_congressional_record")
		var toolErr error
		defer func() { done(toolErr) }()

		endpoint := "/bound-congressional-record"
		if args.Year != 0 {
			res := validate.YearRange(args.Year, boundRecordMinYear, boundRecordMaxYear)
			if !res.Valid {
				toolErr = apierr.FromValidation(res.Message, res.Suggestions)
				return errorResult(toolErr), listOutput{}, nil
			}
			endpoint = fmt.Sprintf("/bound-congressional-record/%d", args.Year)
			if args.Month != 0 {
				if args.Day != 0 {
					if res := validate.DateComponents(args.Year, args.Month, args.Day); !res.Valid {
						toolErr = apierr.FromValidation(res.Message, res.Suggestions)
						return errorResult(toolErr), listOutput{}, nil
					}
					endpoint = fmt.Sprintf("/bound-congressional-record/%d/%d/%d", args.Year, args.Month, args.Day)
				} else {
					if res := validate.Month(args.Month); !res.Valid {
						toolErr = apierr.FromValidation(res.Message, res.Suggestions)
						return errorResult(toolErr), listOutput{}, nil
					}
					endpoint = fmt.Sprintf("/bound-congressional-record/%d/%d", args.Year, args.Month)
				}
			}
		} else if args.Month != 0 || args.Day != 0 {
			toolErr = apierr.FromValidation("month and day require a year",
				[]string{"Provide the year alongside month and day"})
			return errorResult(toolErr), listOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		issues := process.Pipeline(data, "boundCongressionalRecord", process.PipelineOptions{
			SortField:   "date",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.RecordIssueList("Bound Congressional Record", issues)
		return textResult(md), listOutput{Markdown: md, Count: len(issues)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_bound_congressional_record",
		Description: "Search bound Congressional Record volumes (1873-1997)",
		Category:    CategoryRecords,
		Keywords:    []string{"record", "bound", "historical"},
	})
}

// registerCommunicationTool registers one chamber's communication search.
// The two chambers share shape but not endpoint or list key casing.
func (s *Server) registerCommunicationTool(name, chamber, basePath string) {
	dataKey := "houseCommunications"
	if chamber == "Senate" {
		dataKey = "senateCommunications"
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        name,
		Description: fmt.Sprintf("Search %s communications from the executive branch", chamber),
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchCommunicationsInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, name)
		var toolErr error
		defer func() { done(toolErr) }()

		congress, vErr := checkCongress(args.Congress)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := basePath
		if congress != 0 {
			endpoint = fmt.Sprintf("%s/%d", basePath, congress)
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		comms := process.Pipeline(data, dataKey, process.PipelineOptions{
			DedupKeys:   process.CommunicationKeys,
			SortField:   "updateDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.CommunicationList(chamber, comms)
		return textResult(md), listOutput{Markdown: md, Count: len(comms)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        name,
		Description: fmt.Sprintf("Search %s communications", chamber),
		Category:    CategoryRecords,
		Keywords:    []string{"executive communication", "ec", "presidential message"},
	})
}
