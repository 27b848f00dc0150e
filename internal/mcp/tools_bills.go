package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/capitolworks/congressd/internal/apierr"
	"github.com/capitolworks/congressd/internal/format"
	"github.com/capitolworks/congressd/internal/process"
	"github.com/capitolworks/congressd/internal/validate"
)

type searchBillsInput struct {
	Congress int    `json:"congress,omitempty" jsonschema:"Congress number to search within (1-119)"`
	BillType string `json:"bill_type,omitempty" jsonschema:"Bill type filter (hr s hjres sjres hconres sconres hres sres)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset   int    `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
	FromDate string `json:"from_date,omitempty" jsonschema:"Earliest update date (YYYY-MM-DDT00:00:00Z)"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"Latest update date (YYYY-MM-DDT00:00:00Z)"`
}

type billRefInput struct {
	Congress int    `json:"congress" jsonschema:"required,Congress number (1-119)"`
	BillType string `json:"bill_type" jsonschema:"required,Bill type (hr s hjres sjres hconres sconres hres sres)"`
	Number   int    `json:"number" jsonschema:"required,Bill number"`
}

// billRef validates a fully-qualified bill reference and returns its
// endpoint path prefix and display label.
func billRef(args billRefInput) (endpoint, label string, err *apierr.Error) {
	if res := validate.CongressNumber(args.Congress); !res.Valid {
		return "", "", apierr.InvalidCongress(res.Message, res.Suggestions)
	}
	res := validate.BillType(args.BillType)
	if !res.Valid {
		return "", "", apierr.FromValidation(res.Message, res.Suggestions)
	}
	billType := res.Sanitized.(string)
	if args.Number <= 0 {
		return "", "", apierr.FromValidation("bill number must be a positive integer",
			[]string{"Provide the bill number, e.g. 3076 for HR 3076"})
	}
	endpoint = fmt.Sprintf("/bill/%d/%s/%d", args.Congress, billType, args.Number)
	label = fmt.Sprintf("%s %d (Congress %d)", strings.ToUpper(billType), args.Number, args.Congress)
	return endpoint, label, nil
}

func (s *Server) registerBillTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_bills",
		Description: "Search bills and resolutions, optionally scoped to a congress and bill type",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchBillsInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_bills")
		var toolErr error
		defer func() { done(toolErr) }()

		congress, vErr := checkCongress(args.Congress)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := "/bill"
		if congress != 0 {
			endpoint = fmt.Sprintf("/bill/%d", congress)
			if args.BillType != "" {
				res := validate.BillType(args.BillType)
				if !res.Valid {
					toolErr = apierr.FromValidation(res.Message, res.Suggestions)
					return errorResult(toolErr), listOutput{}, nil
				}
				endpoint = fmt.Sprintf("/bill/%d/%s", congress, res.Sanitized.(string))
			}
		}

		params := listParams(args.Limit, args.Offset)
		params["fromDateTime"] = args.FromDate
		params["toDateTime"] = args.ToDate

		data, err := s.client.SafeRequest(ctx, endpoint, params)
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		bills := process.Pipeline(data, "bills", process.PipelineOptions{
			DedupKeys:   process.BillKeys,
			SortField:   "updateDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.BillList(bills)
		return textResult(md), listOutput{Markdown: md, Count: len(bills)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_bills",
		Description: "Search bills and resolutions across congresses",
		Category:    CategoryBills,
		Keywords:    []string{"legislation", "hr", "resolution"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_bill",
		Description: "Get detailed information about a specific bill",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args billRefInput) (*mcp.CallToolResult, detailOutput, error) {
		ctx, done := s.track(ctx, "get_bill")
		var toolErr error
		defer func() { done(toolErr) }()

		endpoint, _, vErr := billRef(args)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), detailOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, endpoint, nil)
		if err != nil {
			toolErr = err
			return errorResult(err), detailOutput{}, nil
		}

		bill, _ := data["bill"].(map[string]any)
		md := format.BillDetail(bill)
		return textResult(md), detailOutput{Markdown: md}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "get_bill",
		Description: "Get detailed information about a specific bill",
		Category:    CategoryBills,
		Keywords:    []string{"detail", "sponsor", "law"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_bill_actions",
		Description: "Get the action history of a specific bill",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args billRefInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "get_bill_actions")
		var toolErr error
		defer func() { done(toolErr) }()

		endpoint, label, vErr := billRef(args)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, endpoint+"/actions", nil)
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		actions := process.Pipeline(data, "actions", process.PipelineOptions{
			SortField:   "actionDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.BillActions(label, actions)
		return textResult(md), listOutput{Markdown: md, Count: len(actions)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "get_bill_actions",
		Description: "Get the action history of a specific bill",
		Category:    CategoryBills,
		Keywords:    []string{"history", "votes", "referrals"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_bill_text",
		Description: "List the available text versions of a specific bill",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args billRefInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "get_bill_text")
		var toolErr error
		defer func() { done(toolErr) }()

		endpoint, label, vErr := billRef(args)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, endpoint+"/text", nil)
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		versions := process.ExtractList(data, "textVersions")
		md := format.BillTextVersions(label, versions)
		return textResult(md), listOutput{Markdown: md, Count: len(versions)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "get_bill_text",
		Description: "List the available text versions of a specific bill",
		Category:    CategoryBills,
		Keywords:    []string{"text", "pdf", "versions"},
	})
}
