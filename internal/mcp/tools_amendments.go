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

type searchAmendmentsInput struct {
	Congress int `json:"congress,omitempty" jsonschema:"Congress number to search within (1-119)"`
	Limit    int `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset   int `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

type amendmentRefInput struct {
	Congress      int    `json:"congress" jsonschema:"required,Congress number (1-119)"`
	AmendmentType string `json:"amendment_type" jsonschema:"required,Amendment type (samdt or hamdt)"`
	Number        int    `json:"number" jsonschema:"required,Amendment number"`
}

func (s *Server) registerAmendmentTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_amendments",
		Description: "Search amendments, optionally scoped to a congress",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchAmendmentsInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_amendments")
		var toolErr error
		defer func() { done(toolErr) }()

		congress, vErr := checkCongress(args.Congress)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := "/amendment"
		if congress != 0 {
			endpoint = fmt.Sprintf("/amendment/%d", congress)
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		amendments := process.Pipeline(data, "amendments", process.PipelineOptions{
			DedupKeys:   process.AmendmentKeys,
			SortField:   "updateDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.AmendmentList(amendments)
		return textResult(md), listOutput{Markdown: md, Count: len(amendments)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_amendments",
		Description: "Search amendments across congresses",
		Category:    CategoryAmendments,
		Keywords:    []string{"samdt", "hamdt", "floor"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_amendment",
		Description: "Get detailed information about a specific amendment",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args amendmentRefInput) (*mcp.CallToolResult, detailOutput, error) {
		ctx, done := s.track(ctx, "get_amendment")
		var toolErr error
		defer func() { done(toolErr) }()

		if res := validate.CongressNumber(args.Congress); !res.Valid {
			toolErr = apierr.InvalidCongress(res.Message, res.Suggestions)
			return errorResult(toolErr), detailOutput{}, nil
		}
		res := validate.AmendmentType(args.AmendmentType)
		if !res.Valid {
			toolErr = apierr.FromValidation(res.Message, res.Suggestions)
			return errorResult(toolErr), detailOutput{}, nil
		}
		if args.Number <= 0 {
			toolErr = apierr.FromValidation("amendment number must be a positive integer",
				[]string{"Provide the amendment number, e.g. 2137 for SAMDT 2137"})
			return errorResult(toolErr), detailOutput{}, nil
		}

		endpoint := fmt.Sprintf("/amendment/%d/%s/%d", args.Congress, res.Sanitized.(string), args.Number)
		data, err := s.client.SafeRequest(ctx, endpoint, nil)
		if err != nil {
			toolErr = err
			return errorResult(err), detailOutput{}, nil
		}

		amendment, _ := data["amendment"].(map[string]any)
		md := format.AmendmentDetail(amendment)
		return textResult(md), detailOutput{Markdown: md}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "get_amendment",
		Description: "Get detailed information about a specific amendment",
		Category:    CategoryAmendments,
		Keywords:    []string{"purpose", "sponsor"},
	})
}
