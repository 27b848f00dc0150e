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

type searchNominationsInput struct {
	Congress int `json:"congress,omitempty" jsonschema:"Congress number to search within (1-119)"`
	Limit    int `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset   int `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

type nominationRefInput struct {
	Congress int `json:"congress" jsonschema:"required,Congress number (1-119)"`
	Number   int `json:"number" jsonschema:"required,Nomination number (PN number without the prefix)"`
}

type searchTreatiesInput struct {
	Congress int `json:"congress,omitempty" jsonschema:"Congress the treaty was received in (1-119)"`
	Limit    int `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset   int `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

type treatyRefInput struct {
	Congress int    `json:"congress" jsonschema:"required,Congress the treaty was received in (1-119)"`
	Number   int    `json:"number" jsonschema:"required,Treaty number"`
	Suffix   string `json:"suffix,omitempty" jsonschema:"Treaty part suffix (e.g. A) for partitioned treaties"`
}

type searchHearingsInput struct {
	Congress int    `json:"congress,omitempty" jsonschema:"Congress number to search within (1-119)"`
	Chamber  string `json:"chamber,omitempty" jsonschema:"Chamber filter (house senate or joint), requires congress"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset   int    `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

func (s *Server) registerNominationTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_nominations",
		Description: "Search presidential nominations, optionally scoped to a congress",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchNominationsInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_nominations")
		var toolErr error
		defer func() { done(toolErr) }()

		congress, vErr := checkCongress(args.Congress)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := "/nomination"
		if congress != 0 {
			endpoint = fmt.Sprintf("/nomination/%d", congress)
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		nominations := process.Pipeline(data, "nominations", process.PipelineOptions{
			DedupKeys:   []string{"congress", "number"},
			SortField:   "receivedDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.NominationList(nominations)
		return textResult(md), listOutput{Markdown: md, Count: len(nominations)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_nominations",
		Description: "Search presidential nominations",
		Category:    CategoryNominations,
		Keywords:    []string{"pn", "appointment", "confirmation"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_nomination",
		Description: "Get detailed information about a presidential nomination",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args nominationRefInput) (*mcp.CallToolResult, detailOutput, error) {
		ctx, done := s.track(ctx, "get_nomination")
		var toolErr error
		defer func() { done(toolErr) }()

		if res := validate.CongressNumber(args.Congress); !res.Valid {
			toolErr = apierr.InvalidCongress(res.Message, res.Suggestions)
			return errorResult(toolErr), detailOutput{}, nil
		}
		if args.Number <= 0 {
			toolErr = apierr.FromValidation("nomination number must be a positive integer",
				[]string{"Use the PN number without the prefix, e.g. 123 for PN123"})
			return errorResult(toolErr), detailOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, fmt.Sprintf("/nomination/%d/%d", args.Congress, args.Number), nil)
		if err != nil {
			toolErr = err
			return errorResult(err), detailOutput{}, nil
		}

		nomination, _ := data["nomination"].(map[string]any)
		md := format.NominationDetail(nomination)
		return textResult(md), detailOutput{Markdown: md}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "get_nomination",
		Description: "Get detailed information about a presidential nomination",
		Category:    CategoryNominations,
		Keywords:    []string{"pn", "organization"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_treaties",
		Description: "Search treaties, optionally scoped to the congress they were received in",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchTreatiesInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_treaties")
		var toolErr error
		defer func() { done(toolErr) }()

		congress, vErr := checkCongress(args.Congress)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := "/treaty"
		if congress != 0 {
			endpoint = fmt.Sprintf("/treaty/%d", congress)
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		treaties := process.Pipeline(data, "treaties", process.PipelineOptions{
			DedupKeys:   process.TreatyKeys,
			SortField:   "transmittedDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.TreatyList(treaties)
		return textResult(md), listOutput{Markdown: md, Count: len(treaties)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_treaties",
		Description: "Search treaties received by the Senate",
		Category:    CategoryNominations,
		Keywords:    []string{"ratification", "international"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_treaty",
		Description: "Get detailed information about a treaty",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args treatyRefInput) (*mcp.CallToolResult, detailOutput, error) {
		ctx, done := s.track(ctx, "get_treaty")
		var toolErr error
		defer func() { done(toolErr) }()

		if res := validate.CongressNumber(args.Congress); !res.Valid {
			toolErr = apierr.InvalidCongress(res.Message, res.Suggestions)
			return errorResult(toolErr), detailOutput{}, nil
		}
		if args.Number <= 0 {
			toolErr = apierr.FromValidation("treaty number must be a positive integer", nil)
			return errorResult(toolErr), detailOutput{}, nil
		}

		endpoint := fmt.Sprintf("/treaty/%d/%d", args.Congress, args.Number)
		if args.Suffix != "" {
			endpoint += "/" + args.Suffix
		}

		data, err := s.client.SafeRequest(ctx, endpoint, nil)
		if err != nil {
			toolErr = err
			return errorResult(err), detailOutput{}, nil
		}

		treaty, _ := data["treaty"].(map[string]any)
		md := format.TreatyDetail(treaty)
		return textResult(md), detailOutput{Markdown: md}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "get_treaty",
		Description: "Get detailed information about a treaty",
		Category:    CategoryNominations,
		Keywords:    []string{"suffix", "resolution"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_hearings",
		Description: "Search committee hearings, optionally scoped to a congress and chamber",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchHearingsInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_hearings")
		var toolErr error
		defer func() { done(toolErr) }()

		congress, vErr := checkCongress(args.Congress)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}
		chamber, vErr := checkChamber(args.Chamber)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := "/hearing"
		switch {
		case congress != 0 && chamber != "":
			endpoint = fmt.Sprintf("/hearing/%d/%s", congress, chamber)
		case congress != 0:
			endpoint = fmt.Sprintf("/hearing/%d", congress)
		case chamber != "":
			toolErr = apierr.FromValidation("chamber requires a congress",
				[]string{"Provide the congress number alongside the chamber"})
			return errorResult(toolErr), listOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, endpoint, listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		hearings := process.Pipeline(data, "hearings", process.PipelineOptions{
			DedupKeys:   []string{"congress", "chamber", "jacketNumber"},
			SortField:   "updateDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.HearingList(hearings)
		return textResult(md), listOutput{Markdown: md, Count: len(hearings)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_hearings",
		Description: "Search committee hearings",
		Category:    CategoryNominations,
		Keywords:    []string{"testimony", "jacket"},
	})
}
