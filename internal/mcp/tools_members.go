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

type searchMembersInput struct {
	Congress    int    `json:"congress,omitempty" jsonschema:"Congress number to search within (1-119)"`
	State       string `json:"state,omitempty" jsonschema:"Two-letter state code filter (e.g. NY)"`
	CurrentOnly bool   `json:"current_only,omitempty" jsonschema:"Only return currently serving members"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset      int    `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

type memberRefInput struct {
	BioguideID string `json:"bioguide_id" jsonschema:"required,Bioguide identifier (e.g. L000174)"`
}

type memberSponsoredInput struct {
	BioguideID string `json:"bioguide_id" jsonschema:"required,Bioguide identifier (e.g. L000174)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum results (default 20, max 250)"`
	Offset     int    `json:"offset,omitempty" jsonschema:"Result offset for pagination"`
}

// checkBioguide normalizes a bioguide ID. IDs are one letter plus six
// digits; we only enforce non-empty shape and uppercase the letter part.
func checkBioguide(id string) (string, *apierr.Error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return "", apierr.FromValidation("bioguide_id is required",
			[]string{"Find IDs with search_members, e.g. L000174"})
	}
	return id, nil
}

func (s *Server) registerMemberTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_members",
		Description: "Search members of Congress, optionally by congress or state",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchMembersInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "search_members")
		var toolErr error
		defer func() { done(toolErr) }()

		congress, vErr := checkCongress(args.Congress)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		endpoint := "/member"
		switch {
		case congress != 0 && args.State != "":
			endpoint = fmt.Sprintf("/member/congress/%d/%s", congress, strings.ToUpper(strings.TrimSpace(args.State)))
		case congress != 0:
			endpoint = fmt.Sprintf("/member/congress/%d", congress)
		case args.State != "":
			endpoint = "/member/" + strings.ToUpper(strings.TrimSpace(args.State))
		}

		params := listParams(args.Limit, args.Offset)
		if args.CurrentOnly {
			params["currentMember"] = "true"
		}

		data, err := s.client.SafeRequest(ctx, endpoint, params)
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		members := process.Pipeline(data, "members", process.PipelineOptions{
			DedupKeys:   []string{"bioguideId"},
			SortField:   "name",
			SortDefault: "",
		})
		md := format.MemberList(members)
		return textResult(md), listOutput{Markdown: md, Count: len(members)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "search_members",
		Description: "Search members of Congress by congress or state",
		Category:    CategoryMembers,
		Keywords:    []string{"representative", "senator", "bioguide"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_member",
		Description: "Get detailed information about a member of Congress",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args memberRefInput) (*mcp.CallToolResult, detailOutput, error) {
		ctx, done := s.track(ctx, "get_member")
		var toolErr error
		defer func() { done(toolErr) }()

		id, vErr := checkBioguide(args.BioguideID)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), detailOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, "/member/"+id, nil)
		if err != nil {
			toolErr = err
			return errorResult(err), detailOutput{}, nil
		}

		member, _ := data["member"].(map[string]any)
		md := format.MemberDetail(member)
		return textResult(md), detailOutput{Markdown: md}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "get_member",
		Description: "Get detailed information about a member of Congress",
		Category:    CategoryMembers,
		Keywords:    []string{"party", "terms"},
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_member_sponsored",
		Description: "List legislation sponsored by a member of Congress",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args memberSponsoredInput) (*mcp.CallToolResult, listOutput, error) {
		ctx, done := s.track(ctx, "get_member_sponsored")
		var toolErr error
		defer func() { done(toolErr) }()

		id, vErr := checkBioguide(args.BioguideID)
		if vErr != nil {
			toolErr = vErr
			return errorResult(vErr), listOutput{}, nil
		}

		data, err := s.client.SafeRequest(ctx, "/member/"+id+"/sponsored-legislation",
			listParams(args.Limit, args.Offset))
		if err != nil {
			toolErr = err
			return errorResult(err), listOutput{}, nil
		}

		bills := process.Pipeline(data, "sponsoredLegislation", process.PipelineOptions{
			DedupKeys:   process.BillKeys,
			SortField:   "introducedDate",
			SortReverse: true,
			SortDefault: "",
		})
		md := format.SponsoredLegislation(id, bills)
		return textResult(md), listOutput{Markdown: md, Count: len(bills)}, nil
	})
	s.registry.Register(&ToolMetadata{
		Name:        "get_member_sponsored",
		Description: "List legislation sponsored by a member of Congress",
		Category:    CategoryMembers,
		Keywords:    []string{"sponsored", "legislation"},
	})
}
