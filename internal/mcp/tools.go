package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/capitolworks/congressd/internal/apierr"
	"github.com/capitolworks/congressd/internal/format"
	"github.com/capitolworks/congressd/internal/validate"
)

// listOutput is the shared structured output for list-returning tools.
type listOutput struct {
	Markdown string `json:"markdown" jsonschema:"Formatted markdown response"`
	Count    int    `json:"count" jsonschema:"Number of results after cleaning"`
}

// detailOutput is the shared structured output for single-record tools.
type detailOutput struct {
	Markdown string `json:"markdown" jsonschema:"Formatted markdown response"`
}

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	s.registerBillTools()
	s.registerAmendmentTools()
	s.registerCommitteeTools()
	s.registerMemberTools()
	s.registerRecordTools()
	s.registerNominationTools()
	s.registerResearchTools()
	s.registerMetaTools()
}

// track starts per-tool instrumentation: a span plus the active-request
// gauge. The returned context carries the span; the returned func must be
// deferred with the final tool error.
func (s *Server) track(ctx context.Context, tool string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "mcp.tool."+tool,
		oteltrace.WithAttributes(attribute.String("tool", tool)))
	s.metrics.IncrementActive(ctx, tool)
	return ctx, func(err error) {
		s.metrics.DecrementActive(ctx, tool)
		s.metrics.RecordInvocation(ctx, tool, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, categorizeError(err))
		}
		span.End()
	}
}

// textResult wraps markdown as a successful tool result.
func textResult(markdown string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: markdown}},
	}
}

// errorResult renders any failure as taxonomy markdown in the tool result
// so clients always see a structured, suggestion-bearing message instead
// of a bare protocol error.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: format.ErrorResponse(err)}},
	}
}

// checkCongress validates an optional congress number. Zero means absent.
func checkCongress(congress int) (int, *apierr.Error) {
	if congress == 0 {
		return 0, nil
	}
	res := validate.CongressNumber(congress)
	if !res.Valid {
		return 0, apierr.InvalidCongress(res.Message, res.Suggestions)
	}
	return res.Sanitized.(int), nil
}

// listParams builds the shared limit/offset query params. Limit is
// clamped rather than rejected; zero values are dropped downstream.
func listParams(limit, offset int) map[string]any {
	params := map[string]any{}
	if limit != 0 {
		if res := validate.Limit(limit); res.Valid {
			params["limit"] = res.Sanitized.(int)
		}
	}
	if offset > 0 {
		params["offset"] = offset
	}
	return params
}
