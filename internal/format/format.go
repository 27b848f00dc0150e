// Package format renders cleaned Congress.gov result lists as markdown.
//
// Formatters are deliberately thin: they read already-fetched,
// already-deduplicated records and build strings. All business logic
// lives upstream of this package.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/capitolworks/congressd/internal/apierr"
	"github.com/capitolworks/congressd/internal/process"
)

// str reads a possibly-dotted field as a trimmed string, with a fallback.
// Numeric path segments index into lists: "sponsors.0.fullName".
func str(r process.Record, field, fallback string) string {
	cur := any(r)
	for _, seg := range strings.Split(field, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, found := node[seg]
			if !found || v == nil {
				return fallback
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return fallback
			}
			cur = node[idx]
		default:
			return fallback
		}
	}
	switch v := cur.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
		return fallback
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// header opens a result list with a title and count line.
func header(b *strings.Builder, title string, count int) {
	fmt.Fprintf(b, "# %s\n\n", title)
	fmt.Fprintf(b, "Found %d result(s).\n\n", count)
}

// latestActionLine renders the record's latestAction, if any.
func latestActionLine(b *strings.Builder, r process.Record) {
	text := str(r, "latestAction.text", "")
	if text == "" {
		return
	}
	date := str(r, "latestAction.actionDate", "unknown date")
	fmt.Fprintf(b, "  - Latest action (%s): %s\n", date, text)
}

// sourceFooter closes every listing with the upstream attribution.
func sourceFooter(b *strings.Builder) {
	b.WriteString("\n---\n*Source: Congress.gov API v3*\n")
}

// empty renders the no-results message.
func empty(what string) string {
	return fmt.Sprintf("# %s\n\nNo results found. Try broadening the search or checking the congress number.\n", what)
}

// ErrorResponse renders any error as user-facing markdown. Taxonomy
// errors use their structured template; anything else is wrapped as a
// general taxonomy error first so the output shape is always the same.
func ErrorResponse(err error) string {
	var apiErr *apierr.Error
	if e, isAPI := err.(*apierr.Error); isAPI {
		apiErr = e
	} else {
		apiErr = apierr.General(err.Error())
	}
	return apiErr.Markdown()
}
