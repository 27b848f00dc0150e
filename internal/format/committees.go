package format

import (
	"fmt"
	"strings"

	"github.com/capitolworks/congressd/internal/process"
)

// CommitteeList renders a committee search result list.
func CommitteeList(committees []process.Record) string {
	if len(committees) == 0 {
		return empty("Committees")
	}

	var b strings.Builder
	header(&b, "Committees", len(committees))

	for _, c := range committees {
		fmt.Fprintf(&b, "- **%s** (%s)\n",
			str(c, "name", "Unnamed committee"),
			str(c, "chamber", "unknown chamber"))
		if code := str(c, "systemCode", ""); code != "" {
			fmt.Fprintf(&b, "  - System code: `%s`\n", code)
		}
		if ctype := str(c, "committeeTypeCode", ""); ctype != "" {
			fmt.Fprintf(&b, "  - Type: %s\n", ctype)
		}
	}

	sourceFooter(&b)
	return b.String()
}

// CommitteeDetail renders a single committee detail response.
func CommitteeDetail(c process.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", str(c, "name", "Committee"))
	fmt.Fprintf(&b, "**Chamber:** %s  \n", str(c, "chamber", "unknown"))
	if code := str(c, "systemCode", ""); code != "" {
		fmt.Fprintf(&b, "**System code:** `%s`  \n", code)
	}
	if c["isCurrent"] == true {
		b.WriteString("**Status:** active\n")
	}

	if subs, isList := c["subcommittees"].([]any); isList && len(subs) > 0 {
		b.WriteString("\n## Subcommittees\n\n")
		for _, s := range subs {
			if sr, isRecord := s.(map[string]any); isRecord {
				fmt.Fprintf(&b, "- %s (`%s`)\n", str(sr, "name", "?"), str(sr, "systemCode", "?"))
			}
		}
	}

	sourceFooter(&b)
	return b.String()
}

// CommitteeReportList renders committee reports.
func CommitteeReportList(reports []process.Record) string {
	if len(reports) == 0 {
		return empty("Committee Reports")
	}

	var b strings.Builder
	header(&b, "Committee Reports", len(reports))

	for _, r := range reports {
		fmt.Fprintf(&b, "- **%s** (Congress %s): %s\n",
			str(r, "citation", "?"),
			str(r, "congress", "?"),
			str(r, "title", "No title available"))
		if updated := str(r, "updateDate", ""); updated != "" {
			fmt.Fprintf(&b, "  - Updated: %s\n", updated)
		}
	}

	sourceFooter(&b)
	return b.String()
}

// CommitteePrintList renders committee prints.
func CommitteePrintList(prints []process.Record) string {
	if len(prints) == 0 {
		return empty("Committee Prints")
	}

	var b strings.Builder
	header(&b, "Committee Prints", len(prints))

	for _, p := range prints {
		fmt.Fprintf(&b, "- **Jacket %s** (Congress %s, %s)\n",
			str(p, "jacketNumber", "?"),
			str(p, "congress", "?"),
			str(p, "chamber", "unknown chamber"))
		if title := str(p, "title", ""); title != "" {
			fmt.Fprintf(&b, "  - %s\n", title)
		}
	}

	sourceFooter(&b)
	return b.String()
}
