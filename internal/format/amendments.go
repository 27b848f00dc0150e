package format

import (
	"fmt"
	"strings"

	"github.com/capitolworks/congressd/internal/process"
)

// AmendmentList renders an amendment search result list.
func AmendmentList(amendments []process.Record) string {
	if len(amendments) == 0 {
		return empty("Amendments")
	}

	var b strings.Builder
	header(&b, "Amendments", len(amendments))

	for _, a := range amendments {
		fmt.Fprintf(&b, "- **%s %s** (Congress %s)\n",
			strings.ToUpper(str(a, "type", "?")),
			str(a, "number", "?"),
			str(a, "congress", "?"))
		if purpose := str(a, "purpose", ""); purpose != "" {
			fmt.Fprintf(&b, "  - Purpose: %s\n", purpose)
		}
		latestActionLine(&b, a)
	}

	sourceFooter(&b)
	return b.String()
}

// AmendmentDetail renders a single amendment detail response.
func AmendmentDetail(a process.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s %s — Congress %s\n\n",
		strings.ToUpper(str(a, "type", "?")),
		str(a, "number", "?"),
		str(a, "congress", "?"))

	if purpose := str(a, "purpose", ""); purpose != "" {
		fmt.Fprintf(&b, "**Purpose:** %s\n\n", purpose)
	}
	if sponsor := str(a, "sponsors.0.fullName", ""); sponsor != "" {
		fmt.Fprintf(&b, "**Sponsor:** %s  \n", sponsor)
	}
	if amended := str(a, "amendedBill.title", ""); amended != "" {
		fmt.Fprintf(&b, "**Amends:** %s %s — %s  \n",
			strings.ToUpper(str(a, "amendedBill.type", "?")),
			str(a, "amendedBill.number", "?"),
			amended)
	}
	if action := str(a, "latestAction.text", ""); action != "" {
		fmt.Fprintf(&b, "\n**Latest action** (%s): %s\n",
			str(a, "latestAction.actionDate", "unknown date"), action)
	}

	sourceFooter(&b)
	return b.String()
}
