package format

import (
	"fmt"
	"strings"

	"github.com/capitolworks/congressd/internal/process"
)

// BillList renders a bill search result list.
func BillList(bills []process.Record) string {
	if len(bills) == 0 {
		return empty("Bills")
	}

	var b strings.Builder
	header(&b, "Bills", len(bills))

	for _, bill := range bills {
		fmt.Fprintf(&b, "- **%s %s** (Congress %s): %s\n",
			strings.ToUpper(str(bill, "type", "?")),
			str(bill, "number", "?"),
			str(bill, "congress", "?"),
			str(bill, "title", "No title available"))
		latestActionLine(&b, bill)
		if updated := str(bill, "updateDate", ""); updated != "" {
			fmt.Fprintf(&b, "  - Updated: %s\n", updated)
		}
	}

	sourceFooter(&b)
	return b.String()
}

// BillDetail renders a single bill detail response.
func BillDetail(bill process.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s %s — Congress %s\n\n",
		strings.ToUpper(str(bill, "type", "?")),
		str(bill, "number", "?"),
		str(bill, "congress", "?"))
	fmt.Fprintf(&b, "**Title:** %s\n\n", str(bill, "title", "No title available"))

	if origin := str(bill, "originChamber", ""); origin != "" {
		fmt.Fprintf(&b, "**Origin chamber:** %s  \n", origin)
	}
	if introduced := str(bill, "introducedDate", ""); introduced != "" {
		fmt.Fprintf(&b, "**Introduced:** %s  \n", introduced)
	}
	if policy := str(bill, "policyArea.name", ""); policy != "" {
		fmt.Fprintf(&b, "**Policy area:** %s  \n", policy)
	}
	if sponsor := str(bill, "sponsors.0.fullName", ""); sponsor != "" {
		fmt.Fprintf(&b, "**Sponsor:** %s  \n", sponsor)
	}

	if action := str(bill, "latestAction.text", ""); action != "" {
		fmt.Fprintf(&b, "\n**Latest action** (%s): %s\n",
			str(bill, "latestAction.actionDate", "unknown date"), action)
	}
	if laws := str(bill, "laws.0.number", ""); laws != "" {
		fmt.Fprintf(&b, "\n**Became law:** %s\n", laws)
	}

	sourceFooter(&b)
	return b.String()
}

// BillActions renders a bill's action history.
func BillActions(billLabel string, actions []process.Record) string {
	if len(actions) == 0 {
		return empty("Actions for " + billLabel)
	}

	var b strings.Builder
	header(&b, "Actions for "+billLabel, len(actions))

	for _, a := range actions {
		fmt.Fprintf(&b, "- **%s**: %s\n",
			str(a, "actionDate", "unknown date"),
			str(a, "text", "No description"))
		if chamber := str(a, "sourceSystem.name", ""); chamber != "" {
			fmt.Fprintf(&b, "  - Source: %s\n", chamber)
		}
	}

	sourceFooter(&b)
	return b.String()
}

// BillTextVersions renders a bill's available text versions.
func BillTextVersions(billLabel string, versions []process.Record) string {
	if len(versions) == 0 {
		return empty("Text versions for " + billLabel)
	}

	var b strings.Builder
	header(&b, "Text versions for "+billLabel, len(versions))

	for _, v := range versions {
		fmt.Fprintf(&b, "- **%s** (%s)\n",
			str(v, "type", "Unknown version"),
			str(v, "date", "no date"))
		if formats, isList := v["formats"].([]any); isList {
			for _, f := range formats {
				if fr, isRecord := f.(map[string]any); isRecord {
					fmt.Fprintf(&b, "  - [%s](%s)\n", str(fr, "type", "link"), str(fr, "url", "#"))
				}
			}
		}
	}

	sourceFooter(&b)
	return b.String()
}
