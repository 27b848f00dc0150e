package format

import (
	"fmt"
	"strings"

	"github.com/capitolworks/congressd/internal/process"
)

// MemberList renders a member search result list.
func MemberList(members []process.Record) string {
	if len(members) == 0 {
		return empty("Members")
	}

	var b strings.Builder
	header(&b, "Members of Congress", len(members))

	for _, m := range members {
		fmt.Fprintf(&b, "- **%s** (%s-%s)\n",
			str(m, "name", "Unknown member"),
			str(m, "partyName", "?"),
			str(m, "state", "?"))
		if id := str(m, "bioguideId", ""); id != "" {
			fmt.Fprintf(&b, "  - Bioguide: `%s`\n", id)
		}
		if chamber := str(m, "terms.item.0.chamber", ""); chamber != "" {
			fmt.Fprintf(&b, "  - Chamber: %s\n", chamber)
		}
	}

	sourceFooter(&b)
	return b.String()
}

// MemberDetail renders a single member detail response.
func MemberDetail(m process.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", str(m, "directOrderName", str(m, "name", "Member")))
	if id := str(m, "bioguideId", ""); id != "" {
		fmt.Fprintf(&b, "**Bioguide:** `%s`  \n", id)
	}
	if party := str(m, "partyHistory.0.partyName", ""); party != "" {
		fmt.Fprintf(&b, "**Party:** %s  \n", party)
	}
	if state := str(m, "state", ""); state != "" {
		fmt.Fprintf(&b, "**State:** %s  \n", state)
	}
	if m["currentMember"] == true {
		b.WriteString("**Status:** currently serving\n")
	}

	sourceFooter(&b)
	return b.String()
}

// SponsoredLegislation renders a member's sponsored bills.
func SponsoredLegislation(memberLabel string, bills []process.Record) string {
	if len(bills) == 0 {
		return empty("Sponsored legislation for " + memberLabel)
	}

	var b strings.Builder
	header(&b, "Sponsored legislation for "+memberLabel, len(bills))

	for _, bill := range bills {
		fmt.Fprintf(&b, "- **%s %s** (Congress %s): %s\n",
			strings.ToUpper(str(bill, "type", "?")),
			str(bill, "number", "?"),
			str(bill, "congress", "?"),
			str(bill, "title", "No title available"))
	}

	sourceFooter(&b)
	return b.String()
}
