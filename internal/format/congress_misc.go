package format

import (
	"fmt"
	"strings"

	"github.com/capitolworks/congressd/internal/process"
)

// CommunicationList renders House or Senate communications.
func CommunicationList(chamber string, comms []process.Record) string {
	title := chamber + " Communications"
	if len(comms) == 0 {
		return empty(title)
	}

	var b strings.Builder
	header(&b, title, len(comms))

	for _, c := range comms {
		fmt.Fprintf(&b, "- **%s %s** (Congress %s)\n",
			str(c, "communicationType.code", "?"),
			str(c, "communicationNumber", str(c, "number", "?")),
			str(c, "congressNumber", str(c, "congress", "?")))
		if name := str(c, "communicationType.name", ""); name != "" {
			fmt.Fprintf(&b, "  - Type: %s\n", name)
		}
		if abstract := str(c, "abstract", ""); abstract != "" {
			fmt.Fprintf(&b, "  - %s\n", abstract)
		}
	}

	sourceFooter(&b)
	return b.String()
}

// SummaryList renders bill summaries.
func SummaryList(summaries []process.Record) string {
	if len(summaries) == 0 {
		return empty("Bill Summaries")
	}

	var b strings.Builder
	header(&b, "Bill Summaries", len(summaries))

	for _, s := range summaries {
		fmt.Fprintf(&b, "- **%s %s** (Congress %s), %s\n",
			strings.ToUpper(str(s, "bill.type", "?")),
			str(s, "bill.number", "?"),
			str(s, "bill.congress", "?"),
			str(s, "actionDate", "no date"))
		if desc := str(s, "actionDesc", ""); desc != "" {
			fmt.Fprintf(&b, "  - Stage: %s\n", desc)
		}
		if title := str(s, "bill.title", ""); title != "" {
			fmt.Fprintf(&b, "  - %s\n", title)
		}
	}

	sourceFooter(&b)
	return b.String()
}

// NominationList renders presidential nominations.
func NominationList(nominations []process.Record) string {
	if len(nominations) == 0 {
		return empty("Nominations")
	}

	var b strings.Builder
	header(&b, "Nominations", len(nominations))

	for _, n := range nominations {
		fmt.Fprintf(&b, "- **PN%s** (Congress %s)\n",
			str(n, "number", "?"),
			str(n, "congress", "?"))
		if org := str(n, "organization", ""); org != "" {
			fmt.Fprintf(&b, "  - Organization: %s\n", org)
		}
		latestActionLine(&b, n)
	}

	sourceFooter(&b)
	return b.String()
}

// NominationDetail renders a single nomination.
func NominationDetail(n process.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Nomination PN%s — Congress %s\n\n",
		str(n, "number", "?"), str(n, "congress", "?"))
	if org := str(n, "organization", ""); org != "" {
		fmt.Fprintf(&b, "**Organization:** %s  \n", org)
	}
	if received := str(n, "receivedDate", ""); received != "" {
		fmt.Fprintf(&b, "**Received:** %s  \n", received)
	}
	if desc := str(n, "description", ""); desc != "" {
		fmt.Fprintf(&b, "\n%s\n", desc)
	}
	if action := str(n, "latestAction.text", ""); action != "" {
		fmt.Fprintf(&b, "\n**Latest action** (%s): %s\n",
			str(n, "latestAction.actionDate", "unknown date"), action)
	}

	sourceFooter(&b)
	return b.String()
}

// HearingList renders committee hearings.
func HearingList(hearings []process.Record) string {
	if len(hearings) == 0 {
		return empty("Hearings")
	}

	var b strings.Builder
	header(&b, "Hearings", len(hearings))

	for _, h := range hearings {
		fmt.Fprintf(&b, "- **Jacket %s** (Congress %s, %s)\n",
			str(h, "jacketNumber", "?"),
			str(h, "congress", "?"),
			str(h, "chamber", "unknown chamber"))
		if title := str(h, "title", ""); title != "" {
			fmt.Fprintf(&b, "  - %s\n", title)
		}
	}

	sourceFooter(&b)
	return b.String()
}

// RecordIssueList renders Congressional Record issues (daily or bound).
func RecordIssueList(title string, issues []process.Record) string {
	if len(issues) == 0 {
		return empty(title)
	}

	var b strings.Builder
	header(&b, title, len(issues))

	for _, issue := range issues {
		fmt.Fprintf(&b, "- **Volume %s, Issue %s** (%s)\n",
			str(issue, "volumeNumber", "?"),
			str(issue, "issueNumber", "?"),
			str(issue, "issueDate", str(issue, "date", "no date")))
		if congress := str(issue, "congress", ""); congress != "" {
			fmt.Fprintf(&b, "  - Congress: %s\n", congress)
		}
		if session := str(issue, "sessionNumber", ""); session != "" {
			fmt.Fprintf(&b, "  - Session: %s\n", session)
		}
	}

	sourceFooter(&b)
	return b.String()
}

// CRSReportDetail renders a single CRS report.
func CRSReportDetail(r process.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", str(r, "title", "CRS Report"))
	fmt.Fprintf(&b, "**Report:** %s  \n", str(r, "id", "?"))
	if status := str(r, "status", ""); status != "" {
		fmt.Fprintf(&b, "**Status:** %s  \n", status)
	}
	if date := str(r, "publishDate", ""); date != "" {
		fmt.Fprintf(&b, "**Published:** %s  \n", date)
	}
	if authors, isList := r["authors"].([]any); isList && len(authors) > 0 {
		b.WriteString("**Authors:** ")
		for i, a := range authors {
			if ar, isRecord := a.(map[string]any); isRecord {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(str(ar, "author", "?"))
			}
		}
		b.WriteString("  \n")
	}
	if summary := str(r, "summary", ""); summary != "" {
		fmt.Fprintf(&b, "\n%s\n", summary)
	}

	sourceFooter(&b)
	return b.String()
}

// CRSReportList renders CRS report search results.
func CRSReportList(reports []process.Record) string {
	if len(reports) == 0 {
		return empty("CRS Reports")
	}

	var b strings.Builder
	header(&b, "CRS Reports", len(reports))

	for _, r := range reports {
		fmt.Fprintf(&b, "- **%s**: %s\n",
			str(r, "id", "?"),
			str(r, "title", "No title available"))
		if status := str(r, "status", ""); status != "" {
			fmt.Fprintf(&b, "  - Status: %s\n", status)
		}
		if date := str(r, "publishDate", ""); date != "" {
			fmt.Fprintf(&b, "  - Published: %s\n", date)
		}
	}

	sourceFooter(&b)
	return b.String()
}
