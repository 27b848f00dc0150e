package format

import (
	"fmt"
	"strings"

	"github.com/capitolworks/congressd/internal/process"
)

// TreatyList renders a treaty search result list.
func TreatyList(treaties []process.Record) string {
	if len(treaties) == 0 {
		return empty("Treaties")
	}

	var b strings.Builder
	header(&b, "Treaties", len(treaties))

	for _, t := range treaties {
		label := str(t, "number", "?")
		if suffix := str(t, "suffix", ""); suffix != "" {
			label += suffix
		}
		fmt.Fprintf(&b, "- **Treaty %s** (received Congress %s)\n",
			label, str(t, "congressReceived", "?"))
		if topic := str(t, "topic", ""); topic != "" {
			fmt.Fprintf(&b, "  - Topic: %s\n", topic)
		}
		if title := str(t, "titles.0.title", ""); title != "" {
			fmt.Fprintf(&b, "  - %s\n", title)
		}
	}

	sourceFooter(&b)
	return b.String()
}

// TreatyDetail renders a single treaty detail response.
func TreatyDetail(t process.Record) string {
	var b strings.Builder

	label := str(t, "number", "?")
	if suffix := str(t, "suffix", ""); suffix != "" {
		label += suffix
	}
	fmt.Fprintf(&b, "# Treaty %s\n\n", label)
	fmt.Fprintf(&b, "**Received:** Congress %s  \n", str(t, "congressReceived", "?"))
	if considered := str(t, "congressConsidered", ""); considered != "" {
		fmt.Fprintf(&b, "**Considered:** Congress %s  \n", considered)
	}
	if topic := str(t, "topic", ""); topic != "" {
		fmt.Fprintf(&b, "**Topic:** %s  \n", topic)
	}
	if date := str(t, "transmittedDate", ""); date != "" {
		fmt.Fprintf(&b, "**Transmitted:** %s  \n", date)
	}
	if body := str(t, "resolutionText", ""); body != "" {
		fmt.Fprintf(&b, "\n%s\n", body)
	}

	sourceFooter(&b)
	return b.String()
}
