package process

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bill(congress int, billType string, number, update string) Record {
	return Record{"congress": congress, "type": billType, "number": number, "updateDate": update}
}

func TestDeduplicateFirstOccurrenceWins(t *testing.T) {
	in := []Record{
		bill(119, "hr", "1", "2025-01-03"),
		bill(119, "s", "1", "2025-01-04"),
		bill(119, "hr", "1", "2025-06-01"), // duplicate, newer update
		bill(118, "hr", "1", "2024-01-01"),
	}

	out := Deduplicate(in, BillKeys)
	require.Len(t, out, 3)

	// First-seen entry survives in its original position.
	assert.Equal(t, "2025-01-03", out[0]["updateDate"])
	assert.Equal(t, "s", out[1]["type"])
	assert.Equal(t, 118, out[2]["congress"])
}

func TestDeduplicateIdempotent(t *testing.T) {
	in := []Record{
		bill(119, "hr", "1", "a"),
		bill(119, "hr", "1", "b"),
		bill(119, "hr", "2", "c"),
	}

	once := Deduplicate(in, BillKeys)
	twice := Deduplicate(once, BillKeys)
	assert.Equal(t, once, twice)
}

func TestDeduplicateNormalizesStringCase(t *testing.T) {
	in := []Record{
		{"congress": 119, "type": "HR", "number": "1"},
		{"congress": 119, "type": "hr ", "number": "1"},
	}
	assert.Len(t, Deduplicate(in, BillKeys), 1)
}

func TestDeduplicateMissingFieldDistinctFromEmpty(t *testing.T) {
	in := []Record{
		{"congress": 119, "type": "", "number": "1"},
		{"congress": 119, "number": "1"}, // no type field at all
	}
	assert.Len(t, Deduplicate(in, BillKeys), 2)
}

func TestDeduplicateEmptyStringKeyComponents(t *testing.T) {
	in := []Record{
		{"congress": 119, "type": "", "number": "1"},
		{"congress": 119, "type": "", "number": "1"},
	}
	assert.Len(t, Deduplicate(in, BillKeys), 1)
}

func TestDeduplicateDottedPaths(t *testing.T) {
	in := []Record{
		{"bill": map[string]any{"congress": 119, "type": "hr", "number": "1"}, "actionDate": "2025-01-01"},
		{"bill": map[string]any{"congress": 119, "type": "hr", "number": "1"}, "actionDate": "2025-01-01"},
		{"bill": map[string]any{"congress": 119, "type": "hr", "number": "1"}, "actionDate": "2025-02-01"},
	}
	assert.Len(t, Deduplicate(in, SummaryKeys), 2)
}

func TestSortStableAndCaseInsensitive(t *testing.T) {
	in := []Record{
		{"title": "Zebra Act", "n": 1},
		{"title": "apple act", "n": 2},
		{"title": "Apple Act", "n": 3},
	}

	out := Sort(in, "title", false, "")
	assert.Equal(t, 2, out[0]["n"], "case-insensitive tie keeps input order")
	assert.Equal(t, 3, out[1]["n"])
	assert.Equal(t, 1, out[2]["n"])

	// Input slice untouched.
	assert.Equal(t, "Zebra Act", in[0]["title"])
}

func TestSortMissingFieldUsesDefault(t *testing.T) {
	in := []Record{
		{"updateDate": "2025-06-01"},
		{},
		{"updateDate": "2024-01-01"},
	}

	out := Sort(in, "updateDate", true, "")
	assert.Equal(t, "2025-06-01", out[0]["updateDate"])
	assert.Equal(t, "2024-01-01", out[1]["updateDate"])
	_, hasField := out[2]["updateDate"]
	assert.False(t, hasField, "defaulted record sorts last in reverse order")
}

func TestSortNumeric(t *testing.T) {
	in := []Record{{"n": float64(10)}, {"n": 2}, {"n": float64(1)}}
	out := Sort(in, "n", false, 0)
	assert.Equal(t, float64(1), out[0]["n"])
	assert.Equal(t, 2, out[1]["n"])
	assert.Equal(t, float64(10), out[2]["n"])
}

func TestPaginate(t *testing.T) {
	in := []Record{{"n": 1}, {"n": 2}, {"n": 3}, {"n": 4}}

	assert.Len(t, Paginate(in, 2, 0), 2)
	assert.Equal(t, 3, Paginate(in, 2, 2)[0]["n"])
	assert.Len(t, Paginate(in, 10, 3), 1)
	assert.Empty(t, Paginate(in, 2, 100))
	assert.Equal(t, 1, Paginate(in, 2, -5)[0]["n"], "negative offset clamps to zero")
	assert.Len(t, Paginate(in, 0, 0), 4, "zero limit means unlimited")
}

func TestEnrichKeepsOriginalOnError(t *testing.T) {
	in := []Record{{"n": 1}, {"n": 2}}

	out := Enrich(in, func(r Record) (Record, error) {
		if r["n"] == 2 {
			return nil, errors.New("malformed")
		}
		enriched := Record{"n": r["n"], "extra": true}
		return enriched, nil
	})

	assert.Equal(t, true, out[0]["extra"])
	assert.Equal(t, 2, out[1]["n"], "failed record passes through unchanged")
	assert.NotContains(t, out[1], "extra")
}

func TestPipelineOrderAndScenario(t *testing.T) {
	// End-to-end: upstream returns duplicate (congress, type, number) pairs
	// with different update dates; the final list has exactly one, sorted.
	data := map[string]any{
		"bills": []any{
			map[string]any{"congress": float64(119), "type": "hr", "number": "42", "updateDate": "2025-03-01"},
			map[string]any{"congress": float64(119), "type": "hr", "number": "7", "updateDate": "2025-05-01"},
			map[string]any{"congress": float64(119), "type": "hr", "number": "42", "updateDate": "2025-06-01"},
			map[string]any{"congress": float64(118), "type": "hr", "number": "9", "updateDate": "2024-01-01"},
		},
	}

	out := Pipeline(data, "bills", PipelineOptions{
		Keep: func(r Record) bool {
			n, _ := asFloat(r["congress"])
			return int(n) == 119
		},
		DedupKeys:   BillKeys,
		SortField:   "updateDate",
		SortReverse: true,
		Limit:       20,
	})

	require.Len(t, out, 2)
	assert.Equal(t, "7", out[0]["number"])
	// The first-seen hr 42 survived dedup, not the later one.
	assert.Equal(t, "2025-03-01", out[1]["updateDate"])
}

func TestPipelinePaginationLast(t *testing.T) {
	// Limit applies after dedup: three raw records, two unique, limit 2
	// returns both unique records rather than one unique plus a duplicate.
	data := map[string]any{
		"bills": []any{
			map[string]any{"congress": 119, "type": "hr", "number": "1"},
			map[string]any{"congress": 119, "type": "hr", "number": "1"},
			map[string]any{"congress": 119, "type": "hr", "number": "2"},
		},
	}

	out := Pipeline(data, "bills", PipelineOptions{DedupKeys: BillKeys, Limit: 2})
	require.Len(t, out, 2)
	assert.Equal(t, "2", out[1]["number"])
}

func TestExtractListTolerant(t *testing.T) {
	assert.Empty(t, ExtractList(nil, "bills"))
	assert.Empty(t, ExtractList(map[string]any{}, "bills"))
	assert.Empty(t, ExtractList(map[string]any{"bills": "oops"}, "bills"))
	assert.Len(t, ExtractList(map[string]any{"bills": []any{map[string]any{"a": 1}, "junk"}}, "bills"), 1)
}

func TestDomainProcessors(t *testing.T) {
	treaties := []Record{
		{"congressReceived": 116, "number": 1, "suffix": ""},
		{"congressReceived": 116, "number": 1, "suffix": ""},
		{"congressReceived": 116, "number": 1, "suffix": "A"},
	}
	assert.Len(t, DeduplicateTreaties(treaties), 2)

	comms := []Record{
		{"congressNumber": 119, "communicationType": map[string]any{"code": "EC"}, "communicationNumber": 100},
		{"congressNumber": 119, "communicationType": map[string]any{"code": "ec"}, "communicationNumber": 100},
		{"congressNumber": 119, "communicationType": map[string]any{"code": "PM"}, "communicationNumber": 100},
	}
	assert.Len(t, DeduplicateCommunications(comms), 2)

	bills := []Record{bill(119, "hr", "1", "x"), bill(118, "hr", "1", "y")}
	assert.Len(t, FilterBillsByCongress(bills, 119), 1)
}
