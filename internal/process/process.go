// Package process provides deterministic, side-effect-free transformations
// over Congress.gov result lists.
//
// Congress.gov responses are decoded to []map[string]any at the HTTP
// boundary; every operation here takes and returns such lists without
// mutating the input slice. Domain wrappers in processors.go bind the
// per-resource identity keys.
package process

import (
	"fmt"
	"sort"
	"strings"
)

// Record is one loosely-typed API result.
type Record = map[string]any

// fieldValue resolves a possibly-dotted field path ("bill.congress")
// against nested maps. A missing segment yields (nil, false).
func fieldValue(r Record, field string) (any, bool) {
	cur := any(r)
	for _, seg := range strings.Split(field, ".") {
		m, isMap := cur.(map[string]any)
		if !isMap {
			return nil, false
		}
		v, found := m[seg]
		if !found {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// keyComponent normalizes one identity component. Strings are trimmed and
// lowercased so "HR" and "hr " collide; everything else uses its default
// formatting. Missing fields normalize to a distinct marker so that an
// absent field never collides with an empty string.
func keyComponent(r Record, field string) string {
	v, found := fieldValue(r, field)
	if !found || v == nil {
		return "\x00"
	}
	if s, isStr := v.(string); isStr {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return fmt.Sprintf("%v", v)
}

// Deduplicate removes records whose composite identity key has been seen
// before. The first occurrence of each key survives, in its original
// position; relative order of survivors is never changed.
func Deduplicate(results []Record, keyFields []string) []Record {
	if len(results) == 0 || len(keyFields) == 0 {
		return results
	}

	seen := make(map[string]struct{}, len(results))
	out := make([]Record, 0, len(results))
	for _, r := range results {
		parts := make([]string, len(keyFields))
		for i, f := range keyFields {
			parts[i] = keyComponent(r, f)
		}
		key := strings.Join(parts, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Sort returns a stably sorted copy ordered by sortField. Records missing
// the field sort by defaultValue. String values compare case-insensitively;
// numeric values compare numerically; anything else falls back to its
// string form.
func Sort(results []Record, sortField string, reverse bool, defaultValue any) []Record {
	out := make([]Record, len(results))
	copy(out, results)

	sort.SliceStable(out, func(i, j int) bool {
		less := compareValues(sortValue(out[i], sortField, defaultValue), sortValue(out[j], sortField, defaultValue))
		if reverse {
			return less > 0
		}
		return less < 0
	})
	return out
}

func sortValue(r Record, field string, def any) any {
	v, found := fieldValue(r, field)
	if !found || v == nil {
		return def
	}
	return v
}

func compareValues(a, b any) int {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(canonString(a), canonString(b))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func canonString(v any) string {
	if s, isStr := v.(string); isStr {
		return strings.ToLower(s)
	}
	return fmt.Sprintf("%v", v)
}

// Paginate slices results at [offset, offset+limit). Out-of-range bounds
// never error: negative offsets clamp to zero, and the slice is whatever
// overlap exists, possibly empty. limit <= 0 means no limit.
func Paginate(results []Record, limit, offset int) []Record {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return []Record{}
	}
	end := len(results)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return results[offset:end]
}

// Filter keeps records for which keep returns true. Panics inside keep are
// the caller's responsibility.
func Filter(results []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(results))
	for _, r := range results {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Enrich applies fn to every record. A record whose fn returns an error
// keeps its original value: one malformed record must not blank the whole
// list.
func Enrich(results []Record, fn func(Record) (Record, error)) []Record {
	out := make([]Record, len(results))
	for i, r := range results {
		enriched, err := fn(r)
		if err != nil {
			out[i] = r
			continue
		}
		out[i] = enriched
	}
	return out
}

// PipelineOptions configure Pipeline. Zero values skip the corresponding
// stage.
type PipelineOptions struct {
	Keep        func(Record) bool
	DedupKeys   []string
	SortField   string
	SortReverse bool
	SortDefault any
	Limit       int
	Offset      int
}

// Pipeline extracts data[dataKey] and chains filter, dedup, sort, and
// paginate in that fixed order. Filtering runs before dedup so a filtered
// record never suppresses a surviving duplicate, and pagination runs last
// so limits apply to the final clean list.
func Pipeline(data map[string]any, dataKey string, opts PipelineOptions) []Record {
	results := ExtractList(data, dataKey)

	if opts.Keep != nil {
		results = Filter(results, opts.Keep)
	}
	if len(opts.DedupKeys) > 0 {
		results = Deduplicate(results, opts.DedupKeys)
	}
	if opts.SortField != "" {
		def := opts.SortDefault
		if def == nil {
			def = ""
		}
		results = Sort(results, opts.SortField, opts.SortReverse, def)
	}
	if opts.Limit > 0 || opts.Offset > 0 {
		results = Paginate(results, opts.Limit, opts.Offset)
	}
	return results
}

// ExtractList pulls the named collection out of a decoded response body,
// tolerating absent keys and non-list values.
func ExtractList(data map[string]any, dataKey string) []Record {
	if data == nil {
		return []Record{}
	}
	raw, found := data[dataKey]
	if !found {
		return []Record{}
	}
	items, isList := raw.([]any)
	if !isList {
		// Some detail endpoints return the collection pre-typed.
		if typed, isTyped := raw.([]Record); isTyped {
			return typed
		}
		return []Record{}
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if r, isRecord := item.(map[string]any); isRecord {
			out = append(out, r)
		}
	}
	return out
}
