// Package validate provides shared input validation for Congress.gov
// request parameters.
//
// Validators never return Go errors: every check produces a Result that
// callers must branch on before using the sanitized value. Rejections
// carry actionable suggestions that are surfaced to the LLM client.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinCongress is the first Congress (1789-1791).
	MinCongress = 1

	// MaxCongress is the current Congress. Bump when a new Congress is
	// seated.
	MaxCongress = 119

	// FirstCongressYear is the year the First Congress convened.
	FirstCongressYear = 1789

	// MaxLimit is the largest page size Congress.gov accepts.
	MaxLimit = 250
)

// Result is the outcome of a single validation check.
//
// When Valid is false, Message and Suggestions describe the problem.
// When Valid is true, Sanitized holds the canonical value to use (it may
// differ from the input, e.g. a clamped limit or a lowercased type code).
// A clamp also sets Message so callers can report the correction.
type Result struct {
	Valid       bool
	Message     string
	Suggestions []string
	Sanitized   any
}

func ok(sanitized any) Result {
	return Result{Valid: true, Sanitized: sanitized}
}

func fail(message string, suggestions ...string) Result {
	return Result{Valid: false, Message: message, Suggestions: suggestions}
}

// toInt coerces ints, int64s, float64s with integral values, and numeric
// strings. JSON decoding hands us float64 for every number, so this is
// the common path for MCP tool arguments.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// CongressNumber checks that congress falls in [MinCongress, MaxCongress].
//
// A nil congress is valid: most endpoints treat it as an optional filter.
// Out-of-range values are rejected rather than clamped, because silently
// fetching a different Congress would return the wrong data.
func CongressNumber(congress any) Result {
	if congress == nil {
		return ok(nil)
	}

	n, isInt := toInt(congress)
	if !isInt {
		return fail(
			fmt.Sprintf("Invalid congress number format: %v", congress),
			"Provide the congress as a whole number, e.g. 119",
			fmt.Sprintf("Valid range is %d-%d", MinCongress, MaxCongress),
		)
	}

	if n < MinCongress || n > MaxCongress {
		return fail(
			fmt.Sprintf("Congress number %d is out of range", n),
			fmt.Sprintf("Valid range is %d-%d", MinCongress, MaxCongress),
			fmt.Sprintf("The current Congress is the %dth", MaxCongress),
		)
	}

	return ok(n)
}

// YearRange checks that year falls in [minYear, maxYear].
//
// A nil year is valid. Callers override the bounds for endpoints with a
// narrower historical span (the bound Congressional Record covers
// 1873-1997, for example).
func YearRange(year any, minYear, maxYear int) Result {
	if year == nil {
		return ok(nil)
	}

	n, isInt := toInt(year)
	if !isInt {
		return fail(
			fmt.Sprintf("Invalid year format: %v", year),
			"Provide the year as a four-digit number, e.g. 2024",
		)
	}

	if n < minYear || n > maxYear {
		return fail(
			fmt.Sprintf("Year %d is out of range", n),
			fmt.Sprintf("Valid range is %d-%d", minYear, maxYear),
		)
	}

	return ok(n)
}

// Year checks a year against the default bounds: FirstCongressYear
// through the current year.
func Year(year any) Result {
	return YearRange(year, FirstCongressYear, time.Now().Year())
}

// Month checks that month falls in [1, 12]. Nil is valid.
func Month(month any) Result {
	if month == nil {
		return ok(nil)
	}

	n, isInt := toInt(month)
	if !isInt {
		return fail(
			fmt.Sprintf("Invalid month format: %v", month),
			"Provide the month as a number from 1 to 12",
		)
	}

	if n < 1 || n > 12 {
		return fail(
			fmt.Sprintf("Month %d is out of range", n),
			"Valid range is 1-12",
		)
	}

	return ok(n)
}

// Day checks that day falls in [1, 31]. Nil is valid.
//
// Day alone does not know the month, so 31 always passes here;
// DateComponents rejects impossible combinations like February 30.
func Day(day any) Result {
	if day == nil {
		return ok(nil)
	}

	n, isInt := toInt(day)
	if !isInt {
		return fail(
			fmt.Sprintf("Invalid day format: %v", day),
			"Provide the day as a number from 1 to 31",
		)
	}

	if n < 1 || n > 31 {
		return fail(
			fmt.Sprintf("Day %d is out of range", n),
			"Valid range is 1-31",
		)
	}

	return ok(n)
}

// DateComponents validates year, month, and day independently, then, when
// all three are present, constructs the actual calendar date to catch
// combinations the per-component checks cannot (February 30, April 31).
//
// On success Sanitized holds [3]int{year, month, day} with zeros for
// absent components.
func DateComponents(year, month, day any) Result {
	yr := Year(year)
	if !yr.Valid {
		return yr
	}
	mr := Month(month)
	if !mr.Valid {
		return mr
	}
	dr := Day(day)
	if !dr.Valid {
		return dr
	}

	var parts [3]int
	if yr.Sanitized != nil {
		parts[0] = yr.Sanitized.(int)
	}
	if mr.Sanitized != nil {
		parts[1] = mr.Sanitized.(int)
	}
	if dr.Sanitized != nil {
		parts[2] = dr.Sanitized.(int)
	}

	if parts[0] != 0 && parts[1] != 0 && parts[2] != 0 {
		t := time.Date(parts[0], time.Month(parts[1]), parts[2], 0, 0, 0, 0, time.UTC)
		if t.Year() != parts[0] || int(t.Month()) != parts[1] || t.Day() != parts[2] {
			return fail(
				fmt.Sprintf("%04d-%02d-%02d is not a valid calendar date", parts[0], parts[1], parts[2]),
				"Check the number of days in the month",
			)
		}
	}

	return ok(parts)
}

// LimitRange validates a page-size limit against [1, maxLimit].
//
// Unlike the other validators this one auto-corrects: out-of-range
// integers are clamped to the nearest bound and the result is still
// Valid, with Message noting the adjustment. Clamping a limit is a
// harmless UX nicety; it never changes which records are matched.
// Non-integer input is still a hard failure.
func LimitRange(limit any, maxLimit int) Result {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit == nil {
		return ok(nil)
	}

	n, isInt := toInt(limit)
	if !isInt {
		return fail(
			fmt.Sprintf("Invalid limit format: %v", limit),
			fmt.Sprintf("Provide the limit as a whole number from 1 to %d", maxLimit),
		)
	}

	switch {
	case n < 1:
		return Result{
			Valid:     true,
			Message:   fmt.Sprintf("Limit %d is below the minimum; using 1", n),
			Sanitized: 1,
		}
	case n > maxLimit:
		return Result{
			Valid:     true,
			Message:   fmt.Sprintf("Limit %d exceeds the maximum; using %d", n, maxLimit),
			Sanitized: maxLimit,
		}
	default:
		return ok(n)
	}
}

// Limit validates a page-size limit against the default maximum.
func Limit(limit any) Result {
	return LimitRange(limit, MaxLimit)
}

// billTypes are the legislative vehicle codes Congress.gov recognizes.
var billTypes = []string{"hr", "s", "hjres", "sjres", "hconres", "sconres", "hres", "sres"}

// amendmentTypes are the amendment chamber codes.
var amendmentTypes = []string{"samdt", "hamdt"}

// contentTypes are the bill content views a client may request.
var contentTypes = []string{"text", "summary"}

func memberOf(value string, allowed []string, what string) Result {
	canon := strings.ToLower(strings.TrimSpace(value))
	if canon == "" {
		return fail(
			fmt.Sprintf("Missing %s", what),
			fmt.Sprintf("Valid values: %s", strings.Join(allowed, ", ")),
		)
	}
	for _, a := range allowed {
		if canon == a {
			return ok(canon)
		}
	}
	return fail(
		fmt.Sprintf("Invalid %s: %q", what, value),
		fmt.Sprintf("Valid values: %s", strings.Join(allowed, ", ")),
	)
}

// BillType checks a bill type code (hr, s, hjres, ...). Matching is
// case-insensitive; Sanitized is the lowercased canonical code.
func BillType(billType string) Result {
	return memberOf(billType, billTypes, "bill type")
}

// AmendmentType checks an amendment type code (samdt or hamdt).
func AmendmentType(amendmentType string) Result {
	return memberOf(amendmentType, amendmentTypes, "amendment type")
}

// ContentType checks a bill content type (text or summary).
func ContentType(contentType string) Result {
	return memberOf(contentType, contentTypes, "content type")
}
