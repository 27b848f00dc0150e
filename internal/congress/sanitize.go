package congress

import (
	"fmt"
	"strconv"
	"strings"
)

// SanitizeParams converts loosely-typed tool arguments into the string
// query parameters the upstream API takes: strings are trimmed, numbers
// are stringified without exponent notation, and, when removeEmpty is
// set, nil values and empty strings are dropped entirely rather than sent
// as `param=`.
func SanitizeParams(params map[string]any, removeEmpty bool) map[string]string {
	out := make(map[string]string, len(params))
	for name, value := range params {
		if value == nil {
			if removeEmpty {
				continue
			}
			out[name] = ""
			continue
		}

		var s string
		switch v := value.(type) {
		case string:
			s = strings.TrimSpace(v)
		case bool:
			s = strconv.FormatBool(v)
		case int:
			s = strconv.Itoa(v)
		case int32:
			s = strconv.FormatInt(int64(v), 10)
		case int64:
			s = strconv.FormatInt(v, 10)
		case float64:
			if v == float64(int64(v)) {
				s = strconv.FormatInt(int64(v), 10)
			} else {
				s = strconv.FormatFloat(v, 'f', -1, 64)
			}
		default:
			s = strings.TrimSpace(fmt.Sprintf("%v", v))
		}

		if s == "" && removeEmpty {
			continue
		}
		out[name] = s
	}
	return out
}
