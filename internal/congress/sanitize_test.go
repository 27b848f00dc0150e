package congress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeParams(t *testing.T) {
	out := SanitizeParams(map[string]any{
		"fromDateTime": "  2024-01-01T00:00:00Z ",
		"congress":     119,
		"limit":        float64(20),
		"offset":       int64(40),
		"ratio":        0.5,
		"current":      true,
		"query":        "",
		"sort":         nil,
	}, true)

	assert.Equal(t, map[string]string{
		"fromDateTime": "2024-01-01T00:00:00Z",
		"congress":     "119",
		"limit":        "20",
		"offset":       "40",
		"ratio":        "0.5",
		"current":      "true",
	}, out)
}

func TestSanitizeParamsKeepEmpty(t *testing.T) {
	out := SanitizeParams(map[string]any{"q": "", "sort": nil}, false)
	assert.Equal(t, map[string]string{"q": "", "sort": ""}, out)
}

func TestSanitizeParamsFloatNoExponent(t *testing.T) {
	out := SanitizeParams(map[string]any{"n": float64(2500000)}, true)
	assert.Equal(t, "2500000", out["n"])
}
