package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitolworks/congressd/internal/apierr"
)

func TestCheck(t *testing.T) {
	p := NewPolicy(DefaultPaidOperations)

	assert.NoError(t, p.Check(TierFree, "search_bills"))
	assert.NoError(t, p.Check(TierPaid, "search_bills"))
	assert.NoError(t, p.Check(TierPaid, "search_crs_reports"))

	err := p.Check(TierFree, "search_crs_reports")
	require.Error(t, err)

	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierr.TypeAuthentication, apiErr.Type)
	assert.Equal(t, "ACCESS_DENIED", apiErr.Code)
}

func TestIsGated(t *testing.T) {
	p := NewPolicy([]string{"x"})
	assert.True(t, p.IsGated("x"))
	assert.False(t, p.IsGated("y"))
}
