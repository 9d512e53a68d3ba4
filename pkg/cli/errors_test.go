//go:build !integration

package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCollectorEmpty(t *testing.T) {
	collector := NewErrorCollector(false)

	assert.False(t, collector.HasErrors())
	assert.Equal(t, 0, collector.Count())
	assert.NoError(t, collector.Error())
	assert.NoError(t, collector.FormattedError("validation"))
}

func TestErrorCollectorSingleError(t *testing.T) {
	collector := NewErrorCollector(false)
	err := errors.New("manifest a.yaml failed schema validation at /metadata/version")

	assert.NoError(t, collector.Add(err))
	assert.True(t, collector.HasErrors())
	assert.Equal(t, 1, collector.Count())
	assert.Equal(t, err, collector.Error())
	assert.Equal(t, err, collector.FormattedError("validation"),
		"a single error should pass through without a count header")
}

func TestErrorCollectorMultipleErrors(t *testing.T) {
	collector := NewErrorCollector(false)

	require.NoError(t, collector.Add(errors.New("first failure")))
	require.NoError(t, collector.Add(errors.New("second failure")))

	assert.Equal(t, 2, collector.Count())

	joined := collector.Error()
	require.Error(t, joined)
	assert.Contains(t, joined.Error(), "first failure")
	assert.Contains(t, joined.Error(), "second failure")

	formatted := collector.FormattedError("validation")
	require.Error(t, formatted)
	assert.Contains(t, formatted.Error(), "Found 2 validation errors:")
	assert.Contains(t, formatted.Error(), "• first failure")
	assert.Contains(t, formatted.Error(), "• second failure")
}

func TestErrorCollectorIgnoresNil(t *testing.T) {
	collector := NewErrorCollector(false)

	assert.NoError(t, collector.Add(nil))
	assert.False(t, collector.HasErrors())
}

func TestErrorCollectorFailFast(t *testing.T) {
	collector := NewErrorCollector(true)
	err := errors.New("first failure")

	assert.Equal(t, err, collector.Add(err),
		"fail-fast mode should hand the error back immediately")
	assert.False(t, collector.HasErrors(),
		"fail-fast errors are returned, not recorded")
}
