//go:build !integration

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.4.0")
	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Name())

	output := captureStdout(t, func() {
		cmd.Run(cmd, nil)
	})

	assert.Equal(t, "relgate version 1.4.0\n", output)
}
