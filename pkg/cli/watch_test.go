//go:build !integration

package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunValidateWatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeTestManifest(t, validProdManifest)

	var runErr error
	output := captureStdout(t, func() {
		runErr = RunValidateWatch(ctx, ValidateConfig{ManifestFiles: []string{path}})
	})

	assert.NoError(t, runErr, "a cancelled watch should exit cleanly")
	assert.Contains(t, output, "Schema validation passed",
		"the initial validation runs before watching starts")
	assert.Contains(t, output, "Watching 1 manifest(s) for changes")
	assert.Contains(t, output, "Watch stopped.")
}

func TestRunValidateWatchMissingDirectory(t *testing.T) {
	var runErr error
	captureStdout(t, func() {
		runErr = RunValidateWatch(context.Background(), ValidateConfig{
			ManifestFiles: []string{"/no/such/dir/release.yaml"},
		})
	})

	assert.Error(t, runErr, "watching a manifest in a missing directory should fail")
	assert.Contains(t, runErr.Error(), "failed to watch")
}
