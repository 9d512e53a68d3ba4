//go:build !integration

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/releasegate/relgate/pkg/manifest"
	"github.com/releasegate/relgate/pkg/schema"
)

func scaffoldConfig(t *testing.T) NewConfig {
	t.Helper()
	return NewConfig{
		OutputPath:  filepath.Join(t.TempDir(), "release-manifest.yaml"),
		Environment: "prod",
		Version:     "v2.1.0",
		Component:   "web",
	}
}

func TestRunNewScaffoldsManifest(t *testing.T) {
	config := scaffoldConfig(t)

	var runErr error
	output := captureStdout(t, func() {
		runErr = RunNew(config)
	})

	require.NoError(t, runErr)
	assert.Contains(t, output, "Created "+config.OutputPath)
	assert.Contains(t, output, "relgate validate "+config.OutputPath)

	content, err := os.ReadFile(config.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "environment: prod")
	assert.Contains(t, string(content), "version: v2.1.0")
	assert.Contains(t, string(content), "name: web")
}

func TestRunNewOutputPassesValidation(t *testing.T) {
	config := scaffoldConfig(t)

	captureStdout(t, func() {
		require.NoError(t, RunNew(config))
	})

	doc, err := manifest.Load(config.OutputPath)
	require.NoError(t, err)

	validator, err := schema.CompileEmbedded()
	require.NoError(t, err)

	result, err := manifest.Validate(doc, validator)
	require.NoError(t, err)
	assert.True(t, result.Valid, "a scaffolded manifest should pass schema validation")
}

func TestRunNewRefusesExistingFile(t *testing.T) {
	config := scaffoldConfig(t)
	require.NoError(t, os.WriteFile(config.OutputPath, []byte("existing"), 0644))

	err := RunNew(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRunNewForceOverwrites(t *testing.T) {
	config := scaffoldConfig(t)
	require.NoError(t, os.WriteFile(config.OutputPath, []byte("existing"), 0644))
	config.Force = true

	captureStdout(t, func() {
		require.NoError(t, RunNew(config))
	})

	content, err := os.ReadFile(config.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "environment: prod")
}

func TestRunNewRejectsInvalidEnvironment(t *testing.T) {
	config := scaffoldConfig(t)
	config.Environment = "qa"

	err := RunNew(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}

func TestRunNewRejectsInvalidVersion(t *testing.T) {
	config := scaffoldConfig(t)
	config.Version = "2.1.0"

	err := RunNew(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version must look like")
}

func TestRunNewRejectsBlankComponent(t *testing.T) {
	config := scaffoldConfig(t)
	config.Component = "   "

	err := RunNew(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "component name must not be empty")
}

func TestNewCommandFlags(t *testing.T) {
	cmd := NewNewCommand()

	require.NotNil(t, cmd.Flags().Lookup("environment"), "new command should have an --environment flag")
	assert.Equal(t, "e", cmd.Flags().Lookup("environment").Shorthand)
	require.NotNil(t, cmd.Flags().Lookup("version"), "new command should have a --version flag")
	require.NotNil(t, cmd.Flags().Lookup("component"), "new command should have a --component flag")
	require.NotNil(t, cmd.Flags().Lookup("force"), "new command should have a --force flag")
}
