//go:build !integration

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/releasegate/relgate/pkg/schema"
)

const sampleManifest = `metadata:
  environment: prod
  version: v2.1.0
spec:
  components:
    - name: web
      version: v2.1.0
      commitSha: 0a1b2c3d4e5f60718293a4b5c6d7e8f901234567
      imageDigest: sha256:9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08
  securityScan:
    passed: true
    scanner: trivy
  approvals:
    - approver: alice@example.com
      role: release-manager
  tests:
    passed: true
    total: 312
  rollbackTarget: v2.0.3
`

func writeManifestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "release-manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifestFile(t, sampleManifest)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.NotNil(t, doc.Data)

	data, ok := doc.Data.(map[string]any)
	require.True(t, ok, "expected top-level mapping, got %T", doc.Data)
	assert.Contains(t, data, "metadata")
	assert.Contains(t, data, "spec")
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such-manifest.yaml"))
	require.Error(t, err)

	notFound, ok := err.(*NotFoundError)
	require.True(t, ok, "expected *NotFoundError, got %T", err)
	assert.Equal(t, "manifest", notFound.Kind)
	assert.Contains(t, err.Error(), "manifest file not found")
}

func TestLoadMalformedManifest(t *testing.T) {
	path := writeManifestFile(t, "metadata: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)

	parseErr, ok := err.(*ParseError)
	require.True(t, ok, "expected *ParseError, got %T", err)
	assert.Equal(t, path, parseErr.Path)
	assert.NotNil(t, parseErr.Unwrap())
}

func TestLoadNonMappingYAML(t *testing.T) {
	// A YAML list is well-formed YAML, so loading succeeds. The structural
	// check is what rejects it.
	path := writeManifestFile(t, "- web\n- api\n")

	doc, err := Load(path)
	require.NoError(t, err)
	_, ok := doc.Data.([]any)
	assert.True(t, ok, "expected top-level sequence, got %T", doc.Data)
}

func TestDecodeTypedManifest(t *testing.T) {
	doc, err := Load(writeManifestFile(t, sampleManifest))
	require.NoError(t, err)

	m, err := doc.Decode()
	require.NoError(t, err)

	assert.Equal(t, "prod", m.Metadata.Environment)
	assert.Equal(t, "v2.1.0", m.Metadata.Version)
	assert.True(t, m.Metadata.IsProd())

	require.Len(t, m.Spec.Components, 1)
	assert.Equal(t, "web", m.Spec.Components[0].Name)
	assert.Equal(t, "v2.1.0", m.Spec.Components[0].Version)

	require.NotNil(t, m.Spec.SecurityScan)
	assert.True(t, m.Spec.SecurityScan.Passed)
	assert.Equal(t, "trivy", m.Spec.SecurityScan.Scanner)

	require.Len(t, m.Spec.Approvals, 1)
	assert.Equal(t, "alice@example.com", m.Spec.Approvals[0].Approver)

	require.NotNil(t, m.Spec.Tests)
	assert.True(t, m.Spec.Tests.Passed)
	assert.Equal(t, 312, m.Spec.Tests.Total)

	assert.Equal(t, "v2.0.3", m.Spec.RollbackTarget)
}

func TestLoadSchemaMissing(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "no-such-schema.json"))
	require.Error(t, err)

	notFound, ok := err.(*NotFoundError)
	require.True(t, ok, "expected *NotFoundError, got %T", err)
	assert.Equal(t, "schema", notFound.Kind)
	assert.Contains(t, err.Error(), "schema file not found")
}

func TestResolveSchemaExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom-schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type": "object"}`), 0644))

	validator, source, err := ResolveSchema(path)
	require.NoError(t, err)
	assert.NotNil(t, validator)
	assert.Equal(t, path, source)
}

func TestResolveSchemaExplicitPathMissing(t *testing.T) {
	_, _, err := ResolveSchema(filepath.Join(t.TempDir(), "gone.json"))
	require.Error(t, err)

	notFound, ok := err.(*NotFoundError)
	require.True(t, ok, "expected *NotFoundError, got %T", err)
	assert.Equal(t, "schema", notFound.Kind)
}

func TestResolveSchemaEmbeddedFallback(t *testing.T) {
	t.Chdir(t.TempDir())

	validator, source, err := ResolveSchema("")
	require.NoError(t, err)
	assert.NotNil(t, validator)
	assert.Equal(t, schema.EmbeddedSource, source)
}

func TestResolveSchemaDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "schemas"), 0755))
	schemaPath := filepath.Join(dir, "schemas", "release-manifest-schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"type": "object"}`), 0644))

	validator, source, err := ResolveSchema("")
	require.NoError(t, err)
	assert.NotNil(t, validator)
	assert.Equal(t, "schemas/release-manifest-schema.json", source)
}
