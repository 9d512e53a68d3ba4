//go:build !integration

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/releasegate/relgate/pkg/schema"
)

func embeddedValidator(t *testing.T) *schema.Validator {
	t.Helper()
	validator, err := schema.CompileEmbedded()
	require.NoError(t, err)
	return validator
}

func TestValidateConformingManifest(t *testing.T) {
	doc, err := Load(writeManifestFile(t, sampleManifest))
	require.NoError(t, err)

	result, err := Validate(doc, embeddedValidator(t))
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Nil(t, result.Violation)
	assert.Empty(t, result.Warnings)
	require.NotNil(t, result.Manifest)
	assert.Equal(t, "v2.1.0", result.Manifest.Metadata.Version)
}

func TestValidateStructuralFailure(t *testing.T) {
	doc, err := Load(writeManifestFile(t, `metadata:
  environment: prod
spec:
  components:
    - name: web
      version: v2.1.0
`))
	require.NoError(t, err)

	result, err := Validate(doc, embeddedValidator(t))
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.NotNil(t, result.Violation)
	assert.Equal(t, "/metadata/version", result.Violation.InstancePath)
	assert.Nil(t, result.Manifest)
	assert.Empty(t, result.Warnings)
}

func TestValidateWarningsDoNotFail(t *testing.T) {
	doc, err := Load(writeManifestFile(t, `metadata:
  environment: dev
  version: v0.3.0
spec:
  components:
    - name: api
      version: 0.3.0
`))
	require.NoError(t, err)

	result, err := Validate(doc, embeddedValidator(t))
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, []string{"Component 'api' has invalid semantic version: 0.3.0"}, result.Warnings)
}

func TestValidateNonMappingDocument(t *testing.T) {
	doc, err := Load(writeManifestFile(t, "- web\n- api\n"))
	require.NoError(t, err)

	result, err := Validate(doc, embeddedValidator(t))
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.NotNil(t, result.Violation)
	assert.Equal(t, "/", result.Violation.InstancePath)
}

func TestValidateRepeatedRunsStable(t *testing.T) {
	validator := embeddedValidator(t)

	doc, err := Load(writeManifestFile(t, `metadata:
  environment: prod
  version: v2.1.0
spec:
  components:
    - name: web
      version: v2.1.0
`))
	require.NoError(t, err)

	first, err := Validate(doc, validator)
	require.NoError(t, err)

	for range 5 {
		next, err := Validate(doc, validator)
		require.NoError(t, err)
		assert.Equal(t, first.Valid, next.Valid)
		assert.Equal(t, first.Warnings, next.Warnings)
	}
}
