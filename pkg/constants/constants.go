// Package constants defines shared values used across relgate commands.
package constants

// CLIName is the binary name shown in help and version output.
const CLIName = "relgate"

// DefaultSchemaPath is the conventional location of the release manifest
// schema inside a release repository, relative to the working directory.
// When the file is absent the CLI falls back to the embedded schema.
const DefaultSchemaPath = "schemas/release-manifest-schema.json"

// DefaultManifestFile is the file name the scaffolder writes when no output
// path is given.
const DefaultManifestFile = "release-manifest.yaml"

// Deployment environments accepted by the manifest schema.
const (
	EnvironmentDev     = "dev"
	EnvironmentStaging = "staging"
	EnvironmentProd    = "prod"
)

// Environments lists the accepted deployment environments in promotion order.
var Environments = []string{EnvironmentDev, EnvironmentStaging, EnvironmentProd}
