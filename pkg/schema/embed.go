package schema

import (
	_ "embed"
)

//go:embed release-manifest.schema.json
var embeddedSchema []byte

// EmbeddedSource identifies the built-in schema in output and error messages.
const EmbeddedSource = "embedded release-manifest schema"

// CompileEmbedded compiles the release manifest schema built into the binary.
// It is used when no schema file is present at the conventional path.
func CompileEmbedded() (*Validator, error) {
	return Compile(EmbeddedSource, embeddedSchema)
}
