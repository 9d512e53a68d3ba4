// Package schema compiles JSON schemas and validates release manifest
// documents against them. A failed validation surfaces exactly one violation,
// chosen deterministically, so repeated runs over the same inputs produce
// identical output.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/releasegate/relgate/pkg/logger"
)

var schemaLog = logger.New("schema:compile")

// resourceName is the URL the schema document is registered under in the
// compiler. The document's own $id takes precedence for reference resolution.
const resourceName = "release-manifest.schema.json"

// Validator wraps a compiled JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// ParseError reports a schema document that is not valid JSON.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON in schema %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DefinitionError reports a document that is valid JSON but not a valid JSON
// schema. It is distinct from a manifest failing validation.
type DefinitionError struct {
	Source string
	Err    error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("schema %s is not a valid JSON schema: %v", e.Source, e.Err)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// Compile parses and compiles a schema document. The source describes where
// the document came from (a file path or EmbeddedSource) and appears in error
// messages.
func Compile(source string, data []byte) (*Validator, error) {
	schemaLog.Printf("compiling schema from %s (%d bytes)", source, len(data))

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)
	if err := compiler.AddResource(resourceName, doc); err != nil {
		return nil, &DefinitionError{Source: source, Err: err}
	}

	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, &DefinitionError{Source: source, Err: err}
	}

	return &Validator{schema: compiled}, nil
}

// Validate checks a decoded manifest document against the schema. It returns
// nil when the document conforms and a *Violation when it does not.
func (v *Validator) Validate(doc any) error {
	instance, err := normalize(doc)
	if err != nil {
		return fmt.Errorf("failed to normalize manifest for validation: %w", err)
	}

	err = v.schema.Validate(instance)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		return newViolation(verr)
	}
	return err
}

// normalize round-trips a decoded YAML value through JSON so the instance
// holds only JSON-compatible Go values, independent of the YAML decoder's
// type choices.
func normalize(doc any) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}
