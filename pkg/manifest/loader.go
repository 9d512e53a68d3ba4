package manifest

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/releasegate/relgate/pkg/constants"
	"github.com/releasegate/relgate/pkg/fileutil"
	"github.com/releasegate/relgate/pkg/logger"
	"github.com/releasegate/relgate/pkg/schema"
)

var loaderLog = logger.New("manifest:loader")

// Document is a manifest read from disk. Data holds the generic decode used
// for structural validation; the typed model is decoded separately once the
// shape is known to be valid.
type Document struct {
	Path string
	Raw  []byte
	Data any
}

// Load reads and decodes a manifest YAML file. It returns *NotFoundError
// when the path does not exist and *ParseError when the content is not
// valid YAML.
func Load(path string) (*Document, error) {
	loaderLog.Printf("loading manifest %s", path)
	if !fileutil.FileExists(path) {
		return nil, &NotFoundError{Kind: "manifest", Path: path}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var data any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		loaderLog.Printf("manifest %s failed to parse: %v", path, err)
		return nil, &ParseError{Path: path, Err: err}
	}

	return &Document{Path: path, Raw: raw, Data: data}, nil
}

// Decode unmarshals the typed manifest model from the document bytes. It is
// called after structural validation, when the document is known to be a
// release manifest.
func (d *Document) Decode() (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(d.Raw, &m); err != nil {
		return nil, &ParseError{Path: d.Path, Err: err}
	}
	return &m, nil
}

// LoadSchema reads and compiles a schema document from disk.
func LoadSchema(path string) (*schema.Validator, error) {
	loaderLog.Printf("loading schema %s", path)
	if !fileutil.FileExists(path) {
		return nil, &NotFoundError{Kind: "schema", Path: path}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}

	return schema.Compile(path, raw)
}

// ResolveSchema picks the schema for a validation run. An explicitly
// requested path must exist. Without one, the conventional project path is
// used when present and the embedded schema otherwise. The returned source
// string is what reports show for the schema location.
func ResolveSchema(explicit string) (*schema.Validator, string, error) {
	if explicit != "" {
		validator, err := LoadSchema(explicit)
		if err != nil {
			return nil, "", err
		}
		return validator, explicit, nil
	}

	if fileutil.FileExists(constants.DefaultSchemaPath) {
		validator, err := LoadSchema(constants.DefaultSchemaPath)
		if err != nil {
			return nil, "", err
		}
		return validator, constants.DefaultSchemaPath, nil
	}

	loaderLog.Print("no schema file found, using embedded schema")
	validator, err := schema.CompileEmbedded()
	if err != nil {
		return nil, "", err
	}
	return validator, schema.EmbeddedSource, nil
}
