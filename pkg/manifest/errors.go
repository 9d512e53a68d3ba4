package manifest

import "fmt"

// NotFoundError reports a manifest or schema path that does not exist on
// disk.
type NotFoundError struct {
	Kind string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s file not found: %s", e.Kind, e.Path)
}

// ParseError reports manifest content that is not valid YAML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
