package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/releasegate/relgate/pkg/logger"
)

var errorsLog = logger.New("cli:errors")

// ErrorCollector collects per-manifest failures across a multi-file run so
// every manifest gets validated before the command fails.
type ErrorCollector struct {
	errors   []error
	failFast bool
}

// NewErrorCollector creates a new error collector. With failFast set, the
// collector hands back the first error instead of recording it.
func NewErrorCollector(failFast bool) *ErrorCollector {
	errorsLog.Printf("creating error collector: fail_fast=%v", failFast)
	return &ErrorCollector{
		errors:   make([]error, 0),
		failFast: failFast,
	}
}

// Add records an error. In fail-fast mode the error is returned immediately
// for the caller to propagate; otherwise Add returns nil.
func (c *ErrorCollector) Add(err error) error {
	if err == nil {
		return nil
	}

	errorsLog.Printf("adding error to collector: %v", err)

	if c.failFast {
		return err
	}

	c.errors = append(c.errors, err)
	return nil
}

// HasErrors returns true if any errors have been collected.
func (c *ErrorCollector) HasErrors() bool {
	return len(c.errors) > 0
}

// Count returns the number of errors collected.
func (c *ErrorCollector) Count() int {
	return len(c.errors)
}

// Error returns the collected errors joined together, or nil when the run
// was clean.
func (c *ErrorCollector) Error() error {
	if len(c.errors) == 0 {
		return nil
	}
	if len(c.errors) == 1 {
		return c.errors[0]
	}
	return errors.Join(c.errors...)
}

// FormattedError is like Error but prefixes multiple errors with a count
// header and bullets each one.
func (c *ErrorCollector) FormattedError(category string) error {
	if len(c.errors) == 0 {
		return nil
	}
	if len(c.errors) == 1 {
		return c.errors[0]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d %s errors:", len(c.errors), category)
	for _, err := range c.errors {
		sb.WriteString("\n  • ")
		sb.WriteString(err.Error())
	}

	return fmt.Errorf("%s", sb.String())
}
