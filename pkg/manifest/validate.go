package manifest

import (
	"errors"

	"github.com/releasegate/relgate/pkg/logger"
	"github.com/releasegate/relgate/pkg/schema"
)

var validateLog = logger.New("manifest:validate")

// Result is the outcome of one validation run over one manifest.
//
// Valid reports the structural verdict, which alone decides the run's
// success. Violation is set instead of Valid when the document does not
// conform to the schema. Warnings and the typed Manifest are only produced
// for structurally valid documents.
type Result struct {
	ManifestPath string
	Valid        bool
	Violation    *schema.Violation
	Warnings     []string
	Manifest     *Manifest
}

// Validate runs the structural check and, when it passes, the policy check
// for a loaded document. A schema violation is reported inside the Result;
// errors are reserved for failures of the run itself.
func Validate(doc *Document, validator *schema.Validator) (*Result, error) {
	result := &Result{ManifestPath: doc.Path}

	if err := validator.Validate(doc.Data); err != nil {
		var violation *schema.Violation
		if errors.As(err, &violation) {
			validateLog.Printf("manifest %s failed structural validation at %s", doc.Path, violation.InstancePath)
			result.Violation = violation
			return result, nil
		}
		return nil, err
	}
	result.Valid = true

	m, err := doc.Decode()
	if err != nil {
		return nil, err
	}
	result.Manifest = m
	result.Warnings = CheckPolicy(m)

	validateLog.Printf("manifest %s is valid with %d warning(s)", doc.Path, len(result.Warnings))
	return result, nil
}
