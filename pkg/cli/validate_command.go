package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/releasegate/relgate/pkg/logger"
	"github.com/releasegate/relgate/pkg/manifest"
	"github.com/releasegate/relgate/pkg/schema"
)

var validateLog = logger.New("cli:validate")

// ValidateConfig holds configuration for a validate command run.
type ValidateConfig struct {
	ManifestFiles []string
	SchemaPath    string
	Verbose       bool
	FailFast      bool
	Watch         bool
}

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest>...",
		Short: "Validate release manifests against the release schema",
		Long: `Validate one or more release manifest YAML files.

Each manifest is checked in two stages. The structural stage validates the
document against the release manifest JSON schema and alone decides whether
the manifest passes. The policy stage then reviews structurally valid
manifests for release hygiene (production gates, version and digest
formats, rollback targets) and reports its findings as warnings that never
fail the run.

Without --schema, the schema is read from schemas/release-manifest-schema.json
when that file exists, falling back to the embedded copy otherwise.

Examples:
  relgate validate releases/release-v2.1.0.yaml
  relgate validate releases/dev.yaml releases/prod.yaml
  relgate validate release.yaml --schema custom-schema.json
  relgate validate release.yaml --verbose
  relgate validate release.yaml --watch
  relgate validate releases/*.yaml --fail-fast`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaPath, _ := cmd.Flags().GetString("schema")
			verbose, _ := cmd.Flags().GetBool("verbose")
			failFast, _ := cmd.Flags().GetBool("fail-fast")
			watch, _ := cmd.Flags().GetBool("watch")

			config := ValidateConfig{
				ManifestFiles: args,
				SchemaPath:    schemaPath,
				Verbose:       verbose,
				FailFast:      failFast,
				Watch:         watch,
			}

			if config.Watch {
				return RunValidateWatch(cmd.Context(), config)
			}
			return RunValidate(config)
		},
	}

	// Add flags
	cmd.Flags().StringP("schema", "s", "", "Path to the JSON schema file (default: schemas/release-manifest-schema.json)")
	cmd.Flags().Bool("fail-fast", false, "Stop at the first failing manifest instead of validating all of them")
	cmd.Flags().BoolP("watch", "w", false, "Keep running and revalidate manifests when they change")

	return cmd
}

// RunValidate validates each configured manifest and prints a report per
// file. The returned error reflects structural verdicts and load failures
// only; policy warnings never fail a run.
func RunValidate(config ValidateConfig) error {
	validateLog.Printf("Running validate: manifests=%v, schema=%s", config.ManifestFiles, config.SchemaPath)

	validator, schemaSource, err := manifest.ResolveSchema(config.SchemaPath)
	if err != nil {
		return err
	}
	validateLog.Printf("using schema: %s", schemaSource)

	collector := NewErrorCollector(config.FailFast)
	for i, manifestPath := range config.ManifestFiles {
		if i > 0 {
			fmt.Println()
		}
		if err := validateManifestFile(manifestPath, validator, schemaSource, config.Verbose); err != nil {
			if returnErr := collector.Add(err); returnErr != nil {
				return returnErr
			}
		}
	}

	return collector.FormattedError("validation")
}

// validateManifestFile runs the full report for one manifest: header, load,
// structural check, and either the failure detail or the policy warnings
// and summary.
func validateManifestFile(manifestPath string, validator *schema.Validator, schemaSource string, verbose bool) error {
	printRunHeader(manifestPath, schemaSource)

	doc, err := manifest.Load(manifestPath)
	if err != nil {
		printParseFailure(err, verbose)
		return err
	}

	if verbose {
		printManifestContent(doc)
	}

	result, err := manifest.Validate(doc, validator)
	if err != nil {
		return err
	}

	if !result.Valid {
		printStructuralFailure(result.Violation, verbose)
		return fmt.Errorf("manifest %s failed schema validation at %s", manifestPath, result.Violation.InstancePath)
	}

	printValidationSuccess(result, verbose)
	return nil
}
