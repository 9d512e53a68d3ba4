package cli

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/releasegate/relgate/pkg/console"
	"github.com/releasegate/relgate/pkg/logger"
	"github.com/releasegate/relgate/pkg/manifest"
	"github.com/releasegate/relgate/pkg/schema"
	"github.com/releasegate/relgate/pkg/tty"
)

var reportLog = logger.New("cli:report")

// The validation report goes to stdout so it can be captured and parsed by
// release pipelines; stderr is reserved for debug logging and usage errors.

// printRunHeader prints the banner that opens every manifest report.
func printRunHeader(manifestPath, schemaSource string) {
	fmt.Println(console.FormatProgressMessage("Validating Release Manifest"))
	fmt.Printf("Manifest: %s\n", manifestPath)
	fmt.Printf("Schema:   %s\n", schemaSource)
	fmt.Println()
}

// printManifestContent dumps the parsed document, showing exactly what the
// structural check ran against.
func printManifestContent(doc *manifest.Document) {
	content, err := yaml.Marshal(doc.Data)
	if err != nil {
		reportLog.Printf("failed to render manifest content: %v", err)
		return
	}
	fmt.Println(console.FormatInfoMessage("Manifest content:"))
	fmt.Println(string(content))
}

// printParseFailure reports a manifest that could not be loaded. Verbose
// mode adds the annotated source snippet for YAML errors.
func printParseFailure(err error, verbose bool) {
	fmt.Println(console.FormatErrorMessage(err.Error()))

	if !verbose {
		return
	}
	var parseErr *manifest.ParseError
	if !errors.As(err, &parseErr) {
		return
	}
	if detail := yaml.FormatError(parseErr.Err, tty.IsStdoutTerminal(), true); detail != "" {
		fmt.Println()
		fmt.Println(detail)
	}
}

// printStructuralFailure reports the violation that failed the structural
// check: the message, the path of the offending element, and the schema
// rule it broke.
func printStructuralFailure(violation *schema.Violation, verbose bool) {
	fmt.Println(console.FormatErrorMessage("Schema validation failed:"))
	fmt.Printf("   %s\n", violation.Message)
	fmt.Printf("   Path: %s\n", violation.InstancePath)
	fmt.Printf("   Rule: %s\n", violation.Keyword)

	if verbose {
		fmt.Println()
		fmt.Println(console.FormatWarningMessage("Full error:"))
		fmt.Println(violation.Detail())
	}
}

// printValidationSuccess reports a structurally valid manifest: the passed
// line, any policy warnings, and the release summary.
func printValidationSuccess(result *manifest.Result, verbose bool) {
	fmt.Println(console.FormatSuccessMessage("Schema validation passed"))

	if len(result.Warnings) > 0 {
		fmt.Println()
		fmt.Println(console.FormatWarningMessage("Additional warnings:"))
		for _, warning := range result.Warnings {
			fmt.Printf("   %s\n", console.FormatWarningMessage(warning))
		}
	}

	fmt.Println()
	fmt.Println(console.FormatSuccessMessage("Validation complete!"))
	fmt.Print(console.RenderStruct(releaseSummary{
		Environment: result.Manifest.Metadata.Environment,
		Version:     result.Manifest.Metadata.Version,
		Components:  len(result.Manifest.Spec.Components),
	}))

	if verbose && len(result.Manifest.Spec.Components) > 0 {
		fmt.Println()
		fmt.Print(console.RenderStruct(componentDetails{Components: result.Manifest.Spec.Components}))
	}

	if len(result.Warnings) > 0 {
		fmt.Println()
		fmt.Println(console.FormatLocationMessage("Note: Warnings do not fail validation but should be reviewed."))
	}
}

// releaseSummary is the footer shown after a passing validation.
type releaseSummary struct {
	Environment string
	Version     string
	Components  int
}

// componentDetails renders the per-component table in verbose mode.
type componentDetails struct {
	Components []manifest.Component `console:"title:Components"`
}
