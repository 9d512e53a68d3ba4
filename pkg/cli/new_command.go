package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/releasegate/relgate/pkg/console"
	"github.com/releasegate/relgate/pkg/constants"
	"github.com/releasegate/relgate/pkg/fileutil"
	"github.com/releasegate/relgate/pkg/logger"
	"github.com/releasegate/relgate/pkg/manifest"
	"github.com/releasegate/relgate/pkg/schema"
)

var newLog = logger.New("cli:new")

// NewConfig holds configuration for the new command.
type NewConfig struct {
	OutputPath  string
	Environment string
	Version     string
	Component   string
	Force       bool
}

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Scaffold a release manifest",
		Long: `Create a release manifest that passes schema validation.

Values not provided through flags are collected interactively. The
generated manifest is checked against the embedded schema before it is
written, so a scaffolded file always starts out valid.

Examples:
  relgate new
  relgate new releases/release-v2.1.0.yaml
  relgate new --environment prod --version v2.1.0 --component web
  relgate new --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			environment, _ := cmd.Flags().GetString("environment")
			version, _ := cmd.Flags().GetString("version")
			component, _ := cmd.Flags().GetString("component")
			force, _ := cmd.Flags().GetBool("force")

			outputPath := constants.DefaultManifestFile
			if len(args) > 0 {
				outputPath = args[0]
			}

			config := NewConfig{
				OutputPath:  outputPath,
				Environment: environment,
				Version:     version,
				Component:   component,
				Force:       force,
			}

			return RunNew(config)
		},
	}

	// Add flags
	cmd.Flags().StringP("environment", "e", "", "Target environment (dev, staging, prod)")
	cmd.Flags().String("version", "", "Release version (v1.2.3)")
	cmd.Flags().StringP("component", "c", "", "Name of the first component")
	cmd.Flags().BoolP("force", "f", false, "Overwrite the output file if it exists")

	return cmd
}

// RunNew scaffolds a manifest at the configured path. Missing values are
// prompted for; values supplied through flags are validated as-is.
func RunNew(config NewConfig) error {
	newLog.Printf("Running new: output=%s", config.OutputPath)

	if fileutil.FileExists(config.OutputPath) && !config.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.OutputPath)
	}

	if err := promptForMissingValues(&config); err != nil {
		return err
	}
	if err := validateNewConfig(config); err != nil {
		return err
	}

	content, err := renderManifest(config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(config.OutputPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.OutputPath, err)
	}

	fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("Created %s", config.OutputPath)))
	fmt.Println("Validate it with:")
	fmt.Println(console.FormatCommandMessage(fmt.Sprintf("  relgate validate %s", config.OutputPath)))
	return nil
}

// promptForMissingValues collects any values that were not supplied through
// flags.
func promptForMissingValues(config *NewConfig) error {
	var fields []huh.Field

	if config.Environment == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Target environment").
			Description("Production manifests are held to stricter release policy").
			Options(huh.NewOptions(constants.Environments...)...).
			Value(&config.Environment))
	}
	if config.Version == "" {
		fields = append(fields, huh.NewInput().
			Title("Release version").
			Description("Semantic version with a leading v, for example v1.2.0").
			Placeholder("v1.0.0").
			Validate(validateVersionInput).
			Value(&config.Version))
	}
	if config.Component == "" {
		fields = append(fields, huh.NewInput().
			Title("First component name").
			Description("More components can be added to the manifest later").
			Placeholder("web").
			Validate(validateComponentInput).
			Value(&config.Component))
	}

	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(fields...).Title("New Release Manifest"),
	).WithAccessible(console.IsAccessibleMode())

	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to get user input: %w", err)
	}
	return nil
}

func validateVersionInput(version string) error {
	if !manifest.IsSemanticVersion(version) {
		return fmt.Errorf("version must look like v1.2.3 or v1.2.3-beta1")
	}
	return nil
}

func validateComponentInput(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("component name must not be empty")
	}
	return nil
}

// validateNewConfig applies the same checks to flag-provided values that
// the interactive form applies to typed ones.
func validateNewConfig(config NewConfig) error {
	if !slices.Contains(constants.Environments, config.Environment) {
		return fmt.Errorf("invalid environment %q (must be one of: %s)", config.Environment, strings.Join(constants.Environments, ", "))
	}
	if err := validateVersionInput(config.Version); err != nil {
		return err
	}
	return validateComponentInput(config.Component)
}

// renderManifest marshals the scaffold and verifies it against the embedded
// schema before it is handed back for writing.
func renderManifest(config NewConfig) ([]byte, error) {
	m := manifest.Manifest{
		Metadata: manifest.Metadata{
			Environment: config.Environment,
			Version:     config.Version,
		},
		Spec: manifest.Spec{
			Components: []manifest.Component{
				{Name: config.Component, Version: config.Version},
			},
		},
	}

	content, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to render manifest: %w", err)
	}

	validator, err := schema.CompileEmbedded()
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to render manifest: %w", err)
	}
	if err := validator.Validate(doc); err != nil {
		return nil, fmt.Errorf("generated manifest failed validation: %w", err)
	}

	newLog.Printf("scaffolded manifest for %s %s", config.Environment, config.Version)
	return content, nil
}
