package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/releasegate/relgate/pkg/cli"
	"github.com/releasegate/relgate/pkg/console"
	"github.com/releasegate/relgate/pkg/constants"
)

// version is the build version, set through ldflags at release time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Release Gate validates release manifests before promotion",
	Long: `Release Gate checks release manifest YAML files before a release is
promoted. Each manifest is validated structurally against a JSON schema,
then reviewed against release policy. Policy findings are advisory
warnings and never fail a run; only structural problems do.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(cli.NewValidateCommand())
	rootCmd.AddCommand(cli.NewNewCommand())
	rootCmd.AddCommand(cli.NewVersionCommand(version))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
