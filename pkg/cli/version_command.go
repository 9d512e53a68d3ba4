package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/releasegate/relgate/pkg/constants"
)

// NewVersionCommand creates the version command
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the relgate version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", constants.CLIName, version)
		},
	}
}
