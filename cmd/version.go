package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eikafleet/devnamer/internal/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Info()
			fmt.Printf("devnamer version %s, build %s (%s/%s)\n",
				info["Version"], info["GitCommit"], info["OS"], info["Arch"])
			return nil
		},
	}
}
