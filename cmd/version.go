package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgrigo01/nfs-profile/pkg/version"
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information of nfs-profile",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s version %s\n", colorHeader("nfs-profile"), version.Version)
			fmt.Fprintf(out, "Built at %s\n", version.BuildDate)
			fmt.Fprintf(out, "Version control hash: %s\n", version.GitCommit)
		},
	}
}
