package cmd

import (
	"github.com/spf13/cobra"
)

func completionCommand(dst *cobra.Command) *cobra.Command {
	var completionCmd = &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion script",
		Long: `To load completion run

. <(nfs-profile completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(nfs-profile completion)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dst.GenBashCompletion(cmd.OutOrStdout())
		},
	}

	completionCmd.ResetCommands()
	completionCmd.DisableAutoGenTag = true

	return completionCmd
}
