package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func docsCommand(rootCmd *cobra.Command) *cobra.Command {
	var format []string
	var outDir string

	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate nfs-profile documentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range format {
				dir := path.Join(outDir, f)
				if err := os.MkdirAll(dir, 0755); err != nil {
					return err
				}
				switch f {
				case "man":
					header := &doc.GenManHeader{
						Title:   "nfs-profile",
						Section: "1",
					}
					if err := doc.GenManTree(rootCmd, header, dir); err != nil {
						return err
					}
				case "md":
					if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
						return err
					}
				default:
					return fmt.Errorf("unknown documentation format '%s'", f)
				}
			}
			return nil
		},
	}

	docsCmd.ResetCommands()
	docsCmd.Flags().StringSliceVar(&format, "format", []string{"md"}, "Generate documentation in the given format (md,man)")
	docsCmd.Flags().StringVar(&outDir, "dir", "./docs", "Write the documentation below this directory")
	docsCmd.DisableAutoGenTag = true

	return docsCmd
}
