package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pgrigo01/nfs-profile/pkg/profile"
	"github.com/pgrigo01/nfs-profile/pkg/version"
)

const envPrefix = "NFS_PROFILE"

// rootCommand represents the base command when called without any subcommands
func rootCommand() *cobra.Command {
	if len(os.Args) < 1 {
		log.Fatal("Program started with a zero-length argument list")
	}

	var logLevel string
	var configFile string

	rootCmd := &cobra.Command{
		Use:     "nfs-profile",
		Version: version.Version,
		Short:   "Render CloudLab request RSpecs for NFS experiments",
		Long: `nfs-profile turns profile parameters into a CloudLab/GENI request RSpec.
The "nfs" profile describes an NFS server with (persistent) storage and a set
of clients, the "cluster" profile a set of nodes with extra or shared storage
attached to shared VLANs.

The document is printed on stdout, logs go to stderr.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(level)

			return initConfig(configFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set the log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Read tool settings from this file (default $HOME/.config/nfs-profile.toml)")

	for _, p := range profile.All() {
		rootCmd.AddCommand(profileCommand(p))
	}
	rootCmd.AddCommand(paramsCommand())
	rootCmd.AddCommand(serverCommand())
	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(completionCommand(rootCmd))
	rootCmd.AddCommand(docsCommand(rootCmd))
	return rootCmd
}

// initConfig reads the tool settings. Parameter sets are not read from here,
// they come from --params and --set.
func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	explicit := configFile != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			log.WithError(err).Debug("no home directory, not reading a config file")
			return nil
		}
		configFile = filepath.Join(home, ".config", "nfs-profile.toml")
	}

	viper.SetConfigFile(configFile)
	err := viper.ReadInConfig()
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd := rootCommand()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	violations := violationsOf(err)
	if len(violations) == 0 {
		fmt.Fprintf(w, "%s %v\n", colorBad("Error:"), err)
		return
	}

	fmt.Fprintf(w, "%s invalid parameters\n", colorBad("Error:"))
	for _, v := range violations {
		if v.Field == "" {
			fmt.Fprintf(w, "  • %s\n", v.Reason)
		} else {
			fmt.Fprintf(w, "  • %s: %s\n", colorField(v.Field), v.Reason)
		}
	}
}
