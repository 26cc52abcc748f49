package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pgrigo01/nfs-profile/client"
	"github.com/pgrigo01/nfs-profile/pkg/params"
	"github.com/pgrigo01/nfs-profile/pkg/profile"
	"github.com/pgrigo01/nfs-profile/pkg/update"
)

func profileCommand(p profile.Profile) *cobra.Command {
	var paramsFile string
	var assignments []string
	var outFile string
	var forceYes, dryRun bool
	var remote string

	var renderCmd = &cobra.Command{
		Use:   p.Name(),
		Short: fmt.Sprintf("Render the %s profile", p.Name()),
		Long: fmt.Sprintf(`%s.

Parameters are taken from (highest precedence first) --set flags, environment
variables %s_<PARAMETER>, the file given by --params and the defaults. Run
"nfs-profile params %s" for the list of parameters.`, p.Description(), envPrefix, p.Name()),
		Example: exampleFor(p),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parameterSet(p, paramsFile, assignments)
			if err != nil {
				return err
			}

			var doc []byte
			if remote != "" {
				doc, err = renderRemote(cmd.Context(), remote, p, v)
			} else {
				doc, err = profile.Render(p, v)
			}
			if err != nil {
				return err
			}

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}

			_, err = update.MaybeWrite(outFile, doc, update.Options{
				ForceYes: forceYes,
				DryRun:   dryRun,
				Out:      cmd.OutOrStdout(),
			})
			return err
		},
	}

	renderCmd.Flags().StringVarP(&paramsFile, "params", "p", "", "Read parameters from a YAML, JSON or TOML file")
	renderCmd.Flags().StringArrayVar(&assignments, "set", nil, "Set a parameter (key=value), can be repeated")
	renderCmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the request to this file instead of stdout")
	renderCmd.Flags().BoolVar(&forceYes, "yes", false, "Replace an existing output file without asking")
	renderCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only show how an existing output file would change")
	renderCmd.Flags().StringVar(&remote, "remote", "", "Render on the nfs-profile server at this URL")
	renderCmd.DisableAutoGenTag = true

	return renderCmd
}

func exampleFor(p profile.Profile) string {
	defs := p.Parameters()
	if len(defs) == 0 {
		return ""
	}
	return fmt.Sprintf("nfs-profile %s --set %s=%v -o request.xml", p.Name(), defs[0].Name, defs[0].Default)
}

// parameterSet binds the parameters of p from all sources.
func parameterSet(p profile.Profile, paramsFile string, assignments []string) (*viper.Viper, error) {
	v := profile.Bind(p)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if paramsFile != "" {
		v.SetConfigFile(paramsFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read parameters from %s: %w", paramsFile, err)
		}
		log.WithField("file", paramsFile).Debug("read parameter file")
	}

	if err := params.SetAll(v, assignments); err != nil {
		return nil, err
	}

	return v, nil
}

const remoteTimeout = 30 * time.Second

func newClient(remote string) (*client.Client, error) {
	return client.NewClient(
		client.Remote(remote),
		client.Timeout(remoteTimeout),
		client.Log(log.StandardLogger()),
	)
}

func renderRemote(ctx context.Context, remote string, p profile.Profile, v *viper.Viper) ([]byte, error) {
	cli, err := newClient(remote)
	if err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return cli.Profiles.Render(ctx, p.Name(), v.AllSettings())
}
