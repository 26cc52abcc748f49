package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pgrigo01/nfs-profile/client"
	"github.com/pgrigo01/nfs-profile/pkg/rest"
)

func serverCommand() *cobra.Command {
	var serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Starts a web server serving a REST API",
		Long: `Starts a web server serving a REST API to list profiles, describe their
parameters and render request RSpecs.

The listen address and the allowed CORS origins can also be set in the config
file as server.addr and server.cors_allowed_origins.

For example:
nfs-profile server --addr=":8337"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := viper.GetString("server.addr")
			corsOrigins := viper.GetStringSlice("server.cors_allowed_origins")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return rest.ListenAndServe(ctx, addr, corsOrigins)
		},
	}

	serverCmd.ResetCommands()
	defaultAddr := fmt.Sprintf(":%d", client.DefaultPort)
	serverCmd.Flags().String("addr", defaultAddr, "Host and port as defined by http.ListenAndServe()")
	serverCmd.Flags().StringSlice("cors-origins", nil, "Origins allowed to call the API from a browser")
	_ = viper.BindPFlag("server.addr", serverCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.cors_allowed_origins", serverCmd.Flags().Lookup("cors-origins"))
	serverCmd.DisableAutoGenTag = true

	return serverCmd
}
