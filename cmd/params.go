package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pgrigo01/nfs-profile/pkg/params"
	"github.com/pgrigo01/nfs-profile/pkg/profile"
)

func paramsCommand() *cobra.Command {
	var initFile bool
	var format string
	var advanced bool
	var remote string

	var paramsCmd = &cobra.Command{
		Use:   "params PROFILE",
		Short: "Lists the parameters of a profile",
		Long: `Lists the parameters of a profile with their types and defaults.

With --init a parameter file holding all defaults is printed instead. Edit it
and pass it back with --params.`,
		Example: "nfs-profile params cluster --init --format yaml > cluster.yaml",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var names []string
			for _, p := range profile.All() {
				names = append(names, p.Name())
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := definitions(cmd.Context(), remote, args[0])
			if err != nil {
				return err
			}

			if initFile {
				out, err := params.Template(defs, format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			printDefinitions(cmd.OutOrStdout(), defs, advanced)
			return nil
		},
	}

	paramsCmd.Flags().BoolVar(&initFile, "init", false, "Print a parameter file with all defaults")
	paramsCmd.Flags().StringVar(&format, "format", "toml", "Format of the parameter file (toml, yaml)")
	paramsCmd.Flags().BoolVar(&advanced, "advanced", false, "Also list advanced parameters")
	paramsCmd.Flags().StringVar(&remote, "remote", "", "Ask the nfs-profile server at this URL")
	paramsCmd.DisableAutoGenTag = true

	return paramsCmd
}

func definitions(ctx context.Context, remote, name string) ([]params.Definition, error) {
	if remote == "" {
		p, err := profile.Lookup(name)
		if err != nil {
			return nil, err
		}
		return p.Parameters(), nil
	}

	cli, err := newClient(remote)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return cli.Profiles.Parameters(ctx, name)
}

func printDefinitions(w io.Writer, defs []params.Definition, advanced bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Parameter", "Type", "Default", "Description"})
	table.SetHeaderColor(tableColorHeader, tableColorHeader, tableColorHeader, tableColorHeader)
	table.SetAutoWrapText(false)

	for _, d := range defs {
		if d.Advanced && !advanced {
			continue
		}

		description := d.Description
		if len(d.Choices) > 0 {
			var labels []string
			for _, c := range d.Choices {
				labels = append(labels, c.Label)
			}
			description += " (" + strings.Join(labels, ", ") + ")"
		}

		table.Append([]string{d.Name, string(d.Type), fmt.Sprintf("%v", d.Default), description})
	}

	table.Render()
}
