package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFiles []string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	serve := newServeCmd(&opts)

	cmd := &cobra.Command{
		Use:           "oam-web",
		Short:         "Web console for Online Asset Management",
		SilenceUsage:  true,
		SilenceErrors: true,
		// with no subcommand the console serves
		RunE: serve.RunE,
	}
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "env files to load before the environment (default .env, .env.local)")
	cmd.AddCommand(serve)
	cmd.AddCommand(newMigrateCmd(&opts))
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
