package main

import (
	"log/slog"
	"os"

	"cutfield/internal/config"

	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	verbose    bool
	log        *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("cutfield failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "cutfield",
		Short:         "Lay out fields of cut blocks and export build instructions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(opts.log)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "design file (default $"+config.EnvConfigPath+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newGenerateCmd(opts), newBlockCmd(opts), newConfigCmd(opts))
	return root
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective design as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if _, err := d.Layout(); err != nil {
				return err
			}
			data, err := d.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
