package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/viant/scomposer/config"
	"github.com/viant/scomposer/emitter"
)

type options struct {
	configFile string
	project    string
	output     string
	stdout     bool
	baseType   string
	watch      bool
	verbose    bool
}

// NewRootCmd creates the scomposer command
func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "scomposer <namespace>",
		Short: "scomposer - compose a single file script from a C# project",
		Long: `scomposer locates the first type declared in the given root namespace,
follows its using directives through every namespace declared in the project
and writes the entry's members together with all required declarations as one
flat script without using directives or namespace blocks.

The result is copied to the clipboard unless --stdout or --output is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			opts.apply(cfg)
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			runner, err := newRunner(cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !opts.watch {
				return runner.once(cmd.Context(), opts.project, args[0])
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runner.watch(ctx, opts.project, args[0])
		},
	}
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.project, "project", "p", "", "path to project file (default is the single .csproj in the current directory)")
	flags.StringVar(&opts.configFile, "config", "", "config file (default is ./scomposer.yaml)")
	flags.StringVarP(&opts.output, "output", "o", "", "write the result to a file instead of the clipboard")
	flags.BoolVar(&opts.stdout, "stdout", false, "write the result to stdout instead of the clipboard")
	flags.StringVar(&opts.baseType, "base-type", "", "base type the entry type must derive from")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "recompose whenever project sources change")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.MarkFlagsMutuallyExclusive("stdout", "output")
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// apply overrides config values with flags that were set
func (o *options) apply(cfg *config.Config) {
	if o.baseType != "" {
		cfg.BaseType = o.baseType
	}
	switch {
	case o.stdout:
		cfg.Output.Target = string(emitter.TargetStdout)
	case o.output != "":
		cfg.Output.Target = string(emitter.TargetFile)
		cfg.Output.Path = o.output
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
