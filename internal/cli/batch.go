package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gork-labs/tsdox/internal/generator"
)

// ErrNoHandlers is returned by batch when the config lists no handlers.
var ErrNoHandlers = errors.New("no handlers configured")

func newBatchCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Document every handler listed in a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runBatch(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", defaultConcurrency, "Number of handlers documented in parallel")

	return cmd
}

func runBatch(cmd *cobra.Command, opts *Options) error {
	if opts.ConfigPath == "" {
		return fmt.Errorf("batch requires --config")
	}
	cfg, err := loadConfigFile(opts)
	if err != nil {
		return err
	}
	if err := validateOptions(opts); err != nil {
		return err
	}
	if len(cfg.Handlers) == 0 {
		return ErrNoHandlers
	}

	g := newGenerator(opts, cmd.ErrOrStderr())
	results := make([][]*generator.FunctionDoc, len(cfg.Handlers))

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(opts.Concurrency)
	for i, h := range cfg.Handlers {
		i, h := i, h
		eg.Go(func() error {
			docs, err := g.Extract(ctx, h.File, h.Export)
			if err != nil {
				return fmt.Errorf("handler %s#%s: %w", h.File, h.Export, err)
			}
			results[i] = docs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var docs []*generator.FunctionDoc
	for _, r := range results {
		docs = append(docs, r...)
	}
	return writeOutput(cmd, docs, opts)
}
