// Package cli provides the command-line interface for tsdox.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/gork-labs/tsdox/internal/generator"
	"github.com/gork-labs/tsdox/internal/resolver"
)

const (
	defaultFormat      = "json"
	defaultOutput      = "-"
	defaultBaseDir     = "."
	defaultLogLevel    = "warn"
	defaultConcurrency = 4
)

// Options holds the flags shared by every command.
type Options struct {
	Format      string `validate:"oneof=json yaml yml"`
	Output      string `validate:"required"`
	BaseDir     string `validate:"required"`
	ConfigPath  string
	LogLevel    string `validate:"oneof=debug info warn error"`
	MaxDepth    int    `validate:"gt=0"`
	Concurrency int    `validate:"gt=0"`
}

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the tsdox command tree.
func NewRootCommand() *cobra.Command {
	opts := &Options{Concurrency: defaultConcurrency}

	rootCmd := &cobra.Command{
		Use:   "tsdox <file> <identifier>",
		Short: "Document the input and return types of an exported TypeScript function",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runExtract(cmd, opts, args[0], args[1])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.Format, "format", defaultFormat, "Output format: json or yaml")
	flags.StringVar(&opts.Output, "output", defaultOutput, "Path to output file or '-' for stdout")
	flags.StringVar(&opts.BaseDir, "base-dir", defaultBaseDir, "Directory record paths are relative to")
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to tsdox.yml config file")
	flags.StringVar(&opts.LogLevel, "log-level", defaultLogLevel, "Log level: debug, info, warn or error")
	flags.IntVar(&opts.MaxDepth, "max-depth", resolver.DefaultMaxDepth, "Maximum number of nested named types")

	rootCmd.AddCommand(newBatchCommand(opts))
	rootCmd.AddCommand(newValidateCommand())

	return rootCmd
}

func runExtract(cmd *cobra.Command, opts *Options, file, identifier string) error {
	if _, err := loadConfigFile(opts); err != nil {
		return err
	}
	if err := validateOptions(opts); err != nil {
		return err
	}

	g := newGenerator(opts, cmd.ErrOrStderr())
	docs, err := g.Extract(cmd.Context(), file, identifier)
	if err != nil {
		return err
	}
	return writeOutput(cmd, docs, opts)
}

func newGenerator(opts *Options, logOut io.Writer) *generator.Generator {
	return generator.New(
		generator.WithLogger(newLogger(opts.LogLevel, logOut)),
		generator.WithBaseDir(opts.BaseDir),
		generator.WithMaxDepth(opts.MaxDepth),
	)
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func validateOptions(opts *Options) error {
	if err := validator.New().Struct(opts); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}
