package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gork-labs/tsdox/internal/generator"
)

func writeOutput(cmd *cobra.Command, docs []*generator.FunctionDoc, opts *Options) error {
	if opts.Output == "-" {
		return writeDocs(cmd.OutOrStdout(), opts.Format, docs)
	}

	outDir := filepath.Dir(opts.Output)
	if fi, err := os.Stat(outDir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory %s does not exist, please create it first", outDir)
		}
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("output path %s is not a directory", outDir)
	}

	f, err := os.Create(opts.Output) // #nosec G304
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := writeDocs(f, opts.Format, docs); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Generated %d records: %s\n", len(docs), opts.Output)
	return nil
}

func writeDocs(w io.Writer, format string, docs []*generator.FunctionDoc) error {
	if docs == nil {
		docs = []*generator.FunctionDoc{}
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(docs, "", "    ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case "yaml", "yml":
		data, err := yaml.Marshal(docs)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
