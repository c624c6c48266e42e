package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gork-labs/tsdox/internal/resolver"
)

func defaultOptions() *Options {
	return &Options{
		Format:      defaultFormat,
		Output:      defaultOutput,
		BaseDir:     defaultBaseDir,
		LogLevel:    defaultLogLevel,
		MaxDepth:    resolver.DefaultMaxDepth,
		Concurrency: defaultConcurrency,
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tsdox.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFileNoPath(t *testing.T) {
	opts := defaultOptions()
	cfg, err := loadConfigFile(opts)
	require.NoError(t, err)
	assert.Empty(t, cfg.Handlers)
	assert.Equal(t, defaultOptions(), opts)
}

func TestLoadConfigFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
base_dir: src
format: yaml
output: docs.yaml
max_depth: 8
concurrency: 2
handlers:
  - file: handlers/users.ts
    export: handler
`)
	dir := filepath.Dir(path)

	opts := defaultOptions()
	opts.ConfigPath = path
	cfg, err := loadConfigFile(opts)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "src"), opts.BaseDir)
	assert.Equal(t, "yaml", opts.Format)
	assert.Equal(t, filepath.Join(dir, "docs.yaml"), opts.Output)
	assert.Equal(t, 8, opts.MaxDepth)
	assert.Equal(t, 2, opts.Concurrency)
	assert.Equal(t, []Handler{{File: filepath.Join(dir, "handlers", "users.ts"), Export: "handler"}}, cfg.Handlers)
}

func TestLoadConfigFileFlagsWin(t *testing.T) {
	path := writeConfig(t, "format: yaml\nmax_depth: 8\noutput: docs.yaml\n")

	opts := defaultOptions()
	opts.ConfigPath = path
	opts.MaxDepth = 16
	opts.Output = "out.json"
	opts.Format = "yml"
	_, err := loadConfigFile(opts)
	require.NoError(t, err)

	assert.Equal(t, "yml", opts.Format)
	assert.Equal(t, 16, opts.MaxDepth)
	assert.Equal(t, "out.json", opts.Output)
}

func TestLoadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			content: "invalid: yaml: content: [\n",
			wantErr: "parse config",
		},
		{
			name:    "unknown format",
			content: "format: xml\n",
			wantErr: "invalid config",
		},
		{
			name:    "negative depth",
			content: "max_depth: -1\n",
			wantErr: "invalid config",
		},
		{
			name:    "handler without export",
			content: "handlers:\n  - file: a.ts\n",
			wantErr: "invalid config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			opts.ConfigPath = writeConfig(t, tt.content)
			_, err := loadConfigFile(opts)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}

	t.Run("missing file", func(t *testing.T) {
		opts := defaultOptions()
		opts.ConfigPath = filepath.Join(t.TempDir(), "missing.yml")
		_, err := loadConfigFile(opts)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRelativeTo(t *testing.T) {
	assert.Equal(t, "-", relativeTo("conf", "-"))
	assert.Equal(t, filepath.Join("conf", "a.ts"), relativeTo("conf", "a.ts"))
	abs := filepath.Join(string(filepath.Separator), "abs", "a.ts")
	assert.Equal(t, abs, relativeTo("conf", abs))
}
