package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainCommand(t *testing.T) {
	// Run the CLI when re-executed as a subprocess; its arguments follow "--"
	if os.Getenv("BE_MAIN") == "1" {
		for i, arg := range os.Args {
			if arg == "--" {
				os.Args = append([]string{"tsdox"}, os.Args[i+1:]...)
				break
			}
		}
		main()
		return
	}

	dir := t.TempDir()
	handler := filepath.Join(dir, "handler.ts")
	require.NoError(t, os.WriteFile(handler, []byte("export const handler = (e: string): number => 1\n"), 0o644))

	tests := []struct {
		name       string
		args       []string
		wantExit   int
		wantStdout string
		wantStderr string
	}{
		{
			name:     "help command",
			args:     []string{"--help"},
			wantExit: 0,
		},
		{
			name:       "extract",
			args:       []string{handler, "handler", "--base-dir", dir},
			wantExit:   0,
			wantStdout: `"path": "handler.ts"`,
		},
		{
			name:     "invalid flag",
			args:     []string{"--invalid-flag"},
			wantExit: 1,
		},
		{
			name:       "missing arguments",
			args:       []string{handler},
			wantExit:   1,
			wantStderr: "accepts 2 arg(s)",
		},
		{
			name:       "identifier not found",
			args:       []string{handler, "missing"},
			wantExit:   1,
			wantStderr: "Could not find 'missing' in " + handler,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-test.run=^TestMainCommand$", "--"}, tt.args...)
			cmd := exec.Command(os.Args[0], args...)
			cmd.Env = append(os.Environ(), "BE_MAIN=1")
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			err := cmd.Run()

			if tt.wantExit == 0 {
				require.NoError(t, err, stderr.String())
			} else {
				var exitErr *exec.ExitError
				require.True(t, errors.As(err, &exitErr), "expected exit error, got %v", err)
				assert.Equal(t, tt.wantExit, exitErr.ExitCode())
			}
			assert.Contains(t, stdout.String(), tt.wantStdout)
			assert.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}
