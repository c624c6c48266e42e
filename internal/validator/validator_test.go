package validator

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "valid json",
			doc: `[{"path":"handler.ts","summary":"Users","description":"Lists users",
				"inputType":[{"type":"object","properties":{"id":{"type":"string","enum":["a","b"]}}},null],
				"returns":{"oneOf":[{"type":"array","items":{"type":"number"}},{"type":"null"},{}]}}]`,
		},
		{
			name: "valid yaml",
			doc: `
- path: handler.ts
  summary: ""
  inputType:
    - type: object
      properties:
        flag:
          type: boolean
          enum: [true, false]
`,
		},
		{
			name:    "not a list",
			doc:     `{"path":"handler.ts"}`,
			wantErr: "document must be a list of function records",
		},
		{
			name:    "missing path",
			doc:     `[{"summary":"","inputType":[]}]`,
			wantErr: "record 0: missing or invalid 'path' field",
		},
		{
			name:    "unknown record field",
			doc:     `[{"path":"a.ts","summary":"","inputType":[],"$oneOf":[]}]`,
			wantErr: "record 0: unknown field '$oneOf'",
		},
		{
			name:    "object without properties",
			doc:     `[{"path":"a.ts","summary":"","inputType":[{"type":"object"}]}]`,
			wantErr: "record 0: inputType[0]: missing or invalid 'properties' field",
		},
		{
			name:    "empty enum",
			doc:     `[{"path":"a.ts","summary":"","inputType":[],"returns":{"type":"string","enum":[]}}]`,
			wantErr: "record 0: returns: 'enum' must be a non-empty list",
		},
		{
			name:    "empty oneOf",
			doc:     `[{"path":"a.ts","summary":"","inputType":[],"returns":{"oneOf":[]}}]`,
			wantErr: "record 0: returns: 'oneOf' must be a non-empty list",
		},
		{
			name:    "nested error path",
			doc:     `[{"path":"a.ts","summary":"","inputType":[{"type":"object","properties":{"a":{"type":"date"}}}]}]`,
			wantErr: "record 0: inputType[0].properties.a: unknown type 'date'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Validate([]byte(tt.doc), &out)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), "✓ Found 1 function records")
			assert.Contains(t, out.String(), "✓ handler.ts")
		})
	}
}

func TestValidateGoldenDocuments(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "testdata", "golden", "*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			var out bytes.Buffer
			assert.NoError(t, ValidateFile(file, &out))
		})
	}
}

func TestValidateFileMissing(t *testing.T) {
	err := ValidateFile(filepath.Join(t.TempDir(), "missing.json"), &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
