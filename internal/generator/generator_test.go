package generator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gork-labs/tsdox/internal/resolver"
	"github.com/gork-labs/tsdox/internal/source"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func compact(t *testing.T, data []byte) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.Compact(&buf, data))
	return buf.String()
}

func render(t *testing.T, docs []*FunctionDoc) string {
	t.Helper()
	data, err := json.Marshal(docs)
	require.NoError(t, err)
	return string(data)
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestExtractFixtures(t *testing.T) {
	tests := []struct {
		fixture    string
		identifier string
	}{
		{"typeRef", "handler"},
		{"imports", "handler"},
		{"separateExport", "handler"},
		{"overrideGeneric", "handler"},
		{"multipleGenerics", "handler"},
		{"noGenerics", "handler"},
		{"utilities", "listUsers"},
	}

	testdata := filepath.Join("..", "..", "testdata")
	g := New(WithBaseDir(testdata), WithLogger(discard()))

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			docs, err := g.Extract(context.Background(), filepath.Join(testdata, "handlers", tt.fixture+".ts"), tt.identifier)
			require.NoError(t, err)
			require.Len(t, docs, 1)
			assert.Empty(t, docs[0].Diagnostics)

			golden, err := os.ReadFile(filepath.Join(testdata, "golden", tt.fixture+".json"))
			require.NoError(t, err)
			assert.Equal(t, compact(t, golden), render(t, docs))
		})
	}
}

func TestExtractScenario(t *testing.T) {
	dir := writeFiles(t, map[string]string{"handler.ts": `
/**
 * Account Users
 * Gets of all the users in the account
 */
export const handler = (event: {
    headers: { rando: string },
    pathParameters: { push: true | false }
}): {
    statusCode: number,
    body: { message?: string, data: { ss: number } }
} => ({ statusCode: 200, body: { data: { ss: 1 } } })
`})

	g := New(WithBaseDir(dir), WithLogger(discard()))
	docs, err := g.Extract(context.Background(), filepath.Join(dir, "handler.ts"), "handler")
	require.NoError(t, err)

	want := `[{"path":"handler.ts","summary":"Account Users","description":"Gets of all the users in the account",` +
		`"inputType":[{"type":"object","properties":{"headers":{"type":"object","properties":{"rando":{"type":"string"}}},` +
		`"pathParameters":{"type":"object","properties":{"push":{"type":"boolean","enum":[true,false]}}}}}],` +
		`"returns":{"type":"object","properties":{"statusCode":{"type":"number"},"body":{"type":"object","properties":` +
		`{"message":{"type":"string"},"data":{"type":"object","properties":{"ss":{"type":"number"}}}}}}}}]`
	assert.Equal(t, want, render(t, docs))

	again, err := g.Extract(context.Background(), filepath.Join(dir, "handler.ts"), "handler")
	require.NoError(t, err)
	assert.Equal(t, render(t, docs), render(t, again), "output is deterministic")
}

func TestExtractNoCrossCallLeakage(t *testing.T) {
	dir := writeFiles(t, map[string]string{"box.ts": `
type Box<T> = { value: T }

export function f(a: Box<number>): Box<string> { return { value: "" } }
export function g(b: Box<string>, c: Box<boolean>): void {}
`})
	gen := New(WithBaseDir(dir), WithLogger(discard()))

	fdocs, err := gen.Extract(context.Background(), filepath.Join(dir, "box.ts"), "f")
	require.NoError(t, err)
	gdocs, err := gen.Extract(context.Background(), filepath.Join(dir, "box.ts"), "g")
	require.NoError(t, err)

	assert.Equal(t,
		`[{"path":"box.ts","summary":"","inputType":[{"type":"object","properties":{"value":{"type":"number"}}}],`+
			`"returns":{"type":"object","properties":{"value":{"type":"string"}}}}]`,
		render(t, fdocs))
	assert.Equal(t,
		`[{"path":"box.ts","summary":"","inputType":[{"type":"object","properties":{"value":{"type":"string"}}},`+
			`{"type":"object","properties":{"value":{"type":"boolean"}}}]}]`,
		render(t, gdocs))
}

func TestExtractErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"handler.ts": `
export const untyped = (event) => event
export function noReturn(event: string) { return 1 }
const hidden = (event: string): string => event
`})
	g := New(WithBaseDir(dir), WithLogger(discard()))
	file := filepath.Join(dir, "handler.ts")

	t.Run("identifier not found", func(t *testing.T) {
		_, err := g.Extract(context.Background(), file, "hidden")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIdentifierNotFound))
		assert.Equal(t, "Could not find 'hidden' in "+file+". (Have you exported a 'hidden' function?)", err.Error())
	})

	t.Run("parameter without type", func(t *testing.T) {
		_, err := g.Extract(context.Background(), file, "untyped")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingTypeAnnotation))
		var missing *MissingTypeAnnotationError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "untyped", missing.Function)
		assert.Equal(t, "event", missing.Parameter)
	})

	t.Run("function without return type", func(t *testing.T) {
		_, err := g.Extract(context.Background(), file, "noReturn")
		var missing *MissingTypeAnnotationError
		require.True(t, errors.As(err, &missing))
		assert.Empty(t, missing.Parameter)
		assert.Equal(t, "function 'noReturn' has no return type annotation", err.Error())
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := g.Extract(context.Background(), filepath.Join(dir, "nope.ts"), "handler")
		assert.True(t, errors.Is(err, source.ErrFileNotFound))
	})
}

func TestExtractReportsDiagnostics(t *testing.T) {
	dir := writeFiles(t, map[string]string{"handler.ts": `
type Tree = { children: Tree[] }

export const handler = (event: { cb: () => void; tree: Tree }): Map<string, number> => new Map()
`})
	g := New(WithBaseDir(dir), WithLogger(discard()))
	docs, err := g.Extract(context.Background(), filepath.Join(dir, "handler.ts"), "handler")
	require.NoError(t, err)

	assert.Equal(t,
		`[{"path":"handler.ts","summary":"","inputType":[{"type":"object","properties":{"cb":{},`+
			`"tree":{"type":"object","properties":{"children":{"type":"array","items":`+
			`{"type":"object","properties":{"children":{"type":"array","items":{}}}}}}}}}],"returns":{}}]`,
		render(t, docs))

	var kinds []resolver.DiagnosticKind
	for _, d := range docs[0].Diagnostics {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []resolver.DiagnosticKind{
		resolver.UnhandledTypeConstruct,
		resolver.RecursiveType,
		resolver.UnhandledTypeConstruct,
	}, kinds)
}

func TestSplitDoc(t *testing.T) {
	tests := []struct {
		doc         string
		summary     string
		description string
	}{
		{"", "", ""},
		{"One line", "One line", ""},
		{"Summary\nDescription\nDropped", "Summary", "Description"},
		{"Summary\r\nDescription\r\n", "Summary", "Description"},
	}
	for _, tt := range tests {
		summary, description := splitDoc(tt.doc)
		assert.Equal(t, tt.summary, summary)
		assert.Equal(t, tt.description, description)
	}
}

func TestRelPath(t *testing.T) {
	g := New(WithBaseDir(filepath.Join("a", "b")))
	assert.Equal(t, "c/d.ts", g.relPath(filepath.Join("a", "b", "c", "d.ts")))
	assert.Equal(t, "../x.ts", g.relPath(filepath.Join("a", "x.ts")))
}
