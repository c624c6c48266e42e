// Package generator assembles FunctionDoc records from located functions.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gork-labs/tsdox/internal/resolver"
	"github.com/gork-labs/tsdox/internal/schema"
	"github.com/gork-labs/tsdox/internal/source"
)

// Generator builds FunctionDoc records
type Generator struct {
	logger   *slog.Logger
	baseDir  string
	maxDepth int
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger passed to the loader and the resolver.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithBaseDir sets the directory FunctionDoc.Path is relative to.
func WithBaseDir(dir string) Option {
	return func(g *Generator) {
		g.baseDir = dir
	}
}

// WithMaxDepth sets the resolver's nesting limit.
func WithMaxDepth(n int) Option {
	return func(g *Generator) {
		g.maxDepth = n
	}
}

// New creates a new generator
func New(opts ...Option) *Generator {
	g := &Generator{
		baseDir:  ".",
		maxDepth: resolver.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return g
}

// Extract loads file and documents the function it exports as identifier.
func (g *Generator) Extract(ctx context.Context, file, identifier string) ([]*FunctionDoc, error) {
	loader := source.NewLoader(source.WithLogger(g.logger))
	unit, err := loader.Load(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file, err)
	}

	fn, ok := source.Locate(unit, identifier)
	if !ok {
		return nil, &NotFoundError{File: file, Identifier: identifier}
	}

	doc, err := g.Build(fn, file)
	if err != nil {
		return nil, err
	}
	return []*FunctionDoc{doc}, nil
}

// Build documents fn. Every parameter and the return type are resolved
// independently, each starting from an empty environment.
func (g *Generator) Build(fn *source.Function, file string) (*FunctionDoc, error) {
	for _, p := range fn.Params {
		if p.Type == nil {
			return nil, &MissingTypeAnnotationError{Function: fn.Name, Parameter: p.Name}
		}
	}
	if fn.Returns == nil {
		return nil, &MissingTypeAnnotationError{Function: fn.Name}
	}

	r := resolver.New(resolver.WithLogger(g.logger), resolver.WithMaxDepth(g.maxDepth))
	doc := &FunctionDoc{
		Path:      g.relPath(file),
		InputType: make([]*schema.Schema, 0, len(fn.Params)),
	}

	for _, p := range fn.Params {
		s, diags := r.Resolve(p.Type)
		doc.InputType = append(doc.InputType, s)
		doc.Diagnostics = append(doc.Diagnostics, diags...)
	}

	returns, diags := r.Resolve(fn.Returns)
	doc.Returns = returns
	doc.Diagnostics = append(doc.Diagnostics, diags...)

	doc.Summary, doc.Description = splitDoc(source.ExtractDoc(fn))
	return doc, nil
}

// splitDoc returns the first line of a comment as the summary and the
// second as the description. Further lines are dropped.
func splitDoc(doc string) (string, string) {
	lines := strings.Split(doc, "\n")
	summary := strings.TrimSuffix(lines[0], "\r")
	if len(lines) < 2 {
		return summary, ""
	}
	return summary, strings.TrimSuffix(lines[1], "\r")
}

func (g *Generator) relPath(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	base, err := filepath.Abs(g.baseDir)
	if err != nil {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}
