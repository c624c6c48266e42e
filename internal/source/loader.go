package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// DefaultMaxFileSize is the largest file a Loader accepts by default.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Loader parses files and the files they import. Every file is loaded at
// most once per Loader and is read-only afterwards. A Loader is not safe
// for concurrent use.
type Loader struct {
	logger      *slog.Logger
	maxFileSize int64
	units       map[string]*Unit
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithMaxFileSize sets the maximum file size in bytes. Values below one
// are ignored.
func WithMaxFileSize(bytes int64) Option {
	return func(l *Loader) {
		if bytes > 0 {
			l.maxFileSize = bytes
		}
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		maxFileSize: DefaultMaxFileSize,
		units:       make(map[string]*Unit),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return l
}

// Load parses path and every file it imports through a relative path.
func (l *Loader) Load(ctx context.Context, path string) (*Unit, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return l.load(ctx, abs)
}

func (l *Loader) load(ctx context.Context, path string) (*Unit, error) {
	if u, ok := l.units[path]; ok {
		return u, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if int64(len(content)) > l.maxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, path, len(content), l.maxFileSize)
	}

	root, err := parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	u := newUnit(path, content, root)
	// Registered before linking so import cycles find the partly loaded
	// unit instead of loading it again.
	l.units[path] = u

	d := &declarer{loader: l, unit: u}
	d.declare()
	if err := d.link(ctx); err != nil {
		return nil, err
	}
	d.define()

	l.logger.Debug("loaded source file",
		slog.String("component", "source"),
		slog.String("path", path),
		slog.Int("symbols", len(u.scope)),
		slog.Int("functions", len(u.order)))
	return u, nil
}

func parse(ctx context.Context, path string, content []byte) (*sitter.Node, error) {
	parser := sitter.NewParser()
	if strings.HasSuffix(path, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		at := firstError(root).StartPoint()
		return nil, &ParseError{Path: path, Line: int(at.Row) + 1, Column: int(at.Column) + 1}
	}
	return root, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.HasError() {
			return firstError(c)
		}
	}
	return n
}

// resolveImport maps a relative module specifier to a file next to from.
func resolveImport(from, spec string) (string, bool) {
	base := filepath.Join(filepath.Dir(from), filepath.FromSlash(spec))

	var candidates []string
	if ext := filepath.Ext(base); ext == ".js" || ext == ".jsx" {
		trimmed := strings.TrimSuffix(base, ext)
		candidates = append(candidates, trimmed+".ts", trimmed+".tsx")
	}
	candidates = append(candidates,
		base,
		base+".ts",
		base+".tsx",
		base+".d.ts",
		filepath.Join(base, "index.ts"),
		filepath.Join(base, "index.tsx"),
	)

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

func isRelative(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}
