package javasrc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"reqschema/internal/diagnostic"
	"reqschema/internal/source"
)

// DefaultExclude lists the directory names skipped by default.
var DefaultExclude = []string{".git", ".idea", ".gradle", "build", "target", "out", "node_modules"}

// Options configures a Load.
type Options struct {
	// Include lists base-name glob patterns of files to parse. Empty means "*.java".
	Include []string
	// Exclude lists directory names that are never entered. Nil means DefaultExclude.
	Exclude []string
	// Workers bounds the number of files parsed at once. Zero means GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Result is the outcome of loading a source tree.
type Result struct {
	Index       *source.Index
	Files       []*File
	Diagnostics diagnostic.Diagnostics
}

// Load parses every matching Java file under root, which may also name a
// single file, and links the classes into an Index. Unreadable or broken
// files become diagnostics; only a missing root or a canceled context fails.
func Load(ctx context.Context, root string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	paths, err := collect(root, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("java sources found", slog.String("root", root), slog.Int("files", len(paths)))

	files := make([]*File, len(paths))
	diags := make([]diagnostic.Diagnostics, len(paths))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			files[i], diags[i] = parsePath(gctx, p, logger)

			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading java sources under %s: %w", root, err)
	}

	res := &Result{Index: source.NewIndex()}
	seen := make(map[string]string)

	for i, f := range files {
		res.Diagnostics.Merge(diags[i])
		if f == nil {
			continue
		}

		res.Files = append(res.Files, f)

		for _, c := range f.Classes {
			qn := c.QualifiedName()
			if prev, dup := seen[qn]; dup {
				res.Diagnostics.AddWarning(diagnostic.CodeDuplicateClass,
					fmt.Sprintf("class %s already declared in %s", qn, prev), f.Path, qn)
			}
			seen[qn] = f.Path

			res.Index.Add(c)
		}
	}

	res.Index.Link()

	logger.Debug("java model loaded",
		slog.Int("files", len(res.Files)),
		slog.Int("classes", res.Index.Len()),
		slog.Int("warnings", len(res.Diagnostics.Warnings)))

	return res, nil
}

func parsePath(ctx context.Context, p string, logger *slog.Logger) (*File, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	src, err := os.ReadFile(p)
	if err != nil {
		logger.Warn("cannot read java file", slog.String("file", p), slog.Any("error", err))
		diags.AddWarning(diagnostic.CodeReadFailed, err.Error(), p, "")

		return nil, diags
	}

	f, err := ParseFile(ctx, src, p)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("cannot parse java file", slog.String("file", p), slog.Any("error", err))
			diags.AddWarning(diagnostic.CodeParseFailed, err.Error(), p, "")
		}

		return nil, diags
	}

	if f.HasErrors {
		logger.Warn("java file has syntax errors", slog.String("file", p))
		diags.AddWarning(diagnostic.CodeSyntaxError, "syntax errors, declarations recovered best effort", p, "")
	}

	logger.Debug("java file parsed", slog.String("file", p), slog.Int("classes", len(f.Classes)))

	return f, diags
}

// collect returns the matching files under root in lexical order.
func collect(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open source root %s: %w", root, err)
	}

	include := opts.Include
	if len(include) == 0 {
		include = []string{"*.java"}
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}

	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}

	var out []string

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return fs.SkipDir
			}
			return err
		}

		if d.IsDir() {
			if p != root && skip[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		if matchAny(include, d.Name()) {
			out = append(out, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk source root %s: %w", root, err)
	}

	return out, nil
}

func matchAny(patterns []string, name string) bool {
	for _, pat := range patterns {
		if ok, err := path.Match(pat, name); err == nil && ok {
			return true
		}
	}

	return false
}
