package cli

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"reqschema/internal/config"
	"reqschema/internal/diagnostic"
	"reqschema/internal/match"
	"reqschema/internal/source"
	"reqschema/internal/source/gosrc"
	"reqschema/internal/source/javasrc"
)

var defaultModelInclude = []string{"*.yaml", "*.yml"}

// loadModel builds the source model of dir with the configured adapter and
// logs the adapter's diagnostics.
func (a *app) loadModel(ctx context.Context, dir string) (source.Model, error) {
	var (
		model source.Model
		diags diagnostic.Diagnostics
	)

	switch a.cfg.Source.Kind {
	case config.SourceGo:
		res, err := gosrc.Load(ctx, []string{"./..."}, gosrc.Options{Dir: dir, Logger: a.logger})
		if err != nil {
			return nil, err
		}
		model, diags = res.Index, res.Diagnostics

	case config.SourceModel:
		ix, err := loadModelFiles(dir, a.cfg.Source.Include)
		if err != nil {
			return nil, err
		}
		model = ix

	default:
		res, err := javasrc.Load(ctx, dir, javasrc.Options{
			Include: a.cfg.Source.Include,
			Exclude: a.cfg.Source.Exclude,
			Workers: a.cfg.Scan.Workers,
			Logger:  a.logger,
		})
		if err != nil {
			return nil, err
		}
		model, diags = res.Index, res.Diagnostics
	}

	diags.Log(a.logger)

	return model, nil
}

// loadModelFiles loads every YAML model file under dir, or dir itself when
// it names a file.
func loadModelFiles(dir string, include []string) (*source.Index, error) {
	if len(include) == 0 {
		include = defaultModelInclude
	}

	var paths []string

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if p == dir || matchAny(include, d.Name()) {
			paths = append(paths, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk model directory %s: %w", dir, err)
	}

	return source.LoadIndex(paths...)
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}

	return false
}

// findClass resolves a qualified or simple class name.
func findClass(model source.Model, name string) (*source.Class, error) {
	if c, ok := model.Class(name); ok {
		return c, nil
	}

	for _, c := range model.Classes() {
		qn := c.QualifiedName()
		if c.Name == name || strings.HasSuffix(qn, "."+name) || strings.HasSuffix(qn, "/"+name) {
			return c, nil
		}
	}

	names := make([]string, 0, len(model.Classes()))
	for _, c := range model.Classes() {
		names = append(names, c.QualifiedName())
	}

	return nil, fmt.Errorf("%w: %s%s", ErrClassNotFound, name, didYouMean(name, names))
}

func findMethod(class *source.Class, name string) (*source.Method, error) {
	if m, ok := class.Method(name); ok {
		return m, nil
	}

	names := make([]string, 0, len(class.Methods))
	for i := range class.Methods {
		names = append(names, class.Methods[i].Name)
	}

	return nil, fmt.Errorf("%w: %s#%s%s", ErrMethodNotFound, class.QualifiedName(), name, didYouMean(name, names))
}

// didYouMean formats the closest known names as a hint, or returns "".
func didYouMean(name string, known []string) string {
	suggestions := match.Suggest(name, known, 3)
	if len(suggestions) == 0 {
		return ""
	}

	return " (did you mean " + strings.Join(suggestions, ", ") + "?)"
}

