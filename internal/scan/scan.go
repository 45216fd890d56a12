package scan

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"reqschema/internal/endpoint"
	"reqschema/internal/schema"
	"reqschema/internal/source"
)

// Mode selects the descriptor fields a keyword is matched against.
type Mode int

const (
	// ModeAll matches the name, method name, URL and description.
	ModeAll Mode = iota
	// ModeURL matches the URL only.
	ModeURL
	// ModeMethod matches the method name only.
	ModeMethod
)

var modeNames = [...]string{
	ModeAll:    "all",
	ModeURL:    "url",
	ModeMethod: "method",
}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return modeNames[ModeAll]
	}

	return modeNames[m]
}

// ParseMode parses a mode name. An empty string is ModeAll.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeAll, nil
	}

	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}

	return ModeAll, fmt.Errorf("unknown search mode %q", s)
}

// Options configures a Scan.
type Options struct {
	// Keyword filters descriptors, case-insensitively. Empty keeps all.
	Keyword string
	Mode    Mode
	// Offset skips that many matches.
	Offset int
	// Limit caps the number of results. Zero means no limit.
	Limit int
	// Workers bounds concurrent extractions. Zero means GOMAXPROCS.
	Workers int
	Schema  schema.Options
	Logger  *slog.Logger
}

// Target is one routed method and its declaring class.
type Target struct {
	Class  *source.Class
	Method *source.Method
}

// Targets returns the routed methods of every controller class, in
// declaration order. A method is listed once even if its class was
// registered twice.
func Targets(model source.Model) []Target {
	var out []Target

	seen := make(map[string]bool)

	for _, c := range model.Classes() {
		if !isController(c) {
			continue
		}

		for i := range c.Methods {
			m := &c.Methods[i]
			if !endpoint.IsRouted(m) {
				continue
			}

			key := c.QualifiedName() + "#" + m.Name + "(" + strings.Join(m.ParamTypes(), ",") + ")"
			if seen[key] {
				continue
			}
			seen[key] = true

			out = append(out, Target{Class: c, Method: m})
		}
	}

	return out
}

func isController(c *source.Class) bool {
	for _, a := range c.Annotations {
		if a.Kind.IsController() {
			return true
		}
	}

	return false
}

// Scan extracts, filters and pages the endpoints of model.
func Scan(ctx context.Context, model source.Model, opts Options) ([]endpoint.Descriptor, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	targets := Targets(model)
	logger.Debug("endpoints found", slog.Int("methods", len(targets)))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ex := endpoint.NewExtractor(model, opts.Schema)
	results := make([]endpoint.Descriptor, len(targets))
	matched := make([]bool, len(targets))
	keyword := strings.ToLower(strings.TrimSpace(opts.Keyword))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			d := ex.Extract(t.Class, t.Method)
			results[i] = d
			matched[i] = Match(&d, keyword, opts.Mode)

			logger.Debug("endpoint extracted",
				slog.String("endpoint", d.Key()),
				slog.String("verb", d.Verb.String()),
				slog.String("url", d.URL))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning endpoints: %w", err)
	}

	out := make([]endpoint.Descriptor, 0, len(results))
	for i := range results {
		if matched[i] {
			out = append(out, results[i])
		}
	}

	return page(out, opts.Offset, opts.Limit), nil
}

// Match reports whether d contains keyword in the fields selected by mode.
// keyword must already be lower-cased; an empty keyword always matches.
func Match(d *endpoint.Descriptor, keyword string, mode Mode) bool {
	if keyword == "" {
		return true
	}

	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), keyword)
	}

	switch mode {
	case ModeURL:
		return contains(d.URL)
	case ModeMethod:
		return contains(d.MethodName)
	default:
		return contains(d.Name) || contains(d.MethodName) || contains(d.URL) || contains(d.Description)
	}
}

func page(items []endpoint.Descriptor, offset, limit int) []endpoint.Descriptor {
	if offset < 0 {
		offset = 0
	}

	if offset >= len(items) {
		return []endpoint.Descriptor{}
	}

	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}
