package doc

import (
	"regexp"
	"strings"

	"reqschema/internal/source"
)

// Extractor reads descriptions from declarations. The model, when set, folds
// constant references used as annotation values.
type Extractor struct {
	model source.Model
}

// New creates an Extractor. model may be nil.
func New(model source.Model) *Extractor {
	return &Extractor{model: model}
}

// Operation is the documentation of a request-handling method.
type Operation struct {
	// Summary is the short operation name from ApiOperation.value or
	// Operation.summary.
	Summary string
	// Description is the long text from notes/description, else the cleaned
	// doc comment.
	Description string
	// Structured is true when an operation-doc annotation was present.
	Structured bool
}

// Method returns the documentation of m.
func (e *Extractor) Method(m *source.Method) Operation {
	var op Operation
	if m == nil {
		return op
	}

	if a, ok := m.Annotations.Find(source.AnnotationApiOperation); ok {
		op.Structured = true
		op.Summary = e.text(a, "value")
		op.Description = e.text(a, "notes")
	} else if a, ok := m.Annotations.Find(source.AnnotationOperation); ok {
		op.Structured = true
		op.Summary = e.text(a, "summary")
		op.Description = e.text(a, "description")
	}

	if op.Description == "" {
		op.Description = Clean(m.Doc)
	}

	return op
}

// Field returns the description of f.
func (e *Extractor) Field(f *source.Field) string {
	if f == nil {
		return ""
	}

	return e.member(f.Annotations, f.Doc)
}

// Class returns the description of c.
func (e *Extractor) Class(c *source.Class) string {
	if c == nil {
		return ""
	}

	return e.member(c.Annotations, c.Doc)
}

func (e *Extractor) member(annots source.Annotations, raw string) string {
	for _, a := range annots {
		var desc string

		switch a.Kind {
		case source.AnnotationApiModel, source.AnnotationApiModelProperty:
			desc = e.text(a, "value")
		case source.AnnotationSchema:
			desc = e.text(a, "description")
		default:
			continue
		}

		if desc != "" {
			return desc
		}
	}

	return Clean(raw)
}

func (e *Extractor) text(a source.Annotation, attr string) string {
	v, ok := a.Attr(attr)
	if !ok {
		return ""
	}

	var lookup func(string) (string, bool)
	if e.model != nil {
		lookup = e.model.Constant
	}

	s, _ := v.Fold(lookup)

	return strings.TrimSpace(s)
}

var datePattern = regexp.MustCompile(`\d{4}/\d{2}/\d{2}`)

const descriptionTag = "@description"

// Clean reduces a raw doc comment to its description text. It strips comment
// delimiters and leading markers and returns the remainder of a @description
// tag verbatim, wherever it appears among the tags. Without one, the text
// before the first tag line is kept: lines holding a yyyy/mm/dd date are
// skipped and the rest joined with single spaces.
func Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	lines := strings.Split(raw, "\n")
	for i := range lines {
		lines[i] = stripMarkers(lines[i])
	}

	for _, line := range lines {
		if len(line) >= len(descriptionTag) && strings.EqualFold(line[:len(descriptionTag)], descriptionTag) {
			return strings.TrimSpace(line[len(descriptionTag):])
		}
	}

	var parts []string

	for _, line := range lines {
		if strings.HasPrefix(line, "@") {
			break
		}

		if line == "" || datePattern.MatchString(line) {
			continue
		}

		parts = append(parts, line)
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

func stripMarkers(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/**")
	line = strings.TrimPrefix(line, "/*")
	line = strings.TrimPrefix(line, "//")
	line = strings.TrimSuffix(line, "*/")
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, "*") {
		line = strings.TrimSpace(strings.TrimLeft(line, "*"))
	}

	return line
}
