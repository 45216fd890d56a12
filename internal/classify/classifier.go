package classify

import (
	"strings"

	"reqschema/internal/source"
)

var integerNames = map[string]bool{
	"int": true, "Integer": true, "long": true, "Long": true, "short": true, "Short": true,
	"BigInteger": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
}

var booleanNames = map[string]bool{
	"boolean": true, "Boolean": true, "bool": true,
}

var numberNames = map[string]bool{
	"double": true, "Double": true, "float": true, "Float": true, "BigDecimal": true,
	"float32": true, "float64": true,
}

var stringNames = map[string]bool{
	"String": true, "string": true, "char": true, "Character": true, "CharSequence": true,
	"rune": true, "UUID": true,
}

var temporalNames = map[string]bool{
	"Date": true, "LocalDateTime": true, "LocalDate": true, "LocalTime": true,
	"Timestamp": true, "Calendar": true, "Instant": true, "OffsetDateTime": true,
	"ZonedDateTime": true, "Time": true, "Duration": true,
}

var temporalPackages = []string{"java.util.", "java.time.", "java.sql.", "time."}

var collectionNames = map[string]bool{
	"List": true, "ArrayList": true, "LinkedList": true, "Collection": true,
	"Set": true, "HashSet": true, "LinkedHashSet": true, "TreeSet": true,
	"SortedSet": true, "Iterable": true, "Queue": true, "Deque": true,
}

var fileQualified = map[string]bool{
	"java.io.File":              true,
	"os.File":                   true,
	"mime/multipart.FileHeader": true,
	"mime/multipart.File":       true,
}

// Classifier maps declared types to a DataKind using an optional source model
// for enum and in-project class detection.
type Classifier struct {
	model source.Model
}

// New creates a Classifier. model may be nil.
func New(model source.Model) *Classifier {
	return &Classifier{model: model}
}

// Classify returns the DataKind of t. A nil type has no context and yields
// DataKindUnknown. Every other input maps to exactly one kind.
func (c *Classifier) Classify(t *source.TypeRef) DataKind {
	if t == nil || t.IsZero() {
		return DataKindUnknown
	}

	name := t.Name

	switch {
	case integerNames[name] && isBuiltin(t):
		return DataKindInteger
	case booleanNames[name] && isBuiltin(t):
		return DataKindBoolean
	case numberNames[name] && isBuiltin(t):
		return DataKindNumber
	case stringNames[name] && isBuiltin(t):
		return DataKindString
	case t.Kind == source.RefClass && isTemporal(t):
		return DataKindString
	}

	switch t.Kind {
	case source.RefArray:
		return DataKindArray
	case source.RefWildcard:
		return DataKindObject
	case source.RefTypeParam:
		return DataKindObject
	case source.RefPrimitive:
		return DataKindString
	}

	class, resolved := c.lookup(*t)
	if resolved && class.IsEnum() {
		return DataKindEnum
	}

	if IsCollection(*t) {
		return DataKindArray
	}

	if IsFile(*t) {
		return DataKindFile
	}

	if resolved {
		return DataKindObject
	}

	if isProjectQualified(t.Qualified) {
		return DataKindObject
	}

	return DataKindString
}

func (c *Classifier) lookup(t source.TypeRef) (*source.Class, bool) {
	if c.model == nil {
		return nil, false
	}

	return c.model.Lookup(t)
}

// IsCollection reports whether t names a recognized single-element collection.
func IsCollection(t source.TypeRef) bool {
	if t.Kind != source.RefClass || !collectionNames[t.Name] {
		return false
	}

	return t.Qualified == "" || strings.HasPrefix(t.Qualified, "java.util.") || t.Qualified == "java.lang.Iterable"
}

// IsFile reports whether t names a recognized file or upload type.
func IsFile(t source.TypeRef) bool {
	if t.Kind != source.RefClass {
		return false
	}

	if fileQualified[t.Qualified] || strings.HasSuffix(t.Qualified, ".MultipartFile") {
		return true
	}

	if t.Qualified == "" {
		return t.Name == "MultipartFile" || t.Name == "File" || t.Name == "FileHeader"
	}

	return false
}

// isBuiltin reports whether a family name refers to the language type rather
// than an unrelated project class that happens to share it.
func isBuiltin(t *source.TypeRef) bool {
	switch t.Kind {
	case source.RefPrimitive:
		return true
	case source.RefClass:
		if t.Qualified == "" {
			return true
		}

		return strings.HasPrefix(t.Qualified, "java.") || !strings.Contains(t.Qualified, ".")
	default:
		return false
	}
}

func isTemporal(t *source.TypeRef) bool {
	if !temporalNames[t.Name] {
		return false
	}

	if t.Qualified == "" {
		return t.Name != "Time" && t.Name != "Duration"
	}

	for _, prefix := range temporalPackages {
		if strings.HasPrefix(t.Qualified, prefix) {
			return true
		}
	}

	return false
}

// isProjectQualified reports whether qn is a dotted Java-style name outside
// the JDK. Go import paths are not judged here; the Go adapter registers every
// loaded type in the model instead.
func isProjectQualified(qn string) bool {
	if qn == "" || strings.Contains(qn, "/") || !strings.Contains(qn, ".") {
		return false
	}

	return !strings.HasPrefix(qn, "java.") && !strings.HasPrefix(qn, "javax.")
}
