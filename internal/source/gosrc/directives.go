package gosrc

import (
	"strings"

	"reqschema/internal/source"
)

// Directive keys recognized in Go doc comments.
const (
	directiveController  = "controller"
	directiveRoute       = "route"
	directiveRouter      = "router"
	directiveAccept      = "accept"
	directiveSummary     = "summary"
	directiveDescription = "description"
	directiveParam       = "param"
)

var verbAnnotations = map[string]string{
	"get":    "GetMapping",
	"post":   "PostMapping",
	"put":    "PutMapping",
	"delete": "DeleteMapping",
	"patch":  "PatchMapping",
}

var paramAnnotations = map[string]string{
	"path":     "PathVariable",
	"query":    "RequestParam",
	"formdata": "RequestParam",
	"body":     "RequestBody",
}

var acceptAliases = map[string]string{
	"json":                  "application/json",
	"xml":                   "application/xml",
	"plain":                 "text/plain",
	"form":                  "application/x-www-form-urlencoded",
	"x-www-form-urlencoded": "application/x-www-form-urlencoded",
	"mpfd":                  "multipart/form-data",
	"multipart":             "multipart/form-data",
}

type directive struct {
	key  string
	args string
}

// parseDirectives returns the "@key args" lines of a doc comment in order.
// Keys are lower-cased.
func parseDirectives(doc string) []directive {
	var out []directive

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "//"))
		if !strings.HasPrefix(line, "@") {
			continue
		}

		key, args, _ := strings.Cut(line[1:], " ")
		if key == "" {
			continue
		}

		out = append(out, directive{key: strings.ToLower(key), args: strings.TrimSpace(args)})
	}

	return out
}

// typeAnnotations translates "@Controller" and "@Route /base" on a type.
func typeAnnotations(doc string) source.Annotations {
	var out source.Annotations

	for _, d := range parseDirectives(doc) {
		switch d.key {
		case directiveController:
			out = append(out, source.NewAnnotation("RestController", nil))
		case directiveRoute:
			if d.args != "" {
				out = append(out, source.NewAnnotation("RequestMapping", map[string]source.Value{
					"value": source.StringValue(firstField(d.args)),
				}))
			}
		}
	}

	return out
}

// methodAnnotations translates the routing and documentation directives of a
// method doc comment. Parameter markers are returned by parameter name.
func methodAnnotations(doc string) (source.Annotations, map[string]source.Annotations) {
	var (
		out                  source.Annotations
		params               map[string]source.Annotations
		route                *source.Annotation
		summary, description string
		accept               string
	)

	for _, d := range parseDirectives(doc) {
		switch d.key {
		case directiveRouter:
			a := routerAnnotation(d.args)
			route = &a

		case directiveAccept:
			accept = acceptType(firstField(d.args))

		case directiveSummary:
			summary = d.args

		case directiveDescription:
			description = d.args

		case directiveParam:
			name, marker, ok := paramAnnotation(d.args)
			if !ok {
				continue
			}

			if params == nil {
				params = make(map[string]source.Annotations)
			}
			params[name] = append(params[name], marker)
		}
	}

	if summary != "" || description != "" {
		attrs := make(map[string]source.Value)
		if summary != "" {
			attrs["value"] = source.StringValue(summary)
		}
		if description != "" {
			attrs["notes"] = source.StringValue(description)
		}
		out = append(out, source.NewAnnotation("ApiOperation", attrs))
	}

	if route != nil {
		if accept != "" {
			route.Attrs["consumes"] = source.StringValue(accept)
		}
		out = append(out, *route)
	}

	return out, params
}

// routerAnnotation reads "/path [verb]". A missing or unknown verb yields a
// RequestMapping, which the extractor reports as GET.
func routerAnnotation(args string) source.Annotation {
	path, rest, _ := strings.Cut(args, " ")
	verb := strings.ToLower(strings.Trim(strings.TrimSpace(rest), "[]"))

	attrs := map[string]source.Value{"value": source.StringValue(path)}

	if name, ok := verbAnnotations[verb]; ok {
		return source.NewAnnotation(name, attrs)
	}

	if verb != "" {
		attrs["method"] = source.ConstantValue("RequestMethod." + strings.ToUpper(verb))
	}

	return source.NewAnnotation("RequestMapping", attrs)
}

// paramAnnotation reads "name in [type] [required] [description]".
func paramAnnotation(args string) (string, source.Annotation, bool) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return "", source.Annotation{}, false
	}

	name, ok := paramAnnotations[strings.ToLower(fields[1])]
	if !ok {
		return "", source.Annotation{}, false
	}

	return fields[0], source.NewAnnotation(name, nil), true
}

func acceptType(s string) string {
	if v, ok := acceptAliases[strings.ToLower(s)]; ok {
		return v
	}

	return s
}

func firstField(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}

	return ""
}
