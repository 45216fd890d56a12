package endpoint

import (
	"strings"
)

const (
	MediaTypeJSON       = "application/json"
	MediaTypeForm       = "application/x-www-form-urlencoded"
	MediaTypeMultipart  = "multipart/form-data"
	springMediaTypePkg  = "org.springframework.http."
	springMediaTypeName = "MediaType."
)

// mediaTypeConstants maps Spring MediaType constant names to their values.
var mediaTypeConstants = map[string]string{
	"MULTIPART_FORM_DATA_VALUE":         MediaTypeMultipart,
	"APPLICATION_FORM_URLENCODED_VALUE": MediaTypeForm,
	"APPLICATION_JSON_VALUE":            MediaTypeJSON,
	"APPLICATION_XML_VALUE":             "application/xml",
	"TEXT_PLAIN_VALUE":                  "text/plain",
	"TEXT_HTML_VALUE":                   "text/html",
	"TEXT_XML_VALUE":                    "text/xml",
	"APPLICATION_OCTET_STREAM_VALUE":    "application/octet-stream",
	"APPLICATION_PDF_VALUE":             "application/pdf",
	"IMAGE_PNG_VALUE":                   "image/png",
	"IMAGE_JPEG_VALUE":                  "image/jpeg",
	"IMAGE_GIF_VALUE":                   "image/gif",
}

// MediaTypeConstant resolves a Spring MediaType constant reference such as
// "MediaType.APPLICATION_JSON_VALUE".
func MediaTypeConstant(ref string) (string, bool) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), springMediaTypePkg)

	name, ok := strings.CutPrefix(ref, springMediaTypeName)
	if !ok {
		return "", false
	}

	v, ok := mediaTypeConstants[name]

	return v, ok
}

// IsFormContentType reports whether contentType carries form fields.
func IsFormContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, MediaTypeMultipart) || strings.Contains(ct, MediaTypeForm)
}
