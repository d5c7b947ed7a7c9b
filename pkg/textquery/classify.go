package textquery

import (
	"mime"
	"strings"
)

// Category is a broad content-type classification.
type Category string

const (
	JSON   Category = "json"
	XML    Category = "xml"
	HTML   Category = "html"
	YAML   Category = "yaml"
	Form   Category = "form"
	Text   Category = "text"
	Binary Category = "binary"
)

// Mode constants for extraction languages.
const (
	ModeCSS   = "css"
	ModeXPath = "xpath"
	ModeRegex = "regex"
	ModeForm  = "form"
	ModeJQ    = "jq"
)

// Classify returns the category for a Content-Type value. Parameters such as
// charset are ignored. An empty value is Binary.
func Classify(contentType string) Category {
	if strings.TrimSpace(contentType) == "" {
		return Binary
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case strings.Contains(mediaType, "json"):
		return JSON
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return HTML
	case strings.Contains(mediaType, "xml"):
		return XML
	case strings.Contains(mediaType, "yaml"):
		return YAML
	case mediaType == "application/x-www-form-urlencoded":
		return Form
	case strings.HasPrefix(mediaType, "text/"), strings.Contains(mediaType, "javascript"):
		return Text
	default:
		return Binary
	}
}

// DetectMode returns the extraction mode for a Content-Type value.
func DetectMode(contentType string) string {
	switch Classify(contentType) {
	case JSON, YAML:
		return ModeJQ
	case HTML:
		return ModeCSS
	case XML:
		return ModeXPath
	case Form:
		return ModeForm
	default:
		return ModeRegex
	}
}
