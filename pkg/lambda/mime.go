package lambda

import (
	"mime"
	"strings"
)

// textMediaTypes holds the non text/* media types whose bodies are emitted as
// text. Parameters such as charset are ignored when matching. Read-only after
// package initialisation.
var textMediaTypes = map[string]struct{}{
	"application/javascript": {},
	"application/json":       {},
}

// isTextContentType reports whether a Content-Type header value declares a
// body that must be emitted as UTF-8 text. Unparsable values are not text.
func isTextContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	if strings.HasPrefix(mediaType, "text/") {
		return true
	}

	_, ok := textMediaTypes[mediaType]
	return ok
}
