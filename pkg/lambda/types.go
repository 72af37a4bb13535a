package lambda

import (
	"net/http"
	"net/url"
)

// BodyKind identifies which variant a Body holds
type BodyKind int

const (
	BodyEmpty BodyKind = iota
	BodyText
	BodyBinary
)

func (k BodyKind) String() string {
	switch k {
	case BodyText:
		return "text"
	case BodyBinary:
		return "binary"
	default:
		return "empty"
	}
}

// Body is the tri-state payload carried by serverless events: empty, UTF-8
// text or raw binary. The zero value is an empty body.
type Body struct {
	kind BodyKind
	text string
	data []byte
}

// EmptyBody returns a body with no payload
func EmptyBody() Body {
	return Body{}
}

// TextBody returns a body holding UTF-8 text
func TextBody(s string) Body {
	return Body{kind: BodyText, text: s}
}

// BinaryBody returns a body holding raw bytes. The slice is not copied.
func BinaryBody(b []byte) Body {
	return Body{kind: BodyBinary, data: b}
}

// Kind reports which variant the body holds
func (b Body) Kind() BodyKind {
	return b.kind
}

// Text returns the text payload, or "" for non-text bodies
func (b Body) Text() string {
	return b.text
}

// Bytes returns the payload as bytes regardless of variant
func (b Body) Bytes() []byte {
	switch b.kind {
	case BodyText:
		return []byte(b.text)
	case BodyBinary:
		return b.data
	default:
		return nil
	}
}

// Len returns the payload size in bytes
func (b Body) Len() int {
	switch b.kind {
	case BodyText:
		return len(b.text)
	case BodyBinary:
		return len(b.data)
	default:
		return 0
	}
}

// Request represents an inbound HTTP event for serverless functions
type Request struct {
	Method      string
	Path        string
	Headers     http.Header
	QueryParams url.Values
	Body        Body
	RemoteAddr  string // source IP reported by the platform, if any
}

// Response represents the HTTP response handed back to the serverless runtime
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       Body
}
