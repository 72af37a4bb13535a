package lambda

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// LoopbackAuthority is the host given to every canonical request. Events carry
// no network-level host, so wrapped services must not route on it.
const LoopbackAuthority = "127.0.0.1"

// NewHTTPRequest converts an inbound event into the canonical HTTP request
// handed to the wrapped service. The body bytes are wrapped, never copied.
func NewHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	path := req.Path
	if path == "" {
		path = "/"
	}

	rawURL := "http://" + LoopbackAuthority + path
	if query := encodeQuery(req.QueryParams); query != "" {
		rawURL += "?" + query
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(req.Body.Bytes()))
	if err != nil {
		return nil, newError("build request", ErrTranslation, err)
	}

	if req.Headers != nil {
		httpReq.Header = req.Headers.Clone()
	}
	httpReq.Host = LoopbackAuthority
	httpReq.RequestURI = httpReq.URL.RequestURI()
	if req.RemoteAddr != "" {
		httpReq.RemoteAddr = remoteAddr(req.RemoteAddr)
	}

	return httpReq, nil
}

// remoteAddr gives a bare source IP the host:port form net/http uses. Events
// carry no client port, so 0 stands in.
func remoteAddr(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, "0")
}

// encodeQuery serialises the first value of every key, sorted by key, with
// spaces encoded as %20.
func encodeQuery(params url.Values) string {
	if len(params) == 0 {
		return ""
	}

	first := make(url.Values, len(params))
	for key, values := range params {
		if len(values) > 0 {
			first.Set(key, values[0])
		}
	}

	// url.Values.Encode escapes a literal '+' as %2B, so any '+' left is a space
	return strings.ReplaceAll(first.Encode(), "+", "%20")
}
