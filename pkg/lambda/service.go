package lambda

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// Service is the wrapped HTTP unit invoked once per event. It cannot fail:
// any error must be encoded in the returned response (e.g. a 500).
type Service interface {
	Serve(req *http.Request) *http.Response
}

// ServiceFunc adapts an ordinary function to the Service interface
type ServiceFunc func(req *http.Request) *http.Response

// Serve calls f(req)
func (f ServiceFunc) Serve(req *http.Request) *http.Response {
	return f(req)
}

// HandlerService exposes an http.Handler (a gin engine, a mux, ...) as a
// Service by capturing everything the handler writes.
func HandlerService(h http.Handler) Service {
	return handlerService{handler: h}
}

type handlerService struct {
	handler http.Handler
}

func (s handlerService) Serve(req *http.Request) *http.Response {
	w := newResponseWriter()
	s.handler.ServeHTTP(w, req)
	return w.response(req)
}

// responseWriter buffers a handler's output. Headers are snapshotted when the
// status is written, matching net/http server semantics.
type responseWriter struct {
	header   http.Header
	snapshot http.Header
	status   int
	body     bytes.Buffer
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: make(http.Header)}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.status != 0 {
		return
	}
	w.status = statusCode
	w.snapshot = w.header.Clone()
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(b)
}

// Flush is a no-op; the whole body is delivered at once.
func (w *responseWriter) Flush() {}

func (w *responseWriter) response(req *http.Request) *http.Response {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", w.status, http.StatusText(w.status)),
		StatusCode:    w.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        w.snapshot,
		Body:          io.NopCloser(&w.body),
		ContentLength: int64(w.body.Len()),
		Request:       req,
	}
}
