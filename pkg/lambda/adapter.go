package lambda

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

var errNoResponse = errors.New("service returned no response")

// Adapter runs a wrapped Service for each serverless event
type Adapter struct {
	service Service
	logger  logrus.FieldLogger
}

// Option configures an Adapter
type Option func(*Adapter)

// WithLogger sets the logger used for invocation logs
func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// New creates an adapter around service
func New(service Service, opts ...Option) *Adapter {
	a := &Adapter{
		service: service,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewHandlerAdapter creates an adapter around an http.Handler
func NewHandlerAdapter(h http.Handler, opts ...Option) *Adapter {
	return New(HandlerService(h), opts...)
}

// Ready reports whether the adapter can accept an invocation. The wrapped
// service owns its own backpressure, so it is always ready.
func (a *Adapter) Ready(ctx context.Context) error {
	return nil
}

// Invoke translates the event into a canonical request, calls the wrapped
// service once and translates its response back. Either a complete response
// or an *Error is returned, never both.
func (a *Adapter) Invoke(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	fields := logrus.Fields{
		"request_id": InvocationID(ctx),
		"method":     req.Method,
		"path":       req.Path,
	}

	httpReq, err := NewHTTPRequest(ctx, req)
	if err != nil {
		a.logger.WithFields(fields).WithError(err).Error("Failed to translate event")
		return nil, err
	}

	httpResp := a.service.Serve(httpReq)
	if httpResp == nil {
		err := newError("call service", ErrTranslation, errNoResponse)
		a.logger.WithFields(fields).WithError(err).Error("Service returned no response")
		return nil, err
	}

	resp, err := NewResponse(httpResp)
	if err != nil {
		fields["status_code"] = httpResp.StatusCode
		a.logger.WithFields(fields).WithError(err).Error("Failed to translate response")
		return nil, err
	}

	fields["status_code"] = resp.StatusCode
	fields["body_kind"] = resp.Body.Kind().String()
	fields["response_size"] = resp.Body.Len()
	fields["latency_ms"] = float64(time.Since(start).Nanoseconds()) / 1000000
	a.logger.WithFields(fields).Debug("Invocation completed")

	return resp, nil
}
