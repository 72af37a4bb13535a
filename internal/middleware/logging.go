package middleware

import (
	"time"

	"lambda-http-bridge/pkg/lambda"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// InvocationIDKey is the key used to store the Lambda invocation ID in context
const InvocationIDKey = "invocation_id"

// RequestID middleware adds a request ID to each request. The platform's
// request ID is used when the request came through the adapter.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if rc, ok := lambda.RequestContextFromContext(c.Request.Context()); ok && rc.RequestID() != "" {
			requestID = rc.RequestID()
		}
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		if invocationID := lambda.InvocationID(c.Request.Context()); invocationID != "" {
			c.Set(InvocationIDKey, invocationID)
		}

		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging with request context
func StructuredLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"request_id":     c.GetString(RequestIDKey),
			"method":         c.Request.Method,
			"path":           path,
			"status_code":    c.Writer.Status(),
			"latency_ms":     float64(latency.Nanoseconds()) / 1000000,
			"client_ip":      c.ClientIP(),
			"content_length": c.Request.ContentLength,
			"response_size":  c.Writer.Size(),
		}

		if raw != "" {
			fields["query"] = raw
		}

		if invocationID := c.GetString(InvocationIDKey); invocationID != "" {
			fields["invocation_id"] = invocationID
		}

		if rc, ok := lambda.RequestContextFromContext(c.Request.Context()); ok {
			fields["event_schema"] = string(rc.Schema)
		}

		// Log based on status code
		switch {
		case c.Writer.Status() >= 500:
			logrus.WithFields(fields).Error("Server error")
		case c.Writer.Status() >= 400:
			logrus.WithFields(fields).Warn("Client error")
		case c.Writer.Status() >= 300:
			logrus.WithFields(fields).Info("Redirect")
		default:
			logrus.WithFields(fields).Info("Request completed")
		}
	}
}
