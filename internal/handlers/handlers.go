package handlers

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"lambda-http-bridge/internal/config"
	"lambda-http-bridge/internal/middleware"
	"lambda-http-bridge/pkg/lambda"

	"github.com/gin-gonic/gin"
)

// MaxBytesResponse caps the size served by the bytes endpoint
const MaxBytesResponse = 1 << 20

// EchoResponse describes the request as the wrapped service received it
type EchoResponse struct {
	Method   string              `json:"method"`
	Path     string              `json:"path"`
	Query    map[string][]string `json:"query"`
	Headers  map[string][]string `json:"headers"`
	Body     string              `json:"body"`
	IsBase64 bool                `json:"is_base64"`
}

// ContextResponse exposes the platform request context to callers
type ContextResponse struct {
	Schema       string      `json:"schema"`
	RequestID    string      `json:"request_id,omitempty"`
	InvocationID string      `json:"invocation_id,omitempty"`
	Context      interface{} `json:"context,omitempty"`
}

// SystemHandler serves health and readiness endpoints
type SystemHandler struct {
	config  *config.Config
	started time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{config: cfg, started: time.Now()}
}

// Health reports service health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"timestamp":       time.Now().UTC(),
		"uptime_seconds":  int64(time.Since(h.started).Seconds()),
		"deployment_mode": config.GetDeploymentMode(),
		"event_schema":    h.config.EventSchema,
	})
}

// EchoHandler serves the demo endpoints exercising the adapter's translation
type EchoHandler struct{}

// NewEchoHandler creates a new echo handler
func NewEchoHandler() *EchoHandler {
	return &EchoHandler{}
}

// Root greets every caller
func (h *EchoHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}

// Hello greets the caller by name
func (h *EchoHandler) Hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello %s!", c.Param("name"))
}

// Echo returns the received request as JSON. Bodies that are not valid UTF-8
// are base64 encoded.
func (h *EchoHandler) Echo(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := EchoResponse{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		Query:   c.Request.URL.Query(),
		Headers: c.Request.Header,
	}
	if utf8.Valid(body) {
		resp.Body = string(body)
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(body)
		resp.IsBase64 = true
	}

	c.JSON(http.StatusOK, resp)
}

// Context returns the platform request context of the current invocation
func (h *EchoHandler) Context(c *gin.Context) {
	rc, ok := lambda.RequestContextFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, ContextResponse{Schema: "none"})
		return
	}

	resp := ContextResponse{
		Schema:       string(rc.Schema),
		RequestID:    rc.RequestID(),
		InvocationID: c.GetString(middleware.InvocationIDKey),
	}
	switch {
	case rc.APIGatewayV1 != nil:
		resp.Context = rc.APIGatewayV1
	case rc.APIGatewayV2 != nil:
		resp.Context = rc.APIGatewayV2
	case rc.ALB != nil:
		resp.Context = rc.ALB
	case rc.FunctionURL != nil:
		resp.Context = rc.FunctionURL
	}

	c.JSON(http.StatusOK, resp)
}

// Bytes returns n bytes of binary data, cycling through every byte value
func (h *EchoHandler) Bytes(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 0 || n > MaxBytesResponse {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{
			Error:     "Invalid size",
			Message:   "size must be an integer between 0 and " + strconv.Itoa(MaxBytesResponse),
			RequestID: c.GetString(middleware.RequestIDKey),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}
