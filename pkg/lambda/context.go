package lambda

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// RequestContext carries the platform request context of the event that
// produced a canonical request. Exactly one pointer matching Schema is set.
type RequestContext struct {
	Schema       EventSchema
	APIGatewayV1 *events.APIGatewayProxyRequestContext
	APIGatewayV2 *events.APIGatewayV2HTTPRequestContext
	ALB          *events.ALBTargetGroupRequestContext
	FunctionURL  *events.LambdaFunctionURLRequestContext
}

// RequestID returns the platform's request identifier, if the schema has one
func (rc RequestContext) RequestID() string {
	switch {
	case rc.APIGatewayV1 != nil:
		return rc.APIGatewayV1.RequestID
	case rc.APIGatewayV2 != nil:
		return rc.APIGatewayV2.RequestID
	case rc.FunctionURL != nil:
		return rc.FunctionURL.RequestID
	default:
		return ""
	}
}

type requestContextKey struct{}

// WithRequestContext returns a copy of ctx carrying rc
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextFromContext returns the platform request context stored in
// ctx. Wrapped services call it with their request's context.
func RequestContextFromContext(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(RequestContext)
	return rc, ok
}

// InvocationID returns the runtime's request ID for the current invocation,
// or "" when ctx was not created by the Lambda runtime.
func InvocationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}
