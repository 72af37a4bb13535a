// Package invoker runs raw event payloads through the adapter, either in
// process or against a deployed function.
package invoker

import (
	"context"
	"fmt"

	"lambda-http-bridge/pkg/lambda"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/google/uuid"
)

// Invoker sends a JSON event and returns the JSON response
type Invoker interface {
	Invoke(ctx context.Context, payload []byte) ([]byte, error)
}

// Local runs events through an in-process adapter
type Local struct {
	adapter      *lambda.Adapter
	schema       lambda.EventSchema
	functionName string
}

// NewLocal creates an in-process invoker
func NewLocal(adapter *lambda.Adapter, schema lambda.EventSchema, functionName string) *Local {
	return &Local{adapter: adapter, schema: schema, functionName: functionName}
}

// Invoke runs the payload with a fresh runtime context, as the Lambda runtime
// would for a real invocation.
func (l *Local) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	lc := &lambdacontext.LambdaContext{
		AwsRequestID:       uuid.New().String(),
		InvokedFunctionArn: "arn:aws:lambda:local:000000000000:function:" + l.functionName,
	}
	return l.adapter.InvokeJSON(lambdacontext.NewContext(ctx, lc), l.schema, payload)
}

// FunctionError is returned when a deployed function reports an error
type FunctionError struct {
	Type    string
	Payload []byte
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function error (%s): %s", e.Type, e.Payload)
}

// invokeAPI is the subset of the Lambda client used by Remote
type invokeAPI interface {
	Invoke(ctx context.Context, params *awslambda.InvokeInput, optFns ...func(*awslambda.Options)) (*awslambda.InvokeOutput, error)
}

// Remote invokes a deployed function through the Lambda API
type Remote struct {
	client       invokeAPI
	functionName string
	qualifier    string
}

// NewRemote creates a remote invoker from the default AWS credential chain
func NewRemote(ctx context.Context, region, functionName, qualifier string) (*Remote, error) {
	if functionName == "" {
		return nil, fmt.Errorf("invoker: function name is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("invoker: failed to load AWS config: %w", err)
	}

	return &Remote{
		client:       awslambda.NewFromConfig(awsCfg),
		functionName: functionName,
		qualifier:    qualifier,
	}, nil
}

// Invoke calls the function synchronously
func (r *Remote) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	input := &awslambda.InvokeInput{
		FunctionName: aws.String(r.functionName),
		Payload:      payload,
	}
	if r.qualifier != "" {
		input.Qualifier = aws.String(r.qualifier)
	}

	out, err := r.client.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("invoker: invoke %s: %w", r.functionName, err)
	}

	if out.FunctionError != nil {
		return nil, &FunctionError{Type: aws.ToString(out.FunctionError), Payload: out.Payload}
	}

	return out.Payload, nil
}
