package lambda

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// EventSchema selects the platform event format the adapter speaks
type EventSchema string

const (
	SchemaAPIGatewayV1 EventSchema = "apigw-v1"
	SchemaAPIGatewayV2 EventSchema = "apigw-v2"
	SchemaALB          EventSchema = "alb"
	SchemaFunctionURL  EventSchema = "function-url"
)

// Schemas lists every supported event schema
var Schemas = []EventSchema{SchemaAPIGatewayV1, SchemaAPIGatewayV2, SchemaALB, SchemaFunctionURL}

// ParseEventSchema validates a schema name
func ParseEventSchema(name string) (EventSchema, error) {
	for _, schema := range Schemas {
		if string(schema) == name {
			return schema, nil
		}
	}
	return "", fmt.Errorf("unknown event schema %q", name)
}

// Handler returns the typed handler for schema, suitable for lambda.Start
func (a *Adapter) Handler(schema EventSchema) (interface{}, error) {
	switch schema {
	case SchemaAPIGatewayV1:
		return a.ProxyV1, nil
	case SchemaAPIGatewayV2:
		return a.ProxyV2, nil
	case SchemaALB:
		return a.ProxyALB, nil
	case SchemaFunctionURL:
		return a.ProxyFunctionURL, nil
	default:
		return nil, fmt.Errorf("unknown event schema %q", schema)
	}
}

// InvokeJSON decodes a raw event of the given schema, runs it through the
// adapter and returns the encoded platform response.
func (a *Adapter) InvokeJSON(ctx context.Context, schema EventSchema, payload []byte) ([]byte, error) {
	var (
		resp interface{}
		err  error
	)

	switch schema {
	case SchemaAPIGatewayV1:
		var event events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, newError("decode event", ErrTranslation, err)
		}
		resp, err = a.ProxyV1(ctx, event)
	case SchemaAPIGatewayV2:
		var event events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, newError("decode event", ErrTranslation, err)
		}
		resp, err = a.ProxyV2(ctx, event)
	case SchemaALB:
		var event events.ALBTargetGroupRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, newError("decode event", ErrTranslation, err)
		}
		resp, err = a.ProxyALB(ctx, event)
	case SchemaFunctionURL:
		var event events.LambdaFunctionURLRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, newError("decode event", ErrTranslation, err)
		}
		resp, err = a.ProxyFunctionURL(ctx, event)
	default:
		return nil, fmt.Errorf("unknown event schema %q", schema)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(resp)
}
