package lambda

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// ProxyV1 handles API Gateway REST API (payload format 1.0) events
func (a *Adapter) ProxyV1(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decodeBody(event.Body, event.IsBase64Encoded)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	req := &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     mergeHeaders(event.Headers, event.MultiValueHeaders),
		QueryParams: mergeQuery(event.QueryStringParameters, event.MultiValueQueryStringParameters),
		Body:        body,
		RemoteAddr:  event.RequestContext.Identity.SourceIP,
	}

	ctx = WithRequestContext(ctx, RequestContext{Schema: SchemaAPIGatewayV1, APIGatewayV1: &event.RequestContext})
	resp, err := a.Invoke(ctx, req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	out, isBase64 := encodeBody(resp.Body)
	return events.APIGatewayProxyResponse{
		StatusCode:        resp.StatusCode,
		MultiValueHeaders: resp.Headers,
		Body:              out,
		IsBase64Encoded:   isBase64,
	}, nil
}

// ProxyV2 handles API Gateway HTTP API (payload format 2.0) events
func (a *Adapter) ProxyV2(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	req, err := requestFromHTTPDescription(
		event.RequestContext.HTTP.Method,
		event.RawPath,
		event.RawQueryString,
		event.QueryStringParameters,
		event.Headers,
		event.Cookies,
		event.Body,
		event.IsBase64Encoded,
	)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	req.RemoteAddr = event.RequestContext.HTTP.SourceIP

	ctx = WithRequestContext(ctx, RequestContext{Schema: SchemaAPIGatewayV2, APIGatewayV2: &event.RequestContext})
	resp, err := a.Invoke(ctx, req)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}

	out, isBase64 := encodeBody(resp.Body)
	headers, cookies := splitCookies(resp.Headers)
	return events.APIGatewayV2HTTPResponse{
		StatusCode:      resp.StatusCode,
		Headers:         headers,
		Body:            out,
		IsBase64Encoded: isBase64,
		Cookies:         cookies,
	}, nil
}

// ProxyALB handles Application Load Balancer target group events. The
// response uses multi-value headers when the request did.
func (a *Adapter) ProxyALB(ctx context.Context, event events.ALBTargetGroupRequest) (events.ALBTargetGroupResponse, error) {
	body, err := decodeBody(event.Body, event.IsBase64Encoded)
	if err != nil {
		return events.ALBTargetGroupResponse{}, err
	}

	query, err := unescapeQuery(mergeQuery(event.QueryStringParameters, event.MultiValueQueryStringParameters))
	if err != nil {
		return events.ALBTargetGroupResponse{}, err
	}

	req := &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     mergeHeaders(event.Headers, event.MultiValueHeaders),
		QueryParams: query,
		Body:        body,
	}

	ctx = WithRequestContext(ctx, RequestContext{Schema: SchemaALB, ALB: &event.RequestContext})
	resp, err := a.Invoke(ctx, req)
	if err != nil {
		return events.ALBTargetGroupResponse{}, err
	}

	out, isBase64 := encodeBody(resp.Body)
	albResp := events.ALBTargetGroupResponse{
		StatusCode:        resp.StatusCode,
		StatusDescription: fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		Body:              out,
		IsBase64Encoded:   isBase64,
	}
	if len(event.MultiValueHeaders) > 0 {
		albResp.MultiValueHeaders = resp.Headers
	} else {
		albResp.Headers = flattenHeaders(resp.Headers)
	}
	return albResp, nil
}

// ProxyFunctionURL handles Lambda function URL events
func (a *Adapter) ProxyFunctionURL(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	req, err := requestFromHTTPDescription(
		event.RequestContext.HTTP.Method,
		event.RawPath,
		event.RawQueryString,
		event.QueryStringParameters,
		event.Headers,
		event.Cookies,
		event.Body,
		event.IsBase64Encoded,
	)
	if err != nil {
		return events.LambdaFunctionURLResponse{}, err
	}
	req.RemoteAddr = event.RequestContext.HTTP.SourceIP

	ctx = WithRequestContext(ctx, RequestContext{Schema: SchemaFunctionURL, FunctionURL: &event.RequestContext})
	resp, err := a.Invoke(ctx, req)
	if err != nil {
		return events.LambdaFunctionURLResponse{}, err
	}

	out, isBase64 := encodeBody(resp.Body)
	headers, cookies := splitCookies(resp.Headers)
	return events.LambdaFunctionURLResponse{
		StatusCode:      resp.StatusCode,
		Headers:         headers,
		Body:            out,
		IsBase64Encoded: isBase64,
		Cookies:         cookies,
	}, nil
}

// requestFromHTTPDescription builds a Request from the payload 2.0 shape shared
// by HTTP APIs and function URLs.
func requestFromHTTPDescription(method, rawPath, rawQuery string, query, headers map[string]string, cookies []string, body string, isBase64 bool) (*Request, error) {
	decoded, err := decodeBody(body, isBase64)
	if err != nil {
		return nil, err
	}

	params, err := parseRawQuery(rawQuery, query)
	if err != nil {
		return nil, err
	}

	h := mergeHeaders(headers, nil)
	if len(cookies) > 0 {
		h.Set("Cookie", strings.Join(cookies, "; "))
	}

	return &Request{
		Method:      method,
		Path:        rawPath,
		Headers:     h,
		QueryParams: params,
		Body:        decoded,
	}, nil
}

func decodeBody(body string, isBase64 bool) (Body, error) {
	if body == "" {
		return EmptyBody(), nil
	}
	if !isBase64 {
		return TextBody(body), nil
	}

	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return Body{}, newError("decode body", ErrTranslation, err)
	}
	return BinaryBody(data), nil
}

func encodeBody(body Body) (string, bool) {
	switch body.Kind() {
	case BodyText:
		return body.Text(), false
	case BodyBinary:
		return base64.StdEncoding.EncodeToString(body.Bytes()), true
	default:
		return "", false
	}
}

// mergeHeaders prefers the multi-value map when the platform supplied one
func mergeHeaders(single map[string]string, multi map[string][]string) http.Header {
	h := make(http.Header)
	if len(multi) > 0 {
		for key, values := range multi {
			for _, value := range values {
				h.Add(key, value)
			}
		}
		return h
	}

	for key, value := range single {
		h.Add(key, value)
	}
	return h
}

func mergeQuery(single map[string]string, multi map[string][]string) url.Values {
	q := make(url.Values)
	if len(multi) > 0 {
		for key, values := range multi {
			q[key] = append([]string(nil), values...)
		}
		return q
	}

	for key, value := range single {
		q.Set(key, value)
	}
	return q
}

// unescapeQuery decodes query keys and values that the load balancer forwards
// still percent-encoded.
func unescapeQuery(q url.Values) (url.Values, error) {
	decoded := make(url.Values, len(q))
	for key, values := range q {
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, newError("unescape query", ErrTranslation, err)
		}
		for _, value := range values {
			v, err := url.QueryUnescape(value)
			if err != nil {
				return nil, newError("unescape query", ErrTranslation, err)
			}
			decoded[k] = append(decoded[k], v)
		}
	}
	return decoded, nil
}

// parseRawQuery prefers the raw query string, which keeps duplicate keys in
// their original order.
func parseRawQuery(rawQuery string, single map[string]string) (url.Values, error) {
	if rawQuery == "" {
		return mergeQuery(single, nil), nil
	}

	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, newError("parse query", ErrTranslation, err)
	}
	return q, nil
}

// flattenHeaders joins repeated header values with a comma
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for key, values := range h {
		result[key] = strings.Join(values, ",")
	}
	return result
}

// splitCookies moves Set-Cookie values out of the headers, since payload 2.0
// responses return them in a dedicated list.
func splitCookies(h http.Header) (map[string]string, []string) {
	cookies := h.Values("Set-Cookie")
	if len(cookies) == 0 {
		return flattenHeaders(h), nil
	}

	rest := h.Clone()
	rest.Del("Set-Cookie")
	return flattenHeaders(rest), cookies
}
