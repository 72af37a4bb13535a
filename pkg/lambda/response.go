package lambda

import (
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

// NewResponse buffers the canonical response body and converts it into the
// response handed back to the serverless runtime, classifying the body as
// text or binary from its headers.
func NewResponse(resp *http.Response) (*Response, error) {
	data, err := readBody(resp.Body)
	if err != nil {
		return nil, err
	}

	body, err := classifyBody(resp.Header, data)
	if err != nil {
		return nil, err
	}

	headers := resp.Header
	if headers == nil {
		headers = make(http.Header)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       body,
	}, nil
}

func readBody(rc io.ReadCloser) ([]byte, error) {
	if rc == nil {
		return []byte{}, nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, newError("read body", ErrTransport, err)
	}
	return data, nil
}

// classifyBody decides how the buffered bytes are emitted:
//   - any Content-Encoding means a compressed payload, always binary
//   - a text Content-Type must hold valid UTF-8 and is emitted as text
//   - everything else is binary
func classifyBody(header http.Header, data []byte) (Body, error) {
	if len(header.Values("Content-Encoding")) > 0 {
		return BinaryBody(data), nil
	}

	if values := header.Values("Content-Type"); len(values) > 0 && isTextContentType(values[0]) {
		if !utf8.Valid(data) {
			return Body{}, newError("classify body", ErrTranslation,
				fmt.Errorf("content type %q declares text but the body is not valid UTF-8", values[0]))
		}
		return TextBody(string(data)), nil
	}

	return BinaryBody(data), nil
}
