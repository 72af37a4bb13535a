package lambda

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"
)

func readAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return data
}

func TestNewHTTPRequestBody(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		req, err := NewHTTPRequest(ctx, &Request{Method: "GET", Path: "/"})
		if err != nil {
			t.Fatalf("NewHTTPRequest failed: %v", err)
		}
		if data := readAll(t, req.Body); len(data) != 0 {
			t.Errorf("Expected empty body, got %q", data)
		}
		if req.ContentLength != 0 {
			t.Errorf("Expected ContentLength=0, got %d", req.ContentLength)
		}
	})

	t.Run("Text", func(t *testing.T) {
		text := "héllo, wörld ✓"
		req, err := NewHTTPRequest(ctx, &Request{Method: "POST", Path: "/", Body: TextBody(text)})
		if err != nil {
			t.Fatalf("NewHTTPRequest failed: %v", err)
		}
		if data := readAll(t, req.Body); !bytes.Equal(data, []byte(text)) {
			t.Errorf("Expected %q, got %q", text, data)
		}
		if req.ContentLength != int64(len(text)) {
			t.Errorf("Expected ContentLength=%d, got %d", len(text), req.ContentLength)
		}
	})

	t.Run("Binary", func(t *testing.T) {
		raw := []byte{0x00, 0xff, 0xfe, 0x80, 0x01}
		req, err := NewHTTPRequest(ctx, &Request{Method: "PUT", Path: "/", Body: BinaryBody(raw)})
		if err != nil {
			t.Fatalf("NewHTTPRequest failed: %v", err)
		}
		if data := readAll(t, req.Body); !bytes.Equal(data, raw) {
			t.Errorf("Expected %v, got %v", raw, data)
		}
	})
}

func TestNewHTTPRequestURI(t *testing.T) {
	ctx := context.Background()

	t.Run("PathOnly", func(t *testing.T) {
		req, err := NewHTTPRequest(ctx, &Request{Method: "GET", Path: "/api/items"})
		if err != nil {
			t.Fatalf("NewHTTPRequest failed: %v", err)
		}
		if got := req.URL.String(); got != "http://127.0.0.1/api/items" {
			t.Errorf("Unexpected URL %q", got)
		}
		if req.Host != LoopbackAuthority {
			t.Errorf("Expected Host=%s, got %s", LoopbackAuthority, req.Host)
		}
		if req.RequestURI != "/api/items" {
			t.Errorf("Expected RequestURI=/api/items, got %s", req.RequestURI)
		}
	})

	t.Run("EmptyPathDefaultsToRoot", func(t *testing.T) {
		req, err := NewHTTPRequest(ctx, &Request{})
		if err != nil {
			t.Fatalf("NewHTTPRequest failed: %v", err)
		}
		if req.URL.Path != "/" {
			t.Errorf("Expected path /, got %q", req.URL.Path)
		}
		if req.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", req.Method)
		}
	})

	t.Run("QueryString", func(t *testing.T) {
		params := url.Values{"a": {"1"}, "b": {"x y"}}
		req, err := NewHTTPRequest(ctx, &Request{Method: "GET", Path: "/search", QueryParams: params})
		if err != nil {
			t.Fatalf("NewHTTPRequest failed: %v", err)
		}
		if req.URL.RawQuery != "a=1&b=x%20y" {
			t.Errorf("Expected a=1&b=x%%20y, got %q", req.URL.RawQuery)
		}

		parsed := req.URL.Query()
		if parsed.Get("a") != "1" || parsed.Get("b") != "x y" {
			t.Errorf("Query did not round-trip: %v", parsed)
		}
	})

	t.Run("FirstValueWins", func(t *testing.T) {
		params := url.Values{"tag": {"first", "second"}}
		req, err := NewHTTPRequest(ctx, &Request{Method: "GET", Path: "/", QueryParams: params})
		if err != nil {
			t.Fatalf("NewHTTPRequest failed: %v", err)
		}
		if got := req.URL.Query()["tag"]; len(got) != 1 || got[0] != "first" {
			t.Errorf("Expected [first], got %v", got)
		}
	})

	t.Run("ReservedCharactersAreEscaped", func(t *testing.T) {
		params := url.Values{"q": {"a+b&c=d"}}
		req, err := NewHTTPRequest(ctx, &Request{Method: "GET", Path: "/", QueryParams: params})
		if err != nil {
			t.Fatalf("NewHTTPRequest failed: %v", err)
		}
		if got := req.URL.Query().Get("q"); got != "a+b&c=d" {
			t.Errorf("Expected a+b&c=d, got %q", got)
		}
	})

	t.Run("MalformedPercentEncoding", func(t *testing.T) {
		_, err := NewHTTPRequest(ctx, &Request{Method: "GET", Path: "/bad%zzpath"})
		if err == nil {
			t.Fatal("Expected error for malformed path")
		}
		if !IsTranslation(err) {
			t.Errorf("Expected translation error, got %v", err)
		}
	})
}

func TestNewHTTPRequestMetadata(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "value")

	headers := http.Header{}
	headers.Add("X-Custom", "one")
	headers.Add("X-Custom", "two")

	req, err := NewHTTPRequest(ctx, &Request{
		Method:     "DELETE",
		Path:       "/items/1",
		Headers:    headers,
		RemoteAddr: "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("NewHTTPRequest failed: %v", err)
	}

	if req.Method != "DELETE" {
		t.Errorf("Expected DELETE, got %s", req.Method)
	}
	if got := req.Header.Values("X-Custom"); len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("Headers not passed through: %v", got)
	}
	if req.RemoteAddr != "10.0.0.1:0" {
		t.Errorf("Expected RemoteAddr=10.0.0.1:0, got %s", req.RemoteAddr)
	}
	if req.Context().Value(ctxKey{}) != "value" {
		t.Error("Context was not propagated")
	}

	// The event's header map must not alias the request's
	req.Header.Set("X-Custom", "changed")
	if headers.Get("X-Custom") != "one" {
		t.Error("Event headers were mutated")
	}
}

func TestNewHTTPRequestRemoteAddr(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want string
	}{
		{"IPv4", "203.0.113.9", "203.0.113.9:0"},
		{"IPv6", "2001:db8::1", "[2001:db8::1]:0"},
		{"WithPort", "203.0.113.9:4711", "203.0.113.9:4711"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewHTTPRequest(context.Background(), &Request{Path: "/", RemoteAddr: tt.addr})
			if err != nil {
				t.Fatalf("NewHTTPRequest failed: %v", err)
			}
			if req.RemoteAddr != tt.want {
				t.Errorf("Expected RemoteAddr=%s, got %s", tt.want, req.RemoteAddr)
			}
		})
	}
}

func TestNewHTTPRequestIdempotent(t *testing.T) {
	event := &Request{
		Method:      "POST",
		Path:        "/orders",
		Headers:     http.Header{"Content-Type": {"application/json"}},
		QueryParams: url.Values{"z": {"1"}, "a": {"2"}, "m": {"3 4"}},
		Body:        TextBody(`{"id":1}`),
	}

	first, err := NewHTTPRequest(context.Background(), event)
	if err != nil {
		t.Fatalf("NewHTTPRequest failed: %v", err)
	}
	second, err := NewHTTPRequest(context.Background(), event)
	if err != nil {
		t.Fatalf("NewHTTPRequest failed: %v", err)
	}

	if first.URL.String() != second.URL.String() {
		t.Errorf("URLs differ: %q vs %q", first.URL, second.URL)
	}
	if first.Method != second.Method {
		t.Errorf("Methods differ: %s vs %s", first.Method, second.Method)
	}
	if !bytes.Equal(readAll(t, first.Body), readAll(t, second.Body)) {
		t.Error("Bodies differ")
	}
}
