package ai

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind errorKind
	}{
		{"quota keyword", errors.New("Quota exceeded for requests"), kindQuota},
		{"429 status", errors.New("googleapi: got HTTP response code 429"), kindQuota},
		{"503 status", errors.New("server returned 503"), kindTransient},
		{"unavailable", errors.New("the service is UNAVAILABLE"), kindTransient},
		{"overloaded", errors.New("The model is overloaded. Please try again later."), kindTransient},
		{"anything else", errors.New("invalid argument: bad request"), kindFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, reason := classify(tt.err)
			if kind != tt.wantKind {
				t.Errorf("classify(%v) kind = %d, want %d", tt.err, kind, tt.wantKind)
			}
			if reason == "" {
				t.Errorf("classify(%v) returned empty reason", tt.err)
			}
		})
	}
}

func TestClassifyGoogleAPIError(t *testing.T) {
	err := fmt.Errorf("call failed: %w", &googleapi.Error{
		Code:    http.StatusTooManyRequests,
		Message: "Resource has been exhausted",
	})

	kind, reason := classify(err)
	if kind != kindQuota {
		t.Fatalf("expected quota kind, got %d (reason %q)", kind, reason)
	}
	if reason != "429 resource has been exhausted" {
		t.Errorf("reason = %q", reason)
	}
}

func TestErrorTextUnwrapsJSONBodies(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"error.message preferred",
			errors.New(`rpc failed: {"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`),
			"quota exceeded",
		},
		{
			"top-level message",
			errors.New(`{"message":"The model is overloaded"}`),
			"the model is overloaded",
		},
		{
			"nested string-encoded body",
			errors.New(`{"error":{"message":"{\"error\":{\"message\":\"Service Unavailable\"}}"}}`),
			"service unavailable",
		},
		{
			"plain text passes through",
			errors.New("Connection Refused"),
			"connection refused",
		},
		{
			"invalid json passes through",
			errors.New("unexpected token { in response"),
			"unexpected token { in response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorText(tt.err); got != tt.want {
				t.Errorf("errorText() = %q, want %q", got, tt.want)
			}
		})
	}
}
