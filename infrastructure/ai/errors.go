package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// errorKind - tagged classification of a model-call failure, produced once
// at the call boundary. Nothing downstream re-parses error strings.
type errorKind int

const (
	kindQuota     errorKind = iota // provider quota/rate limit; credential swap, not retry
	kindTransient                  // server overload/unavailability; retryable
	kindMalformed                  // empty or unparseable output; retryable
	kindFatal                      // everything else; rethrown immediately
)

// classify extracts a lower-cased reason from a model-call error and buckets
// it. Quota and transient conditions need different remedies, so they are
// never conflated.
func classify(err error) (errorKind, string) {
	reason := errorText(err)
	switch {
	case strings.Contains(reason, "quota") || strings.Contains(reason, "429"):
		return kindQuota, reason
	case strings.Contains(reason, "503") || strings.Contains(reason, "unavailable") || strings.Contains(reason, "overloaded"):
		return kindTransient, reason
	default:
		return kindFatal, reason
	}
}

// errorText pulls a human-readable message out of an error, unwrapping
// string-encoded JSON error bodies the API sometimes embeds verbatim.
func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return strings.ToLower(fmt.Sprintf("%d %s", apiErr.Code, apiErr.Message))
	}
	return strings.ToLower(unwrapJSONMessage(err.Error()))
}

func unwrapJSONMessage(msg string) string {
	current := strings.TrimSpace(msg)
	// Error strings can nest JSON bodies inside JSON bodies; a couple of
	// passes is enough in practice.
	for range [3]int{} {
		start := strings.IndexAny(current, "{[")
		if start < 0 {
			return current
		}
		var payload struct {
			Error *struct {
				Message string `json:"message"`
			} `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal([]byte(current[start:]), &payload) != nil {
			return current
		}
		switch {
		case payload.Error != nil && payload.Error.Message != "":
			current = strings.TrimSpace(payload.Error.Message)
		case payload.Message != "":
			current = strings.TrimSpace(payload.Message)
		default:
			return current
		}
	}
	return current
}
