// Package common holds helpers for decoding model output.
package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON means the response carries no JSON object at all.
var ErrNoJSON = errors.New("no JSON object found in response")

// ParseJSON extracts the outermost JSON object from a model response and
// unmarshals it into T. Markdown fences and surrounding prose are ignored.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 || end < start {
		return zero, ErrNoJSON
	}

	var result T
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}

// ParseObject unmarshals response only when the whole reply, once a
// surrounding markdown fence is removed, is a single JSON object. Replies
// that merely quote JSON inside prose return ErrNoJSON.
func ParseObject[T any](response string) (T, error) {
	var zero T

	body := stripFence(strings.TrimSpace(response))
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		return zero, ErrNoJSON
	}

	var result T
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	inner := s[3 : len(s)-3]
	// drop the language tag line, e.g. "json"
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		inner = inner[nl+1:]
	} else {
		return s
	}
	return strings.TrimSpace(inner)
}
