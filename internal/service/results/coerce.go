// Package results implements the aggregation and normalization layer:
// coercion of untrusted JSON form fields, feedback normalization, result
// aggregation with defined precedence, the in-memory store, and timeline
// projection for charting.
package results

import (
	"encoding/json"
	"strings"
)

// ParseJSONField decodes a form field expected to contain JSON.
// Empty or whitespace-only input yields an empty object. Malformed input
// yields a sentinel object carrying the original string instead of an error:
// bad client data must never abort the request flow.
//
// Every "parse this form field as JSON" call site goes through here so the
// contract is identical for vision metrics, summaries, timelines and feedback.
func ParseJSONField(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return map[string]any{
			"parse_error": true,
			"raw":         raw,
		}
	}
	return v
}

// IsParseError reports whether a coerced value is the malformed-input sentinel.
func IsParseError(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	flagged, _ := m["parse_error"].(bool)
	return flagged
}

// AsObject returns v as a JSON object, or an empty one when it is anything else.
func AsObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
