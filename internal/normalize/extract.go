// Package normalize turns raw model text into typed result items.
package normalize

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const snippetLen = 120

// MalformedResponseError means no parseable JSON array could be located in
// the model output.
type MalformedResponseError struct {
	Reason  string
	Snippet string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("normalize: malformed response: %s (near %q)", e.Reason, e.Snippet)
}

func malformed(reason, raw string) *MalformedResponseError {
	s := strings.TrimSpace(raw)
	if len(s) > snippetLen {
		s = s[:snippetLen] + "..."
	}
	return &MalformedResponseError{Reason: reason, Snippet: s}
}

// ExtractArray locates the JSON array in raw model text. Code fences are
// stripped first; if the remainder is not a JSON array, the first balanced
// "[ { ... } ]" span that parses is returned.
func ExtractArray(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", malformed("empty response", raw)
	}

	text := stripFences(raw)
	if gjson.Valid(text) && gjson.Parse(text).IsArray() {
		return text, nil
	}

	if span, ok := scanArray(raw); ok {
		return span, nil
	}
	return "", malformed("no JSON array found", raw)
}

// stripFences removes a leading markdown code fence and its closing marker.
// Text that does not open with a fence is returned trimmed but otherwise
// intact.
func stripFences(text string) string {
	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, "```json"):
		text = strings.TrimPrefix(text, "```json")
	case strings.HasPrefix(text, "```"):
		text = strings.TrimPrefix(text, "```")
	default:
		return text
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}

	return strings.TrimSpace(text)
}

// scanArray returns the first balanced array span that opens with an object
// and is valid JSON.
func scanArray(text string) (string, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' || !opensObject(text[i+1:]) {
			continue
		}
		end, ok := matchBracket(text, i)
		if !ok {
			continue
		}
		if span := text[i : end+1]; gjson.Valid(span) {
			return span, true
		}
	}
	return "", false
}

func opensObject(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	return strings.HasPrefix(rest, "{")
}

// matchBracket finds the index of the ']' closing the '[' at start, skipping
// brackets inside string literals.
func matchBracket(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escape := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escape {
			escape = false
			continue
		}
		if c == '\\' && inString {
			escape = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				if c == ']' {
					return i, true
				}
				return 0, false
			}
		}
	}
	return 0, false
}
