package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// thinkTagPattern matches <think>...</think> blocks some models prepend
// to their answers.
var thinkTagPattern = regexp.MustCompile(`(?s)^[\s]*<think>.*?</think>[\s]*`)

// ExtractJSONObject returns the first balanced JSON object embedded in a
// model response, tolerating reasoning tags, markdown fences and
// surrounding prose. The second return value is false when the response
// contains no opening brace at all, which callers treat as "the model
// answered in prose".
func ExtractJSONObject(response string) (string, bool, error) {
	cleaned := thinkTagPattern.ReplaceAllString(response, "")

	if strings.IndexByte(cleaned, '{') < 0 {
		return "", false, nil
	}

	obj, ok := extractBalancedObject(cleaned)
	if !ok || !json.Valid([]byte(obj)) {
		return "", true, fmt.Errorf("no valid JSON object found in response")
	}

	return obj, true, nil
}

// extractBalancedObject finds the first balanced {...} structure,
// counting brace depth and skipping braces inside JSON strings.
func extractBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		if c == '\\' && inString {
			escaped = true
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
