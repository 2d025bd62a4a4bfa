package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON cleans and unmarshals a JSON string into a type T.
// It handles common LLM quirks like surrounding markdown fences or extra
// prose by trimming to the outermost object or array.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	objStart := strings.IndexByte(response, '{')
	arrStart := strings.IndexByte(response, '[')

	start := objStart
	closer := byte('}')
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start = arrStart
		closer = ']'
	}
	if start == -1 {
		return zero, fmt.Errorf("no JSON found in response")
	}

	end := strings.LastIndexByte(response, closer)
	if end <= start {
		return zero, fmt.Errorf("no closing %q found in response", string(closer))
	}

	jsonStr := response[start : end+1]

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}

// SplitTitles splits LLM output into trimmed, non-empty lines, keeping at
// most max entries. Used for the newline-separated title extraction output,
// which some models decorate with list markers.
func SplitTitles(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "*-• \t")
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == max {
			break
		}
	}
	return out
}
