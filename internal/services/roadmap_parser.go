package services

import (
	"encoding/json"
	"strings"
)

// stripCodeFence removes a leading labeled or bare code-fence marker and a
// trailing fence marker. The markers are optional and stripped
// independently, not as a matched pair; models wrap JSON inconsistently.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	}
	if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

// ParseRoadmapPayload decodes a raw model response into the intermediate
// roadmap document. It guarantees only the two top-level keys; deeper field
// access is the assembler's job and may fail there.
func ParseRoadmapPayload(raw string) (map[string]any, error) {
	clean := stripCodeFence(raw)

	var decoded any
	if err := json.Unmarshal([]byte(clean), &decoded); err != nil {
		return nil, &ParseError{Err: err}
	}

	doc, ok := decoded.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: "invalid roadmap structure"}
	}
	if _, ok := doc["summary"]; !ok {
		return nil, &ValidationError{Reason: "invalid roadmap structure"}
	}
	if _, ok := doc["milestones"]; !ok {
		return nil, &ValidationError{Reason: "invalid roadmap structure"}
	}
	return doc, nil
}

// ParseResourceList decodes a raw model response expected to be a bare JSON
// array of resource objects. No per-element validation happens here.
func ParseResourceList(raw string) ([]any, error) {
	clean := stripCodeFence(raw)

	var list []any
	if err := json.Unmarshal([]byte(clean), &list); err != nil {
		return nil, &ParseError{Err: err}
	}
	return list, nil
}
