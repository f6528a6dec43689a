package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/stupnd/trippy-sub001/internal/domain"
	"github.com/stupnd/trippy-sub001/internal/planner"
)

/********** untrusted generative-text parsing **********/

// Field aliases the model has been observed to use for the budget bounds.
var budgetAliases = map[string][]string{
	"min": {"budget_min", "min", "minimum", "budget.min", "low"},
	"max": {"budget_max", "max", "maximum", "budget.max", "high"},
}

// parseBudgetSuggestion extracts {budget_min, budget_max} from free text.
// Code fences and surrounding prose are tolerated; a missing bound, bad
// JSON, or a non-numeric value is an upstream-malformed failure, never a
// panic.
func parseBudgetSuggestion(text string) (*planner.ExternalEstimate, error) {
	raw := extractJSONObject(stripCodeFences(text))
	if raw == "" {
		return nil, fmt.Errorf("%w: no JSON object in suggestion", domain.ErrUpstreamMalformed)
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamMalformed, err)
	}

	min := firstFloatAlias(m, budgetAliases["min"])
	max := firstFloatAlias(m, budgetAliases["max"])
	if min == nil || max == nil {
		return nil, fmt.Errorf("%w: budget bounds missing", domain.ErrUpstreamMalformed)
	}
	return &planner.ExternalEstimate{Min: *min, Max: *max}, nil
}

// stripCodeFences drops optional ``` or ```json markers around the reply.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// extractJSONObject returns the first balanced {...} span, or "".
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		switch c := s[i]; {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// firstFloatAlias: first numeric value across alias paths (float64/int,
// or a string like "1200" or "1 200,50").
func firstFloatAlias(m map[string]any, paths []string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.ReplaceAll(strings.TrimSpace(v), " ", "")
			s = strings.ReplaceAll(s, ",", ".")
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}
