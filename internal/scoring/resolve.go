package scoring

import (
	"strconv"
	"strings"
)

// optionBounds returns the min and max option value for a question.
// Questions without options default to [0,0].
func optionBounds(q Question) (float64, float64) {
	if len(q.Options) == 0 {
		return 0, 0
	}
	lo, hi := q.Options[0].Value, q.Options[0].Value
	for _, o := range q.Options[1:] {
		if o.Value < lo {
			lo = o.Value
		}
		if o.Value > hi {
			hi = o.Value
		}
	}
	return lo, hi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// resolveValue maps one submitted answer to a numeric value bounded by the
// question's option range. Resolution order: native number, numeric string,
// boolean, yes/no text, option id/value lookup.
func resolveValue(q Question, raw any) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	if n, ok := asNumber(raw); ok {
		lo, hi := optionBounds(q)
		return clamp(n, lo, hi), true
	}
	if s, ok := raw.(string); ok {
		t := strings.TrimSpace(s)
		if n, err := strconv.ParseFloat(t, 64); err == nil {
			lo, hi := optionBounds(q)
			return clamp(n, lo, hi), true
		}
		if n, ok := yesNoValue(t); ok {
			lo, hi := optionBounds(q)
			return clamp(n, lo, hi), true
		}
		for _, o := range q.Options {
			if o.ID == t {
				return o.Value, true
			}
		}
		return 0, false
	}
	if b, ok := raw.(bool); ok {
		lo, hi := optionBounds(q)
		if b {
			return clamp(1, lo, hi), true
		}
		return clamp(0, lo, hi), true
	}
	return 0, false
}

// ensureNumeric is the lenient variant used by the composite battery:
// missing or unparseable answers resolve to fallback instead of failing.
func ensureNumeric(q Question, raw any, fallback float64) float64 {
	if v, ok := resolveValue(q, raw); ok {
		return v
	}
	return fallback
}

func asNumber(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func yesNoValue(s string) (float64, bool) {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1":
		return 1, true
	case "no", "n", "false", "0":
		return 0, true
	}
	return 0, false
}
