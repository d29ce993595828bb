package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// ParseDiagnostic reports a trigger string that no rule recognized. The
// question it guards is treated as always available, so these need to be
// surfaced to whoever maintains the intake configuration.
type ParseDiagnostic struct {
	QuestionID string
	Trigger    string
}

// triggerRule is one entry in the ordered pattern list. Rules are tried top
// to bottom and the first match wins. Several patterns can structurally
// match the same string (the generic comparison rule overlaps every keyword
// shortcut), so the existing authored trigger text depends on this exact
// ordering. Do not reorder or deduplicate.
type triggerRule struct {
	re    *regexp.Regexp
	build func(m []string) Condition
}

var triggerRules = []triggerRule{
	// "If 12A > 0"
	{
		re: regexp.MustCompile(`(?i)if\s+(\w+)\s+>\s+(\d+)`),
		build: func(m []string) Condition {
			return GreaterThan{QuestionID: m[1], Value: parseTriggerNumber(m[2])}
		},
	},
	// "12A > 0" without the leading "If"
	{
		re: regexp.MustCompile(`(?i)(\w+)\s+>\s+(\d+)`),
		build: func(m []string) Condition {
			return GreaterThan{QuestionID: m[1], Value: parseTriggerNumber(m[2])}
		},
	},
	// "If Q19=Yes" or "If Q19=Yes (snoring)"
	{
		re: regexp.MustCompile(`(?i)if\s+q?(\w+)\s*=\s*(yes|no|female|male|other)`),
		build: func(m []string) Condition {
			return Equals{QuestionID: m[1], Value: titleCase(m[2])}
		},
	},
	// "If 44A = Yes"
	{
		re: regexp.MustCompile(`(?i)if\s+(\w+)\s*=\s*(yes|no)`),
		build: func(m []string) Condition {
			return Equals{QuestionID: m[1], Value: titleCase(m[2])}
		},
	},
	// Keyword shortcuts: each phrase maps to one canonical question id.
	{
		re:    regexp.MustCompile(`(?i)pain present|if pain`),
		build: func([]string) Condition { return Equals{QuestionID: "22", Value: "Yes"} },
	},
	{
		re:    regexp.MustCompile(`(?i)caffeine`),
		build: func([]string) Condition { return Equals{QuestionID: "29", Value: "Yes"} },
	},
	{
		re:    regexp.MustCompile(`(?i)alcohol`),
		build: func([]string) Condition { return Equals{QuestionID: "32", Value: "Yes"} },
	},
	{
		re:    regexp.MustCompile(`(?i)partner`),
		build: func([]string) Condition { return Equals{QuestionID: "35", Value: "Yes"} },
	},
	{
		re:    regexp.MustCompile(`(?i)children`),
		build: func([]string) Condition { return Equals{QuestionID: "37", Value: "Yes"} },
	},
	{
		re:    regexp.MustCompile(`(?i)exercise`),
		build: func([]string) Condition { return Equals{QuestionID: "24", Value: "Yes"} },
	},
	// "If sex = Female" maps to the demographics question.
	{
		re: regexp.MustCompile(`(?i)if\s+sex\s*=\s*(female|male|other)`),
		build: func(m []string) Condition {
			return Equals{QuestionID: "D4", Value: titleCase(m[1])}
		},
	},
	{
		re:    regexp.MustCompile(`(?i)q19\s*=\s*yes|snoring`),
		build: func([]string) Condition { return Equals{QuestionID: "19", Value: "Yes"} },
	},
	// Generic fallback: "If <id> <op> <value>"
	{
		re: regexp.MustCompile(`(?i)if\s+(\w+)\s*(>=|<=|>|<|=)\s*(\w+)`),
		build: func(m []string) Condition {
			questionID, op, value := m[1], m[2], m[3]
			switch op {
			case "=":
				return Equals{QuestionID: questionID, Value: titleCase(value)}
			case ">":
				return GreaterThan{QuestionID: questionID, Value: parseTriggerNumber(value)}
			case ">=":
				return GreaterThanOrEqual{QuestionID: questionID, Value: parseTriggerNumber(value)}
			case "<":
				return LessThan{QuestionID: questionID, Value: parseTriggerNumber(value)}
			case "<=":
				return LessThanOrEqual{QuestionID: questionID, Value: parseTriggerNumber(value)}
			}
			return nil
		},
	},
}

// ParseTrigger converts a free-text trigger string into a condition.
// A nil condition with a nil diagnostic means the question is ungated
// ("Always"). A nil condition with a diagnostic means no rule matched; the
// caller logs it and treats the question as ungated anyway, so a mis-typed
// trigger fails open toward showing content rather than hiding it.
func ParseTrigger(trigger, questionID string) (Condition, *ParseDiagnostic) {
	trimmed := strings.TrimSpace(trigger)
	if trimmed == "" || trimmed == "-" || trimmed == "Always" {
		return nil, nil
	}

	for _, rule := range triggerRules {
		if m := rule.re.FindStringSubmatch(trimmed); m != nil {
			if cond := rule.build(m); cond != nil {
				return cond, nil
			}
		}
	}

	return nil, &ParseDiagnostic{QuestionID: questionID, Trigger: trigger}
}

// KeywordTargets exposes the keyword-shortcut question ids so the catalog
// can check they still exist in the active question set. The shortcuts
// assume one canonical question per phrase; a catalog revision that shifts
// ids would silently retarget them.
func KeywordTargets() map[string]string {
	return map[string]string{
		"pain":     "22",
		"caffeine": "29",
		"alcohol":  "32",
		"partner":  "35",
		"children": "37",
		"exercise": "24",
		"snoring":  "19",
		"sex":      "D4",
	}
}

func parseTriggerNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
