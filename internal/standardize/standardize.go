// Package standardize normalizes heterogeneous legacy question records
// into the fixed set of canonical answer formats the intake clients
// render. The legacy records come from intake spreadsheets with free-text
// "Scale/Type" descriptors; the output is one canonical format plus a
// format-specific configuration and independent validation rules.
package standardize

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

type AnswerFormat string

const (
	FormatTimePicker       AnswerFormat = "time_picker"
	FormatMinutesScroll    AnswerFormat = "minutes_scroll"
	FormatNumberScroll     AnswerFormat = "number_scroll"
	FormatSliderScale      AnswerFormat = "slider_scale"
	FormatSingleSelectChip AnswerFormat = "single_select_chips"
	FormatMultiSelectChip  AnswerFormat = "multi_select_chips"
	FormatDatePicker       AnswerFormat = "date_picker"
	FormatNumberInput      AnswerFormat = "number_input"
	FormatRepeatingGroup   AnswerFormat = "repeating_group"
)

var canonicalFormats = map[AnswerFormat]struct{}{
	FormatTimePicker:       {},
	FormatMinutesScroll:    {},
	FormatNumberScroll:     {},
	FormatSliderScale:      {},
	FormatSingleSelectChip: {},
	FormatMultiSelectChip:  {},
	FormatDatePicker:       {},
	FormatNumberInput:      {},
	FormatRepeatingGroup:   {},
}

func (f AnswerFormat) Valid() bool {
	_, ok := canonicalFormats[f]
	return ok
}

// RawQuestion is a legacy question record as authored in the intake
// spreadsheets or already-standardized output being re-run.
type RawQuestion struct {
	ID               string
	Text             string
	HelpText         string
	Pillar           string
	Tier             string
	ScaleType        string
	Options          []string
	Trigger          string
	Min              *float64
	Max              *float64
	Step             *float64
	DefaultValue     *float64
	Unit             string
	Required         *bool
	EstimatedMinutes float64

	// Set when the record is already standardized; Standardize passes
	// such records through untouched.
	AnswerFormat    string
	FormatConfig    map[string]any
	ValidationRules map[string]any
	Condition       *ShowCondition
}

// ShowCondition is the simple per-question show/hide rule, distinct from
// gateway triggers.
type ShowCondition struct {
	QuestionID  string
	Equals      string
	GreaterThan *float64
}

// Question is a fully standardized record.
type Question struct {
	QuestionID           string
	QuestionText         string
	HelpText             string
	Pillar               string
	Tier                 string
	AnswerFormat         AnswerFormat
	FormatConfig         map[string]any
	ValidationRules      map[string]any
	ConditionalLogic     map[string]any
	EstimatedTimeSeconds int
	Trigger              string
}

// Skipped records one input that could not be mapped to a canonical
// format. Skips never abort the batch.
type Skipped struct {
	QuestionID string
	Text       string
	Reason     string
}

type Result struct {
	Questions []Question
	Skipped   []Skipped
}

// Standardize converts a batch of legacy records. Unmappable records land
// in Skipped with a reason; everything else converts.
func Standardize(batch []RawQuestion) Result {
	var result Result
	for _, raw := range batch {
		question, skipped := standardizeOne(raw)
		if skipped != nil {
			result.Skipped = append(result.Skipped, *skipped)
			continue
		}
		result.Questions = append(result.Questions, question)
	}
	return result
}

func standardizeOne(raw RawQuestion) (Question, *Skipped) {
	// Already-standardized input passes through unchanged, which makes
	// re-running the converter on its own output a no-op.
	if format := AnswerFormat(raw.AnswerFormat); format.Valid() && len(raw.FormatConfig) > 0 {
		return Question{
			QuestionID:           raw.ID,
			QuestionText:         raw.Text,
			HelpText:             raw.HelpText,
			Pillar:               raw.Pillar,
			Tier:                 raw.Tier,
			AnswerFormat:         format,
			FormatConfig:         raw.FormatConfig,
			ValidationRules:      raw.ValidationRules,
			ConditionalLogic:     conditionalLogic(raw.Condition),
			EstimatedTimeSeconds: estimateTimeSeconds(format, raw),
			Trigger:              raw.Trigger,
		}, nil
	}

	format, skipReason := convertScaleType(raw.ScaleType)
	if skipReason != "" {
		return Question{}, &Skipped{QuestionID: raw.ID, Text: raw.Text, Reason: skipReason}
	}

	return Question{
		QuestionID:           raw.ID,
		QuestionText:         cleanQuestionText(raw.Text),
		HelpText:             raw.HelpText,
		Pillar:               raw.Pillar,
		Tier:                 raw.Tier,
		AnswerFormat:         format,
		FormatConfig:         formatConfig(format, raw),
		ValidationRules:      validationRules(format, raw),
		ConditionalLogic:     conditionalLogic(raw.Condition),
		EstimatedTimeSeconds: estimateTimeSeconds(format, raw),
		Trigger:              raw.Trigger,
	}, nil
}

// convertScaleType maps a legacy scale/type descriptor onto a canonical
// format. The descriptor vocabulary is closed; anything outside it is
// reported, not guessed at.
func convertScaleType(scaleType string) (AnswerFormat, string) {
	lower := strings.ToLower(scaleType)

	switch {
	case strings.Contains(lower, "yes/no"):
		return FormatSingleSelectChip, ""
	case strings.Contains(lower, "scale"), strings.Contains(lower, "-point"):
		return FormatSliderScale, ""
	case strings.Contains(lower, "time range"):
		// Time ranges are authored as two separate questions downstream.
		return FormatTimePicker, ""
	case strings.Contains(lower, "time"):
		return FormatTimePicker, ""
	case strings.Contains(lower, "date"):
		return FormatDatePicker, ""
	case strings.Contains(lower, "number") && strings.Contains(lower, "minutes"):
		return FormatMinutesScroll, ""
	case strings.Contains(lower, "number") && strings.Contains(lower, "hours"):
		return FormatNumberScroll, ""
	case strings.Contains(lower, "number"):
		return FormatNumberInput, ""
	case strings.Contains(lower, "multiple choice"):
		return FormatSingleSelectChip, ""
	case strings.Contains(lower, "multiple select"):
		return FormatMultiSelectChip, ""
	case strings.Contains(lower, "repeating"):
		return FormatRepeatingGroup, ""
	case strings.Contains(lower, "text"), strings.Contains(lower, "email"):
		return "", "free-text input is not a supported canonical format"
	case strings.Contains(lower, "calculated"):
		return "", "calculated field, not an answerable question"
	default:
		return "", fmt.Sprintf("unrecognized scale type %q", scaleType)
	}
}

var (
	scaleRangeRe = regexp.MustCompile(`(?i)(\d+)-(\d+)\s*scale`)
	scalePointRe = regexp.MustCompile(`(?i)(\d+)-point\s*scale`)
)

// extractScaleRange pulls min/max out of descriptors like "0-3 scale" or
// "5-point scale".
func extractScaleRange(scaleType string) (min, max int, ok bool) {
	if m := scaleRangeRe.FindStringSubmatch(scaleType); m != nil {
		return atoiOr(m[1], 0), atoiOr(m[2], 0), true
	}
	if m := scalePointRe.FindStringSubmatch(scaleType); m != nil {
		return 1, atoiOr(m[1], 0), true
	}
	return 0, 0, false
}

func formatConfig(format AnswerFormat, q RawQuestion) map[string]any {
	switch format {
	case FormatTimePicker:
		return map[string]any{
			"format":             "HH:MM",
			"allowCrossMidnight": true,
		}

	case FormatMinutesScroll:
		return map[string]any{
			"min":          floatOr(q.Min, 0),
			"max":          floatOr(q.Max, 200),
			"defaultValue": floatOr(q.DefaultValue, 0),
			"step":         floatOr(q.Step, 5),
		}

	case FormatNumberScroll:
		isHours := strings.Contains(strings.ToLower(q.ScaleType), "hours")
		maxDefault, unit, stepDefault := 20.0, "times", 1.0
		if isHours {
			maxDefault, unit, stepDefault = 40, "hours", 0.5
		}
		if q.Unit != "" {
			unit = q.Unit
		}
		return map[string]any{
			"min":          floatOr(q.Min, 0),
			"max":          floatOr(q.Max, maxDefault),
			"defaultValue": floatOr(q.DefaultValue, 0),
			"unit":         unit,
			"step":         floatOr(q.Step, stepDefault),
		}

	case FormatSliderScale:
		min, max := 1, 10
		if rMin, rMax, ok := extractScaleRange(q.ScaleType); ok {
			min, max = rMin, rMax
		}
		minLabel, maxLabel := sliderLabels(q.ScaleType, min, max)
		return map[string]any{
			"min":             min,
			"max":             max,
			"minLabel":        minLabel,
			"maxLabel":        maxLabel,
			"defaultValue":    floatOr(q.DefaultValue, math.Floor(float64(min+max)/2)),
			"showNumberLabel": true,
			"step":            1,
		}

	case FormatSingleSelectChip:
		options := chipOptions(q)
		layout := "grid"
		if len(options) <= 3 {
			layout = "horizontal"
		}
		return map[string]any{
			"options": options,
			"layout":  layout,
		}

	case FormatMultiSelectChip:
		return map[string]any{
			"options":       optionList(q.Options),
			"layout":        "grid",
			"minSelections": 0,
			"maxSelections": 10,
		}

	case FormatDatePicker:
		return map[string]any{
			"format":  "YYYY-MM-DD",
			"maxDate": "today",
		}

	case FormatNumberInput:
		return numberInputConfig(q)

	case FormatRepeatingGroup:
		return map[string]any{
			"minEntries": 0,
			"maxEntries": 10,
		}
	}
	return map[string]any{}
}

// sliderLabels picks endpoint labels from the descriptor vocabulary the
// spreadsheets use (quality, severity, frequency, difficulty).
func sliderLabels(scaleType string, min, max int) (string, string) {
	lower := strings.ToLower(scaleType)
	switch {
	case strings.Contains(lower, "quality"), strings.Contains(lower, "severity"):
		if min == 0 {
			switch max {
			case 3:
				return "None", "Severe"
			case 4:
				return "None", "Very severe"
			default:
				return "None", "Worst"
			}
		}
		return "Very poor", "Excellent"
	case strings.Contains(lower, "frequency"):
		return "Never", "Always"
	case strings.Contains(lower, "difficulty"):
		return "None", "Very difficult"
	default:
		return "Minimum", "Maximum"
	}
}

var parentheticalRe = regexp.MustCompile(`\(([^)]+)\)`)

func chipOptions(q RawQuestion) []map[string]any {
	if len(q.Options) > 0 {
		return optionList(q.Options)
	}

	// Yes/No variants spell their labels in the descriptor itself,
	// e.g. "Yes/No" or "Yes/No/Sometimes".
	if strings.Contains(strings.ToLower(q.ScaleType), "yes/no") {
		return optionList(strings.Split(q.ScaleType, "/"))
	}

	// Fall back to options embedded in the question text: "(Low/Medium/High)".
	if m := parentheticalRe.FindStringSubmatch(q.Text); m != nil {
		return optionList(strings.Split(m[1], "/"))
	}

	return optionList([]string{"Yes", "No"})
}

func optionList(labels []string) []map[string]any {
	options := make([]map[string]any, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		options = append(options, map[string]any{
			"value": optionValue(label),
			"label": label,
		})
	}
	return options
}

var optionValueStripRe = regexp.MustCompile(`[^a-z0-9_]`)

func optionValue(label string) string {
	value := strings.ToLower(label)
	value = strings.Join(strings.Fields(value), "_")
	return optionValueStripRe.ReplaceAllString(value, "")
}

func numberInputConfig(q RawQuestion) map[string]any {
	lowerText := strings.ToLower(q.Text)
	switch {
	case strings.Contains(lowerText, "height"):
		return map[string]any{
			"unitOptions": []map[string]any{
				{"value": "cm", "label": "cm"},
				{"value": "in", "label": "inches", "conversionFactor": 2.54},
			},
			"min":           100,
			"max":           250,
			"step":          1,
			"decimalPlaces": 0,
			"inputMode":     "numeric",
		}
	case strings.Contains(lowerText, "weight"):
		return map[string]any{
			"unitOptions": []map[string]any{
				{"value": "kg", "label": "kg"},
				{"value": "lbs", "label": "lbs", "conversionFactor": 0.453592},
			},
			"min":           30,
			"max":           300,
			"step":          0.1,
			"decimalPlaces": 1,
			"inputMode":     "decimal",
		}
	default:
		return map[string]any{
			"min":           floatOr(q.Min, 0),
			"max":           floatOr(q.Max, 1000),
			"step":          1,
			"decimalPlaces": 0,
			"inputMode":     "numeric",
		}
	}
}

// validationRules derives constraints independently of the format config.
// Expansion questions are optional by default; everything else is required
// unless the record says otherwise.
func validationRules(format AnswerFormat, q RawQuestion) map[string]any {
	required := q.Tier != "EXPANSION"
	if q.Required != nil {
		required = *q.Required
	}
	rules := map[string]any{"required": required}

	switch format {
	case FormatMinutesScroll, FormatNumberScroll, FormatSliderScale, FormatNumberInput:
		config := formatConfig(format, q)
		if min, ok := config["min"]; ok {
			rules["min"] = min
		}
		if max, ok := config["max"]; ok {
			rules["max"] = max
		}
	}
	return rules
}

func conditionalLogic(cond *ShowCondition) map[string]any {
	if cond == nil {
		return nil
	}
	operator, value := "equals", any(cond.Equals)
	if cond.GreaterThan != nil {
		operator, value = "greater_than", any(*cond.GreaterThan)
	}
	return map[string]any{
		"show_if": map[string]any{
			"question_id": cond.QuestionID,
			"operator":    operator,
			"value":       value,
		},
	}
}

var defaultTimeSeconds = map[AnswerFormat]int{
	FormatTimePicker:       18,
	FormatMinutesScroll:    12,
	FormatNumberScroll:     12,
	FormatSliderScale:      10,
	FormatSingleSelectChip: 8,
	FormatMultiSelectChip:  15,
	FormatDatePicker:       10,
	FormatNumberInput:      15,
	FormatRepeatingGroup:   36,
}

func estimateTimeSeconds(format AnswerFormat, q RawQuestion) int {
	if q.EstimatedMinutes > 0 {
		return int(math.Round(q.EstimatedMinutes * 60))
	}
	if seconds, ok := defaultTimeSeconds[format]; ok {
		return seconds
	}
	return 10
}

var trailingParenRe = regexp.MustCompile(`\s*\([^)]+\)\s*$`)
var trailingScaleRe = regexp.MustCompile(`\s*\(?\d+-\d+\)?\s*$`)

// cleanQuestionText strips trailing option lists and scale indicators that
// belong in the format config, not the prompt.
func cleanQuestionText(text string) string {
	text = trailingParenRe.ReplaceAllString(text, "")
	text = trailingScaleRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func atoiOr(s string, fallback int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	return n
}
