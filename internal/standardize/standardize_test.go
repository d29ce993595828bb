package standardize

import (
	"reflect"
	"testing"
)

func TestStandardize_YesNoBecomesChips(t *testing.T) {
	result := Standardize([]RawQuestion{{
		ID:        "3",
		Text:      "Do you have trouble falling asleep, staying asleep, or waking too early?",
		Tier:      "GATEWAY",
		ScaleType: "Yes/No",
	}})
	if len(result.Skipped) != 0 {
		t.Fatalf("unexpected skips: %v", result.Skipped)
	}
	q := result.Questions[0]
	if q.AnswerFormat != FormatSingleSelectChip {
		t.Fatalf("expected single_select_chips, got %s", q.AnswerFormat)
	}
	options, ok := q.FormatConfig["options"].([]map[string]any)
	if !ok || len(options) != 2 {
		t.Fatalf("expected two chip options, got %v", q.FormatConfig["options"])
	}
	if options[0]["label"] != "Yes" || options[1]["label"] != "No" {
		t.Fatalf("unexpected options: %v", options)
	}
	if q.FormatConfig["layout"] != "horizontal" {
		t.Fatalf("two options should lay out horizontally")
	}
}

func TestStandardize_ScaleRangeExtracted(t *testing.T) {
	result := Standardize([]RawQuestion{{
		ID:        "15",
		Text:      "In the past 2 weeks, how often have you felt down, depressed, or hopeless?",
		Tier:      "GATEWAY",
		ScaleType: "0-3 scale (frequency)",
	}})
	q := result.Questions[0]
	if q.AnswerFormat != FormatSliderScale {
		t.Fatalf("expected slider_scale, got %s", q.AnswerFormat)
	}
	if q.FormatConfig["min"] != 0 || q.FormatConfig["max"] != 3 {
		t.Fatalf("expected 0-3 range, got min=%v max=%v", q.FormatConfig["min"], q.FormatConfig["max"])
	}
	if q.FormatConfig["minLabel"] != "Never" || q.FormatConfig["maxLabel"] != "Always" {
		t.Fatalf("expected frequency labels, got %v / %v", q.FormatConfig["minLabel"], q.FormatConfig["maxLabel"])
	}
}

func TestStandardize_PointScale(t *testing.T) {
	result := Standardize([]RawQuestion{{
		ID:        "17",
		Text:      "How sleepy do you feel during the day?",
		ScaleType: "5-point scale",
	}})
	q := result.Questions[0]
	if q.FormatConfig["min"] != 1 || q.FormatConfig["max"] != 5 {
		t.Fatalf("expected 1-5 range for 5-point scale, got min=%v max=%v", q.FormatConfig["min"], q.FormatConfig["max"])
	}
}

func TestStandardize_NumberVariants(t *testing.T) {
	result := Standardize([]RawQuestion{
		{ID: "5", Text: "How long does it take you to fall asleep?", ScaleType: "Number (minutes)"},
		{ID: "4", Text: "How many hours of sleep do you get?", ScaleType: "Number (hours)"},
		{ID: "D3", Text: "What is your height?", ScaleType: "Number"},
	})
	if len(result.Questions) != 3 {
		t.Fatalf("expected 3 conversions, got %d (skipped %v)", len(result.Questions), result.Skipped)
	}
	if result.Questions[0].AnswerFormat != FormatMinutesScroll {
		t.Fatalf("minutes should map to minutes_scroll, got %s", result.Questions[0].AnswerFormat)
	}
	if result.Questions[1].AnswerFormat != FormatNumberScroll {
		t.Fatalf("hours should map to number_scroll, got %s", result.Questions[1].AnswerFormat)
	}
	hours := result.Questions[1].FormatConfig
	if hours["unit"] != "hours" || hours["step"] != 0.5 {
		t.Fatalf("unexpected hours config: %v", hours)
	}
	height := result.Questions[2]
	if height.AnswerFormat != FormatNumberInput {
		t.Fatalf("plain number should map to number_input, got %s", height.AnswerFormat)
	}
	if _, ok := height.FormatConfig["unitOptions"]; !ok {
		t.Fatalf("height question should carry unit options")
	}
}

func TestStandardize_UnmappableRecordsSkippedNotDropped(t *testing.T) {
	result := Standardize([]RawQuestion{
		{ID: "D1", Text: "What is your name?", ScaleType: "Text"},
		{ID: "BMI", Text: "Body mass index", ScaleType: "Calculated"},
		{ID: "X1", Text: "Mystery", ScaleType: "Hologram"},
		{ID: "1", Text: "Rate your sleep quality", ScaleType: "1-10 scale (quality)"},
	})
	if len(result.Questions) != 1 {
		t.Fatalf("expected exactly one conversion, got %d", len(result.Questions))
	}
	if len(result.Skipped) != 3 {
		t.Fatalf("expected three skips, got %v", result.Skipped)
	}
	for _, s := range result.Skipped {
		if s.Reason == "" {
			t.Fatalf("skip without reason: %+v", s)
		}
	}
}

func TestStandardize_Idempotent(t *testing.T) {
	first := Standardize([]RawQuestion{{
		ID:        "1",
		Text:      "How would you rate your overall sleep quality? (1-10)",
		Tier:      "CORE",
		ScaleType: "1-10 scale (quality)",
	}})
	q := first.Questions[0]

	second := Standardize([]RawQuestion{{
		ID:              q.QuestionID,
		Text:            q.QuestionText,
		Tier:            q.Tier,
		AnswerFormat:    string(q.AnswerFormat),
		FormatConfig:    q.FormatConfig,
		ValidationRules: q.ValidationRules,
	}})
	if len(second.Skipped) != 0 {
		t.Fatalf("re-run skipped standardized input: %v", second.Skipped)
	}
	q2 := second.Questions[0]
	if q2.AnswerFormat != q.AnswerFormat {
		t.Fatalf("format changed on re-run: %s vs %s", q.AnswerFormat, q2.AnswerFormat)
	}
	if !reflect.DeepEqual(q2.FormatConfig, q.FormatConfig) {
		t.Fatalf("format config changed on re-run: %v vs %v", q.FormatConfig, q2.FormatConfig)
	}
	if !reflect.DeepEqual(q2.ValidationRules, q.ValidationRules) {
		t.Fatalf("validation rules changed on re-run: %v vs %v", q.ValidationRules, q2.ValidationRules)
	}
}

func TestValidationRules_DerivedIndependently(t *testing.T) {
	result := Standardize([]RawQuestion{{
		ID:        "23",
		Text:      "How severe is your pain?",
		Tier:      "GATEWAY",
		ScaleType: "0-10 scale (severity)",
	}})
	rules := result.Questions[0].ValidationRules
	if rules["required"] != true {
		t.Fatalf("gateway question should be required")
	}
	if rules["min"] != 0 || rules["max"] != 10 {
		t.Fatalf("expected numeric bounds in validation rules, got %v", rules)
	}

	expansion := Standardize([]RawQuestion{{
		ID:        "40",
		Text:      "Expansion follow-up",
		Tier:      "EXPANSION",
		ScaleType: "Yes/No",
	}})
	if expansion.Questions[0].ValidationRules["required"] != false {
		t.Fatalf("expansion questions default to optional")
	}
}

func TestStandardize_ConditionalLogicCarried(t *testing.T) {
	gt := 0.0
	result := Standardize([]RawQuestion{{
		ID:        "d5",
		Text:      "How long were you awake during the night?",
		ScaleType: "Number (minutes)",
		Condition: &ShowCondition{QuestionID: "d4", GreaterThan: &gt},
	}})
	logic := result.Questions[0].ConditionalLogic
	if logic == nil {
		t.Fatalf("expected conditional logic")
	}
	showIf, ok := logic["show_if"].(map[string]any)
	if !ok || showIf["operator"] != "greater_than" || showIf["question_id"] != "d4" {
		t.Fatalf("unexpected conditional logic: %v", logic)
	}
}

func TestCleanQuestionText(t *testing.T) {
	got := cleanQuestionText("How would you rate your sleep? (1-10)")
	if got != "How would you rate your sleep?" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
	got = cleanQuestionText("Do you snore? (Yes/No)")
	if got != "Do you snore?" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
}
