package catalog

import (
	"reflect"
	"strings"
	"testing"

	"github.com/yungbote/sleepintake-backend/internal/standardize"
)

func testQuestions(ids ...string) []standardize.Question {
	questions := make([]standardize.Question, 0, len(ids))
	for _, id := range ids {
		questions = append(questions, standardize.Question{
			QuestionID:   id,
			QuestionText: "q " + id,
			AnswerFormat: standardize.FormatSingleSelectChip,
		})
	}
	return questions
}

func TestNew_DanglingReferenceReportedModuleKept(t *testing.T) {
	c, warnings := New(testQuestions("1", "2"), []Module{{
		ModuleID:    "core_sleep_quality",
		Name:        "Sleep Quality",
		Type:        ModuleTypeCore,
		QuestionIDs: []string{"1", "missing", "2"},
	}})

	if len(warnings) != 1 || !strings.Contains(warnings[0], "missing") {
		t.Fatalf("expected one dangling-reference warning, got %v", warnings)
	}
	module, ok := c.Module("core_sleep_quality")
	if !ok {
		t.Fatalf("module should be kept despite dangling reference")
	}
	if !reflect.DeepEqual(module.QuestionIDs, []string{"1", "2"}) {
		t.Fatalf("expected resolvable questions only, got %v", module.QuestionIDs)
	}
}

func TestValidateKeywordTargets(t *testing.T) {
	c, _ := New(testQuestions("22", "29"), nil)
	warnings := c.ValidateKeywordTargets(map[string]string{
		"pain":     "22",
		"caffeine": "29",
		"alcohol":  "32",
	})
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"32"`) {
		t.Fatalf("expected a warning for the missing alcohol target, got %v", warnings)
	}
}

func plannerFixture(t *testing.T) *Planner {
	t.Helper()
	c, warnings := New(
		testQuestions("1", "2", "3", "40", "41"),
		[]Module{
			{ModuleID: "core_sleep_quality", Name: "Sleep Quality", Type: ModuleTypeCore, QuestionIDs: []string{"1", "2"}},
			{ModuleID: "gateway_sleep_quality", Name: "Sleep Quality Gateway", Type: ModuleTypeGateway, QuestionIDs: []string{"3"}},
			{ModuleID: "expansion_sleep_quality", Name: "Sleep Quality Deep Dive", Type: ModuleTypeExpansion, QuestionIDs: []string{"40", "41"}},
		},
	)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	return NewPlanner(c, []DayAssignment{
		{DayNumber: 1, ModuleID: "gateway_sleep_quality", OrderIndex: 1},
		{DayNumber: 1, ModuleID: "core_sleep_quality", OrderIndex: 0},
		{DayNumber: 5, ModuleID: "expansion_sleep_quality", OrderIndex: 0},
	})
}

func TestPlanDay_StaticOrdering(t *testing.T) {
	p := plannerFixture(t)
	entries := p.PlanDay(1, nil)
	want := []PlanEntry{
		{ModuleID: "core_sleep_quality", QuestionID: "1"},
		{ModuleID: "core_sleep_quality", QuestionID: "2"},
		{ModuleID: "gateway_sleep_quality", QuestionID: "3"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("expected %v, got %v", want, entries)
	}
}

func TestPlanDay_ExpansionRequiresUnlock(t *testing.T) {
	p := plannerFixture(t)

	if entries := p.PlanDay(5, nil); len(entries) != 0 {
		t.Fatalf("locked expansion day should be empty, got %v", entries)
	}

	entries := p.PlanDay(5, []string{"expansion_sleep_quality"})
	want := []PlanEntry{
		{ModuleID: "expansion_sleep_quality", QuestionID: "40"},
		{ModuleID: "expansion_sleep_quality", QuestionID: "41"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("expected %v, got %v", want, entries)
	}
}

func TestPlanDay_Deterministic(t *testing.T) {
	p := plannerFixture(t)
	unlocked := []string{"expansion_sleep_quality"}
	first := p.PlanDay(5, unlocked)
	for i := 0; i < 10; i++ {
		if next := p.PlanDay(5, unlocked); !reflect.DeepEqual(first, next) {
			t.Fatalf("plan differs between runs: %v vs %v", first, next)
		}
	}
}

func TestDaySummary(t *testing.T) {
	p := plannerFixture(t)
	summaries := p.DaySummary(1, nil)
	if len(summaries) != 2 {
		t.Fatalf("expected two modules on day 1, got %v", summaries)
	}
	if summaries[0].ModuleID != "core_sleep_quality" || summaries[0].QuestionCount != 2 {
		t.Fatalf("unexpected first summary: %+v", summaries[0])
	}
}
