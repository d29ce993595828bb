package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/sleepintake-backend/internal/catalog"
	"github.com/yungbote/sleepintake-backend/internal/config"
	"github.com/yungbote/sleepintake-backend/internal/engine"
	"github.com/yungbote/sleepintake-backend/internal/repos"
	"github.com/yungbote/sleepintake-backend/internal/standardize"
	"github.com/yungbote/sleepintake-backend/internal/types"
)

func newTestService(t *testing.T) AssessmentService {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&types.AssessmentResponse{}, &types.GatewayState{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Defaults()
	c, warnings := catalog.New(standardize.Standardize(cfg.RawQuestions).Questions, cfg.Modules)
	if len(warnings) != 0 {
		t.Fatalf("catalog warnings: %v", warnings)
	}
	planner := catalog.NewPlanner(c, cfg.DayAssignments)

	return NewAssessmentService(
		gdb, nil,
		repos.NewResponseRepo(gdb, nil),
		repos.NewGatewayStateRepo(gdb, nil),
		nil,
		engine.NewEvaluator(nil),
		cfg.Gateways,
		c,
		planner,
	)
}

func TestSaveResponse_TriggersGateway(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	results, err := svc.SaveResponse(ctx, userID, "3", "Yes", nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	byID := make(map[string]engine.GatewayResult, len(results))
	for _, r := range results {
		byID[r.GatewayID] = r
	}

	insomnia := byID["insomnia"]
	if !insomnia.Triggered {
		t.Fatalf("insomnia gateway should trigger on question 3 = Yes: %+v", insomnia)
	}
	if insomnia.EvaluationSnapshot["3"] != "Yes" {
		t.Fatalf("evaluation snapshot should hold the trigger answer: %+v", insomnia.EvaluationSnapshot)
	}

	// Gateways whose trigger questions are unanswered stay pending, not
	// resolved false.
	if got := byID["depression"]; got.Triggered || !got.Pending() {
		t.Fatalf("depression gateway should be pending: %+v", got)
	}
}

func TestSaveResponse_UnlocksExpansionDay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	// Day 5 carries only the sleep-quality expansion module, so before any
	// gateway fires it is empty.
	plan, err := svc.GetDayPlan(ctx, userID, 5)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Questions) != 0 {
		t.Fatalf("day 5 should be empty before unlock, got %d questions", len(plan.Questions))
	}

	if _, err := svc.SaveResponse(ctx, userID, "3", "Yes", nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	plan, err = svc.GetDayPlan(ctx, userID, 5)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Questions) == 0 {
		t.Fatalf("day 5 should carry the unlocked expansion module")
	}
	for _, q := range plan.Questions {
		if q.ModuleID != "expansion_sleep_quality" {
			t.Fatalf("unexpected module on day 5: %s", q.ModuleID)
		}
		if q.QuestionText == "" || q.AnswerFormat == "" {
			t.Fatalf("plan entry missing question payload: %+v", q)
		}
	}
}

func TestSaveResponse_UpsertKeepsOneRow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.SaveResponse(ctx, userID, "3", "Yes", nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.SaveResponse(ctx, userID, "3", "No", nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	responses, err := svc.GetResponses(ctx, userID)
	if err != nil {
		t.Fatalf("get responses: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected one row per (user, question), got %d", len(responses))
	}
	if responses[0].ResponseValue != "No" {
		t.Fatalf("latest answer should win, got %q", responses[0].ResponseValue)
	}
}

func TestSaveResponse_TriggeredAtSurvivesRetraction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.SaveResponse(ctx, userID, "3", "Yes", nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	states, err := svc.GetGatewayStates(ctx, userID)
	if err != nil {
		t.Fatalf("get states: %v", err)
	}
	var firstTriggeredAt *types.GatewayState
	for _, s := range states {
		if s.GatewayID == "insomnia" {
			firstTriggeredAt = s
		}
	}
	if firstTriggeredAt == nil || firstTriggeredAt.TriggeredAt == nil {
		t.Fatalf("insomnia state should record triggered_at")
	}

	// Changing the answer resolves the gateway false but keeps the record
	// of when it first fired.
	if _, err := svc.SaveResponse(ctx, userID, "3", "No", nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	states, err = svc.GetGatewayStates(ctx, userID)
	if err != nil {
		t.Fatalf("get states: %v", err)
	}
	for _, s := range states {
		if s.GatewayID != "insomnia" {
			continue
		}
		if s.Triggered {
			t.Fatalf("insomnia should no longer be triggered")
		}
		if s.TriggeredAt == nil || !s.TriggeredAt.Equal(*firstTriggeredAt.TriggeredAt) {
			t.Fatalf("triggered_at should survive re-evaluation: %v", s.TriggeredAt)
		}
	}
}

func TestSaveResponse_UnknownQuestion(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.SaveResponse(context.Background(), uuid.New(), "nope", "Yes", nil); err == nil {
		t.Fatalf("expected error for unknown question id")
	}
}
