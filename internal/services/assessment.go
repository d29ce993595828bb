package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/sleepintake-backend/internal/catalog"
	"github.com/yungbote/sleepintake-backend/internal/engine"
	"github.com/yungbote/sleepintake-backend/internal/logger"
	"github.com/yungbote/sleepintake-backend/internal/repos"
	"github.com/yungbote/sleepintake-backend/internal/types"
)

// DayPlanQuestion is one renderable slot of a user's day: the planner's
// (module, question) pair joined with the question's presentation payload.
type DayPlanQuestion struct {
	ModuleID             string         `json:"moduleId"`
	QuestionID           string         `json:"questionId"`
	QuestionText         string         `json:"questionText"`
	HelpText             string         `json:"helpText,omitempty"`
	Pillar               string         `json:"pillar,omitempty"`
	AnswerFormat         string         `json:"answerFormat"`
	FormatConfig         map[string]any `json:"formatConfig,omitempty"`
	ValidationRules      map[string]any `json:"validationRules,omitempty"`
	ConditionalLogic     map[string]any `json:"conditionalLogic,omitempty"`
	EstimatedTimeSeconds int            `json:"estimatedTimeSeconds"`
}

type DayPlan struct {
	DayNumber int               `json:"dayNumber"`
	Questions []DayPlanQuestion `json:"questions"`
}

type AssessmentService interface {
	SaveResponse(ctx context.Context, userID uuid.UUID, questionID, value string, dayNumber *int) ([]engine.GatewayResult, error)
	GetDayPlan(ctx context.Context, userID uuid.UUID, dayNumber int) (*DayPlan, error)
	GetDaySummary(ctx context.Context, userID uuid.UUID, dayNumber int) ([]catalog.ModuleSummary, error)
	GetGatewayStates(ctx context.Context, userID uuid.UUID) ([]*types.GatewayState, error)
	GetResponses(ctx context.Context, userID uuid.UUID) ([]*types.AssessmentResponse, error)
}

type assessmentService struct {
	db               *gorm.DB
	log              *logger.Logger
	responseRepo     repos.ResponseRepo
	gatewayStateRepo repos.GatewayStateRepo
	cache            SnapshotCache
	evaluator        *engine.Evaluator
	gateways         []engine.Gateway
	catalog          *catalog.Catalog
	planner          *catalog.Planner
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	responseRepo repos.ResponseRepo,
	gatewayStateRepo repos.GatewayStateRepo,
	cache SnapshotCache,
	evaluator *engine.Evaluator,
	gateways []engine.Gateway,
	c *catalog.Catalog,
	planner *catalog.Planner,
) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	return &assessmentService{
		db:               db,
		log:              serviceLog,
		responseRepo:     responseRepo,
		gatewayStateRepo: gatewayStateRepo,
		cache:            cache,
		evaluator:        evaluator,
		gateways:         gateways,
		catalog:          c,
		planner:          planner,
	}
}

// SaveResponse stores an answer and re-evaluates every gateway against the
// user's full answer set. Gateway state rows are written latest-wins;
// results come back in gateway declaration order so callers see a stable
// shape.
func (as *assessmentService) SaveResponse(ctx context.Context, userID uuid.UUID, questionID, value string, dayNumber *int) ([]engine.GatewayResult, error) {
	if _, ok := as.catalog.Question(questionID); !ok {
		return nil, fmt.Errorf("unknown question %q", questionID)
	}

	response := &types.AssessmentResponse{
		UserID:        userID,
		QuestionID:    questionID,
		ResponseValue: value,
		DayNumber:     dayNumber,
	}
	if _, err := as.responseRepo.Upsert(ctx, nil, response); err != nil {
		as.log.Error("Failed to save response", "userId", userID, "questionId", questionID, "error", err)
		return nil, fmt.Errorf("save response: %w", err)
	}
	if as.cache != nil {
		as.cache.Invalidate(ctx, userID)
	}

	snapshot, err := as.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := as.evaluator.EvaluateAll(as.gateways, snapshot)
	now := time.Now().UTC()

	ordered := make([]engine.GatewayResult, 0, len(as.gateways))
	for _, gateway := range as.gateways {
		result := results[gateway.GatewayID]
		ordered = append(ordered, result)

		state := &types.GatewayState{
			UserID:          userID,
			GatewayID:       gateway.GatewayID,
			Triggered:       result.Triggered,
			LastEvaluatedAt: now,
			Reason:          result.Reason,
		}
		if result.Triggered {
			state.TriggeredAt = &now
		}
		if evidence := evaluationEvidence(gateway, result); evidence != nil {
			state.EvaluationData = evidence
		}
		if _, err := as.gatewayStateRepo.Save(ctx, nil, state); err != nil {
			as.log.Error("Failed to save gateway state", "userId", userID, "gatewayId", gateway.GatewayID, "error", err)
			return nil, fmt.Errorf("save gateway state: %w", err)
		}
	}
	return ordered, nil
}

// evaluationEvidence packs the condition that was evaluated and the exact
// answers it read, so a stored gateway state explains itself.
func evaluationEvidence(gateway engine.Gateway, result engine.GatewayResult) datatypes.JSON {
	if result.EvaluationSnapshot == nil {
		return nil
	}
	evidence := map[string]any{"snapshot": result.EvaluationSnapshot}
	if gateway.Condition != nil {
		if condition, err := engine.MarshalCondition(gateway.Condition); err == nil {
			evidence["condition"] = json.RawMessage(condition)
		}
	}
	raw, err := json.Marshal(evidence)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// GetDayPlan resolves the user's plan for one day. Expansion modules only
// appear once the user's answers have triggered the gateway that unlocks
// them; before that the day shows its static core and gateway modules.
func (as *assessmentService) GetDayPlan(ctx context.Context, userID uuid.UUID, dayNumber int) (*DayPlan, error) {
	unlocked, err := as.unlockedModules(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := as.planner.PlanDay(dayNumber, unlocked)
	plan := &DayPlan{DayNumber: dayNumber, Questions: make([]DayPlanQuestion, 0, len(entries))}
	for _, entry := range entries {
		question, ok := as.catalog.Question(entry.QuestionID)
		if !ok {
			continue
		}
		plan.Questions = append(plan.Questions, DayPlanQuestion{
			ModuleID:             entry.ModuleID,
			QuestionID:           question.QuestionID,
			QuestionText:         question.QuestionText,
			HelpText:             question.HelpText,
			Pillar:               question.Pillar,
			AnswerFormat:         string(question.AnswerFormat),
			FormatConfig:         question.FormatConfig,
			ValidationRules:      question.ValidationRules,
			ConditionalLogic:     question.ConditionalLogic,
			EstimatedTimeSeconds: question.EstimatedTimeSeconds,
		})
	}
	return plan, nil
}

func (as *assessmentService) GetDaySummary(ctx context.Context, userID uuid.UUID, dayNumber int) ([]catalog.ModuleSummary, error) {
	unlocked, err := as.unlockedModules(ctx, userID)
	if err != nil {
		return nil, err
	}
	return as.planner.DaySummary(dayNumber, unlocked), nil
}

func (as *assessmentService) GetGatewayStates(ctx context.Context, userID uuid.UUID) ([]*types.GatewayState, error) {
	return as.gatewayStateRepo.GetByUser(ctx, nil, userID)
}

func (as *assessmentService) GetResponses(ctx context.Context, userID uuid.UUID) ([]*types.AssessmentResponse, error) {
	return as.responseRepo.GetByUser(ctx, nil, userID)
}

// unlockedModules recomputes the triggered-module union from the current
// snapshot rather than reading persisted gateway rows, so plan reads always
// reflect the latest answers even if a state write ever lagged.
func (as *assessmentService) unlockedModules(ctx context.Context, userID uuid.UUID) ([]string, error) {
	snapshot, err := as.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return as.evaluator.TriggeredModules(as.gateways, snapshot), nil
}

func (as *assessmentService) loadSnapshot(ctx context.Context, userID uuid.UUID) (engine.Snapshot, error) {
	if as.cache != nil {
		if snapshot, ok := as.cache.Get(ctx, userID); ok {
			return snapshot, nil
		}
	}
	snapshot, err := as.responseRepo.GetSnapshot(ctx, nil, userID)
	if err != nil {
		as.log.Error("Failed to load response snapshot", "userId", userID, "error", err)
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if as.cache != nil {
		as.cache.Set(ctx, userID, snapshot)
	}
	return snapshot, nil
}
