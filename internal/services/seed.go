package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/sleepintake-backend/internal/config"
	"github.com/yungbote/sleepintake-backend/internal/engine"
	"github.com/yungbote/sleepintake-backend/internal/logger"
	"github.com/yungbote/sleepintake-backend/internal/repos"
	"github.com/yungbote/sleepintake-backend/internal/standardize"
	"github.com/yungbote/sleepintake-backend/internal/types"
)

type SeedService interface {
	Seed(ctx context.Context, cfg *config.Config) error
}

type seedService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuestionRepo
	moduleRepo   repos.ModuleRepo
}

func NewSeedService(db *gorm.DB, log *logger.Logger, questionRepo repos.QuestionRepo, moduleRepo repos.ModuleRepo) SeedService {
	serviceLog := log.With("service", "SeedService")
	return &seedService{
		db:           db,
		log:          serviceLog,
		questionRepo: questionRepo,
		moduleRepo:   moduleRepo,
	}
}

// Seed standardizes the configured question set and writes the full
// catalog (questions, modules, module membership, day plan) to the
// database in one transaction. Re-running is safe: questions and modules
// upsert, membership and day tables are replaced wholesale.
func (ss *seedService) Seed(ctx context.Context, cfg *config.Config) error {
	result := standardize.Standardize(cfg.RawQuestions)
	for _, skipped := range result.Skipped {
		ss.log.Warn("Question skipped during standardization", "questionId", skipped.QuestionID, "reason", skipped.Reason)
	}
	ss.log.Info("Questions standardized", "converted", len(result.Questions), "skipped", len(result.Skipped))

	// Triggers are parsed here only for their diagnostics: authored
	// trigger text that no pattern recognizes should surface at seed
	// time, not at first evaluation.
	for _, question := range result.Questions {
		if _, diag := engine.ParseTrigger(question.Trigger, question.QuestionID); diag != nil {
			ss.log.Warn("Unparsed trigger text", "questionId", diag.QuestionID, "trigger", diag.Trigger)
		}
	}

	questionRows := make([]*types.AssessmentQuestion, 0, len(result.Questions))
	for _, question := range result.Questions {
		row, err := questionRow(question)
		if err != nil {
			return fmt.Errorf("question %s: %w", question.QuestionID, err)
		}
		questionRows = append(questionRows, row)
	}

	moduleRows := make([]*types.AssessmentModule, 0, len(cfg.Modules))
	linkRows := make([]*types.ModuleQuestion, 0)
	for _, module := range cfg.Modules {
		moduleRows = append(moduleRows, &types.AssessmentModule{
			ModuleID:         module.ModuleID,
			Name:             module.Name,
			Description:      module.Description,
			Pillar:           module.Pillar,
			Tier:             module.Tier,
			ModuleType:       string(module.Type),
			EstimatedMinutes: module.EstimatedMinutes,
		})
		for i, qid := range module.QuestionIDs {
			linkRows = append(linkRows, &types.ModuleQuestion{
				ModuleID:   module.ModuleID,
				QuestionID: qid,
				OrderIndex: i,
			})
		}
	}

	dayRows := make([]*types.DayModule, 0, len(cfg.DayAssignments))
	for _, assignment := range cfg.DayAssignments {
		dayRows = append(dayRows, &types.DayModule{
			DayNumber:  assignment.DayNumber,
			ModuleID:   assignment.ModuleID,
			OrderIndex: assignment.OrderIndex,
		})
	}

	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ss.questionRepo.UpsertAll(ctx, tx, questionRows); err != nil {
			return fmt.Errorf("upsert questions: %w", err)
		}
		if err := ss.moduleRepo.UpsertAll(ctx, tx, moduleRows); err != nil {
			return fmt.Errorf("upsert modules: %w", err)
		}
		if err := ss.moduleRepo.ReplaceModuleQuestions(ctx, tx, linkRows); err != nil {
			return fmt.Errorf("replace module questions: %w", err)
		}
		if err := ss.moduleRepo.ReplaceDayModules(ctx, tx, dayRows); err != nil {
			return fmt.Errorf("replace day modules: %w", err)
		}
		return nil
	})
	if err != nil {
		ss.log.Error("Seed failed", "error", err)
		return err
	}

	ss.log.Info("Seed complete",
		"questions", len(questionRows),
		"modules", len(moduleRows),
		"moduleQuestions", len(linkRows),
		"dayAssignments", len(dayRows))
	return nil
}

func questionRow(question standardize.Question) (*types.AssessmentQuestion, error) {
	row := &types.AssessmentQuestion{
		QuestionID:           question.QuestionID,
		QuestionText:         question.QuestionText,
		HelpText:             question.HelpText,
		Pillar:               question.Pillar,
		Tier:                 question.Tier,
		AnswerFormat:         string(question.AnswerFormat),
		EstimatedTimeSeconds: question.EstimatedTimeSeconds,
		Trigger:              question.Trigger,
	}

	formatConfig, err := json.Marshal(question.FormatConfig)
	if err != nil {
		return nil, fmt.Errorf("marshal format config: %w", err)
	}
	row.FormatConfig = datatypes.JSON(formatConfig)

	if question.ValidationRules != nil {
		rules, err := json.Marshal(question.ValidationRules)
		if err != nil {
			return nil, fmt.Errorf("marshal validation rules: %w", err)
		}
		row.ValidationRules = datatypes.JSON(rules)
	}
	if question.ConditionalLogic != nil {
		logic, err := json.Marshal(question.ConditionalLogic)
		if err != nil {
			return nil, fmt.Errorf("marshal conditional logic: %w", err)
		}
		row.ConditionalLogic = datatypes.JSON(logic)
	}
	return row, nil
}
