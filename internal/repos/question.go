package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/sleepintake-backend/internal/logger"
	"github.com/yungbote/sleepintake-backend/internal/types"
)

type QuestionRepo interface {
	UpsertAll(ctx context.Context, tx *gorm.DB, questions []*types.AssessmentQuestion) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.AssessmentQuestion, error)
	GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []string) ([]*types.AssessmentQuestion, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	repoLog := baseLog.With("repo", "QuestionRepo")
	return &questionRepo{db: db, log: repoLog}
}

func (qr *questionRepo) UpsertAll(ctx context.Context, tx *gorm.DB, questions []*types.AssessmentQuestion) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(questions) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"question_text", "help_text", "pillar", "tier", "answer_format",
				"format_config", "validation_rules", "conditional_logic",
				"estimated_time_seconds", "trigger", "updated_at",
			}),
		}).
		Create(&questions).Error
}

func (qr *questionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.AssessmentQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.AssessmentQuestion
	if err := transaction.WithContext(ctx).
		Order("question_id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionRepo) GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []string) ([]*types.AssessmentQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.AssessmentQuestion
	if len(questionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
