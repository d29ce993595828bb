package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/sleepintake-backend/internal/logger"
	"github.com/yungbote/sleepintake-backend/internal/types"
)

type ModuleRepo interface {
	UpsertAll(ctx context.Context, tx *gorm.DB, modules []*types.AssessmentModule) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.AssessmentModule, error)
	ReplaceModuleQuestions(ctx context.Context, tx *gorm.DB, links []*types.ModuleQuestion) error
	ReplaceDayModules(ctx context.Context, tx *gorm.DB, assignments []*types.DayModule) error
	GetDayModules(ctx context.Context, tx *gorm.DB) ([]*types.DayModule, error)
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	repoLog := baseLog.With("repo", "ModuleRepo")
	return &moduleRepo{db: db, log: repoLog}
}

func (mr *moduleRepo) UpsertAll(ctx context.Context, tx *gorm.DB, modules []*types.AssessmentModule) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(modules) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "module_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "pillar", "tier", "module_type",
				"estimated_minutes", "updated_at",
			}),
		}).
		Create(&modules).Error
}

func (mr *moduleRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.AssessmentModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.AssessmentModule
	if err := transaction.WithContext(ctx).
		Order("module_id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ReplaceModuleQuestions swaps the full module-to-question mapping. The
// seed tool is the only writer, so wholesale replacement keeps the table
// exactly in step with the catalog.
func (mr *moduleRepo) ReplaceModuleQuestions(ctx context.Context, tx *gorm.DB, links []*types.ModuleQuestion) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.ModuleQuestion{}).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&links).Error
}

func (mr *moduleRepo) ReplaceDayModules(ctx context.Context, tx *gorm.DB, assignments []*types.DayModule) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.DayModule{}).Error; err != nil {
		return err
	}
	if len(assignments) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&assignments).Error
}

func (mr *moduleRepo) GetDayModules(ctx context.Context, tx *gorm.DB) ([]*types.DayModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.DayModule
	if err := transaction.WithContext(ctx).
		Order("day_number, order_index").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
