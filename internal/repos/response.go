package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/sleepintake-backend/internal/engine"
	"github.com/yungbote/sleepintake-backend/internal/logger"
	"github.com/yungbote/sleepintake-backend/internal/types"
)

type ResponseRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, response *types.AssessmentResponse) (*types.AssessmentResponse, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.AssessmentResponse, error)
	GetSnapshot(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (engine.Snapshot, error)
}

type responseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	repoLog := baseLog.With("repo", "ResponseRepo")
	return &responseRepo{db: db, log: repoLog}
}

// Upsert stores the answer, replacing any earlier answer the user gave to
// the same question.
func (rr *responseRepo) Upsert(ctx context.Context, tx *gorm.DB, response *types.AssessmentResponse) (*types.AssessmentResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	response.UpdatedAt = time.Now().UTC()
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"response_value", "day_number", "updated_at"}),
		}).
		Create(response).Error; err != nil {
		return nil, err
	}
	return response, nil
}

func (rr *responseRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.AssessmentResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.AssessmentResponse
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("question_id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetSnapshot loads all of the user's answers keyed by question id, the
// shape the condition evaluator reads.
func (rr *responseRepo) GetSnapshot(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (engine.Snapshot, error) {
	responses, err := rr.GetByUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	snapshot := make(engine.Snapshot, len(responses))
	for _, response := range responses {
		snapshot[response.QuestionID] = response.ResponseValue
	}
	return snapshot, nil
}
