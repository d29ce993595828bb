package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/sleepintake-backend/internal/logger"
	"github.com/yungbote/sleepintake-backend/internal/types"
)

type GatewayStateRepo interface {
	Save(ctx context.Context, tx *gorm.DB, state *types.GatewayState) (*types.GatewayState, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.GatewayState, error)
}

type gatewayStateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGatewayStateRepo(db *gorm.DB, baseLog *logger.Logger) GatewayStateRepo {
	repoLog := baseLog.With("repo", "GatewayStateRepo")
	return &gatewayStateRepo{db: db, log: repoLog}
}

// Save writes the latest evaluation of one gateway for one user. An
// existing row is updated in place; triggered_at survives re-evaluations
// once set, so it records the first time the gateway fired.
func (gr *gatewayStateRepo) Save(ctx context.Context, tx *gorm.DB, state *types.GatewayState) (*types.GatewayState, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var existing types.GatewayState
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND gateway_id = ?", state.UserID, state.GatewayID).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err := transaction.WithContext(ctx).Create(state).Error; err != nil {
			return nil, err
		}
		return state, nil
	}

	if existing.TriggeredAt != nil {
		state.TriggeredAt = existing.TriggeredAt
	}
	state.ID = existing.ID
	state.CreatedAt = existing.CreatedAt
	if err := transaction.WithContext(ctx).
		Model(&existing).
		Updates(map[string]any{
			"triggered":         state.Triggered,
			"triggered_at":      state.TriggeredAt,
			"last_evaluated_at": state.LastEvaluatedAt,
			"evaluation_data":   state.EvaluationData,
			"reason":            state.Reason,
		}).Error; err != nil {
		return nil, err
	}
	return state, nil
}

func (gr *gatewayStateRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.GatewayState, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.GatewayState
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("gateway_id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
