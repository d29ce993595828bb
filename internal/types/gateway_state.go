package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GatewayState is the latest evaluation outcome of one gateway for one
// user. EvaluationData keeps the condition and the exact answers it read,
// so the physician view can explain why the gateway fired without
// replaying response history. TriggeredAt is set the first time the
// gateway fires and kept on later re-evaluations.
type GatewayState struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_user_gateway;not null;column:user_id" json:"user_id"`
	GatewayID       string         `gorm:"uniqueIndex:idx_user_gateway;not null;column:gateway_id" json:"gateway_id"`
	Triggered       bool           `gorm:"not null;column:triggered" json:"triggered"`
	TriggeredAt     *time.Time     `gorm:"column:triggered_at" json:"triggered_at,omitempty"`
	LastEvaluatedAt time.Time      `gorm:"not null;column:last_evaluated_at" json:"last_evaluated_at"`
	EvaluationData  datatypes.JSON `gorm:"column:evaluation_data;type:jsonb" json:"evaluation_data,omitempty"`
	Reason          string         `gorm:"column:reason" json:"reason,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (GatewayState) TableName() string { return "gateway_state" }
