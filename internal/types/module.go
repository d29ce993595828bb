package types

import (
	"time"

	"github.com/google/uuid"
)

type AssessmentModule struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID         string    `gorm:"uniqueIndex;not null;column:module_id" json:"module_id"`
	Name             string    `gorm:"not null;column:name" json:"name"`
	Description      string    `gorm:"column:description" json:"description,omitempty"`
	Pillar           string    `gorm:"column:pillar" json:"pillar"`
	Tier             string    `gorm:"column:tier" json:"tier"`
	ModuleType       string    `gorm:"not null;column:module_type" json:"module_type"`
	EstimatedMinutes float64   `gorm:"column:estimated_minutes" json:"estimated_minutes"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (AssessmentModule) TableName() string { return "assessment_module" }

// ModuleQuestion links a question into a module at a position.
type ModuleQuestion struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID   string    `gorm:"uniqueIndex:idx_module_question;not null;column:module_id" json:"module_id"`
	QuestionID string    `gorm:"uniqueIndex:idx_module_question;not null;column:question_id" json:"question_id"`
	OrderIndex int       `gorm:"not null;column:order_index" json:"order_index"`
}

func (ModuleQuestion) TableName() string { return "module_question" }

// DayModule assigns a module to a day of the intake at a position.
type DayModule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DayNumber  int       `gorm:"uniqueIndex:idx_day_module;not null;column:day_number" json:"day_number"`
	ModuleID   string    `gorm:"uniqueIndex:idx_day_module;not null;column:module_id" json:"module_id"`
	OrderIndex int       `gorm:"not null;column:order_index" json:"order_index"`
}

func (DayModule) TableName() string { return "day_module" }
