package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AssessmentQuestion struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID           string         `gorm:"uniqueIndex;not null;column:question_id" json:"question_id"`
	QuestionText         string         `gorm:"not null;column:question_text" json:"question_text"`
	HelpText             string         `gorm:"column:help_text" json:"help_text,omitempty"`
	Pillar               string         `gorm:"column:pillar" json:"pillar"`
	Tier                 string         `gorm:"column:tier" json:"tier"`
	AnswerFormat         string         `gorm:"not null;column:answer_format" json:"answer_format"`
	FormatConfig         datatypes.JSON `gorm:"column:format_config;type:jsonb" json:"format_config"`
	ValidationRules      datatypes.JSON `gorm:"column:validation_rules;type:jsonb" json:"validation_rules,omitempty"`
	ConditionalLogic     datatypes.JSON `gorm:"column:conditional_logic;type:jsonb" json:"conditional_logic,omitempty"`
	EstimatedTimeSeconds int            `gorm:"column:estimated_time_seconds" json:"estimated_time_seconds"`
	Trigger              string         `gorm:"column:trigger" json:"trigger,omitempty"`
	CreatedAt            time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null" json:"updated_at"`
}

func (AssessmentQuestion) TableName() string { return "assessment_question" }
