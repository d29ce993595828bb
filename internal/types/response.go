package types

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentResponse is a user's latest answer to one question. The unique
// index enforces at most one row per (user, question); writes upsert with
// last-write-wins semantics.
type AssessmentResponse struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_question;not null;column:user_id" json:"user_id"`
	QuestionID    string    `gorm:"uniqueIndex:idx_user_question;not null;column:question_id" json:"question_id"`
	ResponseValue string    `gorm:"column:response_value" json:"response_value"`
	DayNumber     *int      `gorm:"column:day_number" json:"day_number,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (AssessmentResponse) TableName() string { return "assessment_response" }
