package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Primary keys are assigned in Go rather than by a database default so the
// same models work on both Postgres and the sqlite fallback.

func (q *AssessmentQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (m *AssessmentModule) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (mq *ModuleQuestion) BeforeCreate(tx *gorm.DB) error {
	if mq.ID == uuid.Nil {
		mq.ID = uuid.New()
	}
	return nil
}

func (dm *DayModule) BeforeCreate(tx *gorm.DB) error {
	if dm.ID == uuid.Nil {
		dm.ID = uuid.New()
	}
	return nil
}

func (r *AssessmentResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (g *GatewayState) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
