package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roadmap is the generated plan for one goal. Created exactly once after a
// successful generation call and never regenerated; only the completion
// flags on its children change afterwards.
type Roadmap struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GoalID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"goal_id"`
	Goal        *Goal          `gorm:"constraint:OnDelete:CASCADE;foreignKey:GoalID;references:ID" json:"goal,omitempty"`
	AISummary   string         `gorm:"column:ai_summary;not null" json:"ai_summary"`
	GeneratedAt time.Time      `gorm:"not null" json:"generated_at"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	Milestones  []Milestone    `gorm:"foreignKey:RoadmapID" json:"milestones,omitempty"`
}

func (Roadmap) TableName() string { return "roadmap" }

func (r *Roadmap) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
