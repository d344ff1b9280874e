package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Milestone is one step of a roadmap. SortOrder is the 1-based position in
// the sequence the model returned; display grouping by week never reorders
// the stored sequence.
type Milestone struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RoadmapID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uniq_milestone_sort,priority:1" json:"roadmap_id"`
	Roadmap        *Roadmap   `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `gorm:"not null" json:"description"`
	WeekNumber     int        `gorm:"column:week_number;not null" json:"week_number"`
	SortOrder      int        `gorm:"column:sort_order;not null;uniqueIndex:uniq_milestone_sort,priority:2" json:"order"`
	EstimatedHours float64    `gorm:"column:estimated_hours;not null" json:"estimated_hours"`
	IsCompleted    bool       `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Resources      []Resource `gorm:"foreignKey:MilestoneID" json:"resources,omitempty"`
}

func (Milestone) TableName() string { return "milestone" }

func (m *Milestone) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
