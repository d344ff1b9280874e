package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressEntry is an independent per-(user, milestone) log. It is created
// lazily on the first completion toggle and overwritten in place afterwards.
type ProgressEntry struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_user_milestone,priority:1" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	MilestoneID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_user_milestone,priority:2" json:"milestone_id"`
	Milestone   *Milestone `gorm:"constraint:OnDelete:CASCADE;foreignKey:MilestoneID;references:ID" json:"milestone,omitempty"`
	Notes       string     `json:"notes"`
	HoursSpent  float64    `gorm:"column:hours_spent;not null;default:0" json:"hours_spent"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (ProgressEntry) TableName() string { return "progress_entry" }

func (p *ProgressEntry) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
