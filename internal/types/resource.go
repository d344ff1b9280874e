package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ResourceTypeVideo    = "video"
	ResourceTypeArticle  = "article"
	ResourceTypeCourse   = "course"
	ResourceTypeBook     = "book"
	ResourceTypePractice = "practice"
	ResourceTypeOther    = "other"
)

func ValidResourceType(t string) bool {
	switch t {
	case ResourceTypeVideo, ResourceTypeArticle, ResourceTypeCourse,
		ResourceTypeBook, ResourceTypePractice, ResourceTypeOther:
		return true
	}
	return false
}

type Resource struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MilestoneID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"milestone_id"`
	Milestone         *Milestone `gorm:"constraint:OnDelete:CASCADE;foreignKey:MilestoneID;references:ID" json:"milestone,omitempty"`
	Title             string     `gorm:"not null" json:"title"`
	URL               string     `gorm:"not null" json:"url"`
	ResourceType      string     `gorm:"column:resource_type;not null" json:"resource_type"`
	IsFree            bool       `gorm:"column:is_free;not null;default:true" json:"is_free"`
	EstimatedDuration string     `gorm:"column:estimated_duration" json:"estimated_duration"`
	Description       string     `json:"description"`
	IsCompleted       bool       `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	CompletedAt       *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (Resource) TableName() string { return "resource" }

func (r *Resource) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
