package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Goal is a user's declared learning goal. It exclusively owns its Roadmap;
// deleting the goal destroys the whole generated tree.
type Goal struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User                *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CategoryID          uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Category            *Category `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Title               string    `gorm:"not null" json:"title"`
	Description         string    `gorm:"not null" json:"description"`
	Difficulty          string    `gorm:"not null" json:"difficulty"`
	HoursPerWeek        int       `gorm:"not null" json:"hours_per_week"`
	TargetDurationWeeks int       `gorm:"not null" json:"target_duration_weeks"`
	IsActive            bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
	Roadmap             *Roadmap  `gorm:"foreignKey:GoalID" json:"roadmap,omitempty"`
}

func (Goal) TableName() string { return "goal" }

func (g *Goal) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
