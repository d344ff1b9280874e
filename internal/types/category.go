package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryTypeCoding   = "coding"
	CategoryTypeLanguage = "language"
	CategoryTypeFitness  = "fitness"
	CategoryTypeOther    = "other"
)

func ValidCategoryType(t string) bool {
	switch t {
	case CategoryTypeCoding, CategoryTypeLanguage, CategoryTypeFitness, CategoryTypeOther:
		return true
	}
	return false
}

type Category struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	CategoryType string    `gorm:"column:category_type;not null" json:"category_type"`
	Description  string    `json:"description"`
}

func (Category) TableName() string { return "category" }

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
