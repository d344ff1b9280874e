package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/types"
)

type GoalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) (*types.Goal, error)
	GetByID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) (*types.Goal, error)
	ListActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Goal, error)
	Delete(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) error
}

type goalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, baseLog *logger.Logger) GoalRepo {
	return &goalRepo{db: db, log: baseLog.With("repo", "GoalRepo")}
}

func (gr *goalRepo) Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) (*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if err := transaction.WithContext(ctx).Create(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

func (gr *goalRepo) GetByID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) (*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var result types.Goal
	if err := transaction.WithContext(ctx).
		Preload("Category").
		Where("id = ?", goalID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (gr *goalRepo) ListActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.Goal
	if err := transaction.WithContext(ctx).
		Preload("Category").
		Preload("Roadmap").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *goalRepo) Delete(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", goalID).
		Delete(&types.Goal{}).Error
}
