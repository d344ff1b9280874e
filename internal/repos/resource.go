package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/types"
)

type ResourceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error)
	// GetWithGoal loads a resource with the full ownership chain
	// Resource → Milestone → Roadmap → Goal.
	GetWithGoal(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) (*types.Resource, error)
	Save(ctx context.Context, tx *gorm.DB, resource *types.Resource) error
	DeleteByMilestoneIDs(ctx context.Context, tx *gorm.DB, milestoneIDs []uuid.UUID) error
}

type resourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return &resourceRepo{db: db, log: baseLog.With("repo", "ResourceRepo")}
}

func (rr *resourceRepo) Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(resources) == 0 {
		return []*types.Resource{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (rr *resourceRepo) GetWithGoal(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) (*types.Resource, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Resource
	if err := transaction.WithContext(ctx).
		Preload("Milestone.Roadmap.Goal").
		Where("id = ?", resourceID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *resourceRepo) Save(ctx context.Context, tx *gorm.DB, resource *types.Resource) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Resource{}).
		Where("id = ?", resource.ID).
		Updates(map[string]interface{}{
			"is_completed": resource.IsCompleted,
			"completed_at": resource.CompletedAt,
		}).Error
}

func (rr *resourceRepo) DeleteByMilestoneIDs(ctx context.Context, tx *gorm.DB, milestoneIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(milestoneIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("milestone_id IN ?", milestoneIDs).
		Delete(&types.Resource{}).Error
}
