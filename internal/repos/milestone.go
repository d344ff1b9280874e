package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/types"
)

type MilestoneRepo interface {
	Create(ctx context.Context, tx *gorm.DB, milestone *types.Milestone) (*types.Milestone, error)
	// GetWithGoal loads a milestone with its owning roadmap and goal so
	// callers can walk the ownership chain.
	GetWithGoal(ctx context.Context, tx *gorm.DB, milestoneID uuid.UUID) (*types.Milestone, error)
	ListByRoadmap(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]*types.Milestone, error)
	CountByRoadmap(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) (total int64, completed int64, err error)
	Save(ctx context.Context, tx *gorm.DB, milestone *types.Milestone) error
	DeleteByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) error
}

type milestoneRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMilestoneRepo(db *gorm.DB, baseLog *logger.Logger) MilestoneRepo {
	return &milestoneRepo{db: db, log: baseLog.With("repo", "MilestoneRepo")}
}

func (mr *milestoneRepo) Create(ctx context.Context, tx *gorm.DB, milestone *types.Milestone) (*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).Create(milestone).Error; err != nil {
		return nil, err
	}
	return milestone, nil
}

func (mr *milestoneRepo) GetWithGoal(ctx context.Context, tx *gorm.DB, milestoneID uuid.UUID) (*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var result types.Milestone
	if err := transaction.WithContext(ctx).
		Preload("Roadmap.Goal").
		Where("id = ?", milestoneID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByRoadmap returns milestones in display order: week ascending, then
// the assembler-assigned sequence within the week.
func (mr *milestoneRepo) ListByRoadmap(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Milestone
	if err := transaction.WithContext(ctx).
		Preload("Resources").
		Where("roadmap_id = ?", roadmapID).
		Order("week_number ASC, sort_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *milestoneRepo) CountByRoadmap(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) (int64, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.Milestone{}).
		Where("roadmap_id = ?", roadmapID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var completed int64
	if err := transaction.WithContext(ctx).
		Model(&types.Milestone{}).
		Where("roadmap_id = ? AND is_completed = ?", roadmapID, true).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

func (mr *milestoneRepo) Save(ctx context.Context, tx *gorm.DB, milestone *types.Milestone) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Milestone{}).
		Where("id = ?", milestone.ID).
		Updates(map[string]interface{}{
			"is_completed": milestone.IsCompleted,
			"completed_at": milestone.CompletedAt,
		}).Error
}

func (mr *milestoneRepo) DeleteByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("roadmap_id = ?", roadmapID).
		Delete(&types.Milestone{}).Error
}
