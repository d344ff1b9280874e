package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/types"
)

type RoadmapRepo interface {
	Create(ctx context.Context, tx *gorm.DB, roadmap *types.Roadmap) (*types.Roadmap, error)
	GetByGoalID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) (*types.Roadmap, error)
	DeleteByGoalID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) error
}

type roadmapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	return &roadmapRepo{db: db, log: baseLog.With("repo", "RoadmapRepo")}
}

func (rr *roadmapRepo) Create(ctx context.Context, tx *gorm.DB, roadmap *types.Roadmap) (*types.Roadmap, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).Create(roadmap).Error; err != nil {
		return nil, err
	}
	return roadmap, nil
}

func (rr *roadmapRepo) GetByGoalID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) (*types.Roadmap, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Roadmap
	if err := transaction.WithContext(ctx).
		Where("goal_id = ?", goalID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *roadmapRepo) DeleteByGoalID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Delete(&types.Roadmap{}).Error
}
