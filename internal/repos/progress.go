package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/types"
)

type ProgressRepo interface {
	// Upsert atomically creates or overwrites the entry for the
	// (user, milestone) pair. Concurrent identical requests resolve
	// last-write-wins on hours_spent and notes.
	Upsert(ctx context.Context, tx *gorm.DB, entry *types.ProgressEntry) error
	GetByUserAndMilestone(ctx context.Context, tx *gorm.DB, userID, milestoneID uuid.UUID) (*types.ProgressEntry, error)
	DeleteByMilestoneIDs(ctx context.Context, tx *gorm.DB, milestoneIDs []uuid.UUID) error
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (pr *progressRepo) Upsert(ctx context.Context, tx *gorm.DB, entry *types.ProgressEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "milestone_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"hours_spent": entry.HoursSpent,
				"notes":       entry.Notes,
				"updated_at":  time.Now(),
			}),
		}).
		Create(entry).Error
}

func (pr *progressRepo) GetByUserAndMilestone(ctx context.Context, tx *gorm.DB, userID, milestoneID uuid.UUID) (*types.ProgressEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.ProgressEntry
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND milestone_id = ?", userID, milestoneID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *progressRepo) DeleteByMilestoneIDs(ctx context.Context, tx *gorm.DB, milestoneIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(milestoneIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("milestone_id IN ?", milestoneIDs).
		Delete(&types.ProgressEntry{}).Error
}
