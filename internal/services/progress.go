package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/roadmap-backend/internal/logger"
	pkgerrors "github.com/pathforge/roadmap-backend/internal/pkg/errors"
	"github.com/pathforge/roadmap-backend/internal/repos"
	"github.com/pathforge/roadmap-backend/internal/types"
)

// MilestoneToggleResult is the outcome of a milestone completion toggle.
type MilestoneToggleResult struct {
	IsCompleted        bool    `json:"is_completed"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

type ProgressService interface {
	// ToggleMilestone flips completion for a milestone the actor owns,
	// upserts the (user, milestone) progress entry and returns the new
	// state plus the roadmap's recomputed percentage.
	ToggleMilestone(ctx context.Context, userID, milestoneID uuid.UUID, hoursSpent float64, notes string) (*MilestoneToggleResult, error)
	// ToggleResource flips completion for a resource the actor owns and
	// returns the new state.
	ToggleResource(ctx context.Context, userID, resourceID uuid.UUID) (bool, error)
	// Percentage recomputes the roadmap's completion percentage on
	// demand. It is never cached or stored.
	Percentage(ctx context.Context, roadmapID uuid.UUID) (float64, error)
}

type progressService struct {
	db            *gorm.DB
	log           *logger.Logger
	milestoneRepo repos.MilestoneRepo
	resourceRepo  repos.ResourceRepo
	progressRepo  repos.ProgressRepo
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	milestoneRepo repos.MilestoneRepo,
	resourceRepo repos.ResourceRepo,
	progressRepo repos.ProgressRepo,
) ProgressService {
	return &progressService{
		db:            db,
		log:           log.With("service", "ProgressService"),
		milestoneRepo: milestoneRepo,
		resourceRepo:  resourceRepo,
		progressRepo:  progressRepo,
	}
}

func (ps *progressService) ToggleMilestone(ctx context.Context, userID, milestoneID uuid.UUID, hoursSpent float64, notes string) (*MilestoneToggleResult, error) {
	milestone, err := ps.milestoneRepo.GetWithGoal(ctx, nil, milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	if milestone.Roadmap == nil || milestone.Roadmap.Goal == nil {
		return nil, pkgerrors.ErrNotFound
	}
	if milestone.Roadmap.Goal.UserID != userID {
		return nil, pkgerrors.ErrUnauthorized
	}
	if hoursSpent < 0 {
		hoursSpent = 0
	}

	milestone.IsCompleted = !milestone.IsCompleted
	if milestone.IsCompleted {
		now := time.Now()
		milestone.CompletedAt = &now
	} else {
		milestone.CompletedAt = nil
	}

	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.milestoneRepo.Save(ctx, tx, milestone); err != nil {
			return err
		}
		return ps.progressRepo.Upsert(ctx, tx, &types.ProgressEntry{
			UserID:      userID,
			MilestoneID: milestone.ID,
			HoursSpent:  hoursSpent,
			Notes:       notes,
		})
	})
	if err != nil {
		return nil, err
	}

	pct, err := ps.Percentage(ctx, milestone.RoadmapID)
	if err != nil {
		return nil, err
	}
	return &MilestoneToggleResult{
		IsCompleted:        milestone.IsCompleted,
		ProgressPercentage: pct,
	}, nil
}

func (ps *progressService) ToggleResource(ctx context.Context, userID, resourceID uuid.UUID) (bool, error) {
	resource, err := ps.resourceRepo.GetWithGoal(ctx, nil, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.ErrNotFound
		}
		return false, err
	}
	if resource.Milestone == nil || resource.Milestone.Roadmap == nil || resource.Milestone.Roadmap.Goal == nil {
		return false, pkgerrors.ErrNotFound
	}
	if resource.Milestone.Roadmap.Goal.UserID != userID {
		return false, pkgerrors.ErrUnauthorized
	}

	resource.IsCompleted = !resource.IsCompleted
	if resource.IsCompleted {
		now := time.Now()
		resource.CompletedAt = &now
	} else {
		resource.CompletedAt = nil
	}

	if err := ps.resourceRepo.Save(ctx, nil, resource); err != nil {
		return false, err
	}
	return resource.IsCompleted, nil
}

func (ps *progressService) Percentage(ctx context.Context, roadmapID uuid.UUID) (float64, error) {
	total, completed, err := ps.milestoneRepo.CountByRoadmap(ctx, nil, roadmapID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	pct := float64(completed) / float64(total) * 100
	return math.Round(pct*100) / 100, nil
}
