package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pathforge/roadmap-backend/internal/logger"
	pkgerrors "github.com/pathforge/roadmap-backend/internal/pkg/errors"
	"github.com/pathforge/roadmap-backend/internal/repos"
	"github.com/pathforge/roadmap-backend/internal/types"
)

// GoalInput is a validated create-goal request. Range and enum checks happen
// at the binding layer; the service re-checks the invariants it depends on.
type GoalInput struct {
	CategoryID          uuid.UUID
	Title               string
	Description         string
	Difficulty          string
	HoursPerWeek        int
	TargetDurationWeeks int
}

// GoalProgress pairs a dashboard goal with its recomputed percentage.
type GoalProgress struct {
	Goal               *types.Goal `json:"goal"`
	ProgressPercentage float64     `json:"progress_percentage"`
}

// WeekGroup is a display-time grouping of milestones; it never affects the
// stored sequence.
type WeekGroup struct {
	WeekNumber int                `json:"week_number"`
	Milestones []*types.Milestone `json:"milestones"`
}

type RoadmapView struct {
	Goal               *types.Goal    `json:"goal"`
	Roadmap            *types.Roadmap `json:"roadmap"`
	Weeks              []WeekGroup    `json:"weeks"`
	ProgressPercentage float64        `json:"progress_percentage"`
}

type GoalService interface {
	// CreateGoalWithRoadmap persists the goal, runs the generation
	// pipeline and assembles the tree in one transaction. On any pipeline
	// failure the goal is deleted again and the error propagates.
	CreateGoalWithRoadmap(ctx context.Context, userID uuid.UUID, in GoalInput) (*types.Goal, *types.Roadmap, error)
	Dashboard(ctx context.Context, userID uuid.UUID) ([]GoalProgress, error)
	RoadmapDetail(ctx context.Context, userID, goalID uuid.UUID) (*RoadmapView, error)
	DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error
}

type goalService struct {
	db            *gorm.DB
	log           *logger.Logger
	goalRepo      repos.GoalRepo
	categoryRepo  repos.CategoryRepo
	roadmapRepo   repos.RoadmapRepo
	milestoneRepo repos.MilestoneRepo
	resourceRepo  repos.ResourceRepo
	progressRepo  repos.ProgressRepo
	generator     RoadmapGenerator
	assembler     RoadmapAssembler
	progress      ProgressService
}

func NewGoalService(
	db *gorm.DB,
	log *logger.Logger,
	goalRepo repos.GoalRepo,
	categoryRepo repos.CategoryRepo,
	roadmapRepo repos.RoadmapRepo,
	milestoneRepo repos.MilestoneRepo,
	resourceRepo repos.ResourceRepo,
	progressRepo repos.ProgressRepo,
	generator RoadmapGenerator,
	assembler RoadmapAssembler,
	progress ProgressService,
) GoalService {
	return &goalService{
		db:            db,
		log:           log.With("service", "GoalService"),
		goalRepo:      goalRepo,
		categoryRepo:  categoryRepo,
		roadmapRepo:   roadmapRepo,
		milestoneRepo: milestoneRepo,
		resourceRepo:  resourceRepo,
		progressRepo:  progressRepo,
		generator:     generator,
		assembler:     assembler,
		progress:      progress,
	}
}

func (gs *goalService) CreateGoalWithRoadmap(ctx context.Context, userID uuid.UUID, in GoalInput) (*types.Goal, *types.Roadmap, error) {
	if !types.ValidDifficulty(in.Difficulty) {
		return nil, nil, fmt.Errorf("invalid difficulty %q", in.Difficulty)
	}
	if in.HoursPerWeek < 1 || in.HoursPerWeek > 168 {
		return nil, nil, fmt.Errorf("hours_per_week out of range: %d", in.HoursPerWeek)
	}
	if in.TargetDurationWeeks < 1 || in.TargetDurationWeeks > 52 {
		return nil, nil, fmt.Errorf("target_duration_weeks out of range: %d", in.TargetDurationWeeks)
	}

	category, err := gs.categoryRepo.GetByID(ctx, nil, in.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.ErrNotFound
		}
		return nil, nil, err
	}

	goal := &types.Goal{
		UserID:              userID,
		CategoryID:          category.ID,
		Title:               in.Title,
		Description:         in.Description,
		Difficulty:          in.Difficulty,
		HoursPerWeek:        in.HoursPerWeek,
		TargetDurationWeeks: in.TargetDurationWeeks,
		IsActive:            true,
	}
	goal, err = gs.goalRepo.Create(ctx, nil, goal)
	if err != nil {
		return nil, nil, err
	}

	roadmap, err := gs.generateAndAssemble(ctx, goal, category)
	if err != nil {
		// The goal must not survive without a roadmap.
		if delErr := gs.goalRepo.Delete(ctx, nil, goal.ID); delErr != nil {
			gs.log.Error("failed to discard goal after generation failure",
				"goal_id", goal.ID, "error", delErr)
		}
		return nil, nil, err
	}

	goal.Roadmap = roadmap
	return goal, roadmap, nil
}

func (gs *goalService) generateAndAssemble(ctx context.Context, goal *types.Goal, category *types.Category) (*types.Roadmap, error) {
	doc, err := gs.generator.GenerateRoadmap(ctx, GoalAttributes{
		Title:               goal.Title,
		Description:         goal.Description,
		Category:            category.Name,
		Difficulty:          goal.Difficulty,
		HoursPerWeek:        goal.HoursPerWeek,
		TargetDurationWeeks: goal.TargetDurationWeeks,
	})
	if err != nil {
		return nil, err
	}

	var roadmap *types.Roadmap
	err = gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		roadmap, txErr = gs.assembler.Assemble(ctx, tx, goal, doc)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return roadmap, nil
}

func (gs *goalService) Dashboard(ctx context.Context, userID uuid.UUID) ([]GoalProgress, error) {
	goals, err := gs.goalRepo.ListActiveByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	results := make([]GoalProgress, len(goals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, goal := range goals {
		i, goal := i, goal
		g.Go(func() error {
			pct := 0.0
			if goal.Roadmap != nil {
				var pctErr error
				pct, pctErr = gs.progress.Percentage(gctx, goal.Roadmap.ID)
				if pctErr != nil {
					return pctErr
				}
			}
			results[i] = GoalProgress{Goal: goal, ProgressPercentage: pct}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (gs *goalService) RoadmapDetail(ctx context.Context, userID, goalID uuid.UUID) (*RoadmapView, error) {
	goal, err := gs.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	roadmap, err := gs.roadmapRepo.GetByGoalID(ctx, nil, goal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}

	milestones, err := gs.milestoneRepo.ListByRoadmap(ctx, nil, roadmap.ID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int][]*types.Milestone)
	for _, m := range milestones {
		grouped[m.WeekNumber] = append(grouped[m.WeekNumber], m)
	}
	weekNumbers := make([]int, 0, len(grouped))
	for week := range grouped {
		weekNumbers = append(weekNumbers, week)
	}
	sort.Ints(weekNumbers)

	weeks := make([]WeekGroup, 0, len(weekNumbers))
	for _, week := range weekNumbers {
		weeks = append(weeks, WeekGroup{WeekNumber: week, Milestones: grouped[week]})
	}

	pct, err := gs.progress.Percentage(ctx, roadmap.ID)
	if err != nil {
		return nil, err
	}

	return &RoadmapView{
		Goal:               goal,
		Roadmap:            roadmap,
		Weeks:              weeks,
		ProgressPercentage: pct,
	}, nil
}

// DeleteGoal removes the goal and its whole generated tree plus the
// progress entries hanging off its milestones. Postgres cascades would cover
// most of this; the explicit tree delete keeps behavior identical across
// drivers and makes the unit atomic.
func (gs *goalService) DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	goal, err := gs.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return err
	}

	return gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roadmap, err := gs.roadmapRepo.GetByGoalID(ctx, tx, goal.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if roadmap != nil && err == nil {
			milestones, err := gs.milestoneRepo.ListByRoadmap(ctx, tx, roadmap.ID)
			if err != nil {
				return err
			}
			milestoneIDs := make([]uuid.UUID, 0, len(milestones))
			for _, m := range milestones {
				milestoneIDs = append(milestoneIDs, m.ID)
			}
			if err := gs.resourceRepo.DeleteByMilestoneIDs(ctx, tx, milestoneIDs); err != nil {
				return err
			}
			if err := gs.progressRepo.DeleteByMilestoneIDs(ctx, tx, milestoneIDs); err != nil {
				return err
			}
			if err := gs.milestoneRepo.DeleteByRoadmapID(ctx, tx, roadmap.ID); err != nil {
				return err
			}
			if err := gs.roadmapRepo.DeleteByGoalID(ctx, tx, goal.ID); err != nil {
				return err
			}
		}
		return gs.goalRepo.Delete(ctx, tx, goal.ID)
	})
}

func (gs *goalService) ownedGoal(ctx context.Context, userID, goalID uuid.UUID) (*types.Goal, error) {
	goal, err := gs.goalRepo.GetByID(ctx, nil, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	// A goal that belongs to someone else is indistinguishable from a
	// missing one for the requesting user.
	if goal.UserID != userID {
		return nil, pkgerrors.ErrNotFound
	}
	return goal, nil
}
