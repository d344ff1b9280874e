package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathforge/roadmap-backend/internal/types"
)

func CreateUser(tb testing.TB, gdb *gorm.DB) *types.User {
	tb.Helper()
	user := &types.User{
		ID:          uuid.New(),
		Email:       fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		DisplayName: "Test User",
	}
	if err := gdb.Create(user).Error; err != nil {
		tb.Fatalf("create user: %v", err)
	}
	return user
}

func CreateCategory(tb testing.TB, gdb *gorm.DB) *types.Category {
	tb.Helper()
	cat := &types.Category{
		ID:           uuid.New(),
		Name:         fmt.Sprintf("Coding %s", uuid.NewString()[:8]),
		CategoryType: types.CategoryTypeCoding,
	}
	if err := gdb.Create(cat).Error; err != nil {
		tb.Fatalf("create category: %v", err)
	}
	return cat
}

func CreateGoal(tb testing.TB, gdb *gorm.DB, user *types.User, cat *types.Category) *types.Goal {
	tb.Helper()
	goal := &types.Goal{
		ID:                  uuid.New(),
		UserID:              user.ID,
		CategoryID:          cat.ID,
		Title:               "Learn Go",
		Description:         "Backend development with Go",
		Difficulty:          types.DifficultyBeginner,
		HoursPerWeek:        10,
		TargetDurationWeeks: 4,
		IsActive:            true,
	}
	if err := gdb.Create(goal).Error; err != nil {
		tb.Fatalf("create goal: %v", err)
	}
	return goal
}

// CreateRoadmapTree builds a roadmap with the given number of milestones,
// one free video resource each, ordered 1..n over consecutive weeks.
func CreateRoadmapTree(tb testing.TB, gdb *gorm.DB, goal *types.Goal, milestones int) *types.Roadmap {
	tb.Helper()
	roadmap := &types.Roadmap{
		ID:        uuid.New(),
		GoalID:    goal.ID,
		AISummary: "A step by step plan.",
	}
	if err := gdb.Create(roadmap).Error; err != nil {
		tb.Fatalf("create roadmap: %v", err)
	}
	for i := 1; i <= milestones; i++ {
		m := &types.Milestone{
			ID:             uuid.New(),
			RoadmapID:      roadmap.ID,
			Title:          fmt.Sprintf("Milestone %d", i),
			Description:    "Practice",
			WeekNumber:     i,
			SortOrder:      i,
			EstimatedHours: 5,
		}
		if err := gdb.Create(m).Error; err != nil {
			tb.Fatalf("create milestone %d: %v", i, err)
		}
		r := &types.Resource{
			ID:           uuid.New(),
			MilestoneID:  m.ID,
			Title:        fmt.Sprintf("Resource %d", i),
			URL:          "https://example.com",
			ResourceType: types.ResourceTypeVideo,
			IsFree:       true,
		}
		if err := gdb.Create(r).Error; err != nil {
			tb.Fatalf("create resource %d: %v", i, err)
		}
	}
	return roadmap
}
