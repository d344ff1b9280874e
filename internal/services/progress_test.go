package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgerrors "github.com/pathforge/roadmap-backend/internal/pkg/errors"
	"github.com/pathforge/roadmap-backend/internal/repos"
	"github.com/pathforge/roadmap-backend/internal/repos/testutil"
	"github.com/pathforge/roadmap-backend/internal/types"
)

func newProgressService(tb testing.TB, gdb *gorm.DB) ProgressService {
	tb.Helper()
	log := testutil.Logger(tb)
	return NewProgressService(
		gdb,
		log,
		repos.NewMilestoneRepo(gdb, log),
		repos.NewResourceRepo(gdb, log),
		repos.NewProgressRepo(gdb, log),
	)
}

func milestoneIDs(tb testing.TB, gdb *gorm.DB, roadmapID uuid.UUID) []uuid.UUID {
	tb.Helper()
	milestones, err := repos.NewMilestoneRepo(gdb, testutil.Logger(tb)).ListByRoadmap(context.Background(), nil, roadmapID)
	if err != nil {
		tb.Fatalf("list milestones: %v", err)
	}
	ids := make([]uuid.UUID, 0, len(milestones))
	for _, m := range milestones {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestToggleMilestoneRoundTrip(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)
	goal := testutil.CreateGoal(t, gdb, user, cat)
	roadmap := testutil.CreateRoadmapTree(t, gdb, goal, 4)
	ids := milestoneIDs(t, gdb, roadmap.ID)

	svc := newProgressService(t, gdb)

	// Complete: 1 of 4 done.
	res, err := svc.ToggleMilestone(ctx, user.ID, ids[1], 3.5, "felt easy")
	require.NoError(t, err)
	assert.True(t, res.IsCompleted)
	assert.Equal(t, 25.0, res.ProgressPercentage)

	var stored types.Milestone
	require.NoError(t, gdb.First(&stored, "id = ?", ids[1]).Error)
	assert.True(t, stored.IsCompleted)
	require.NotNil(t, stored.CompletedAt)

	entry, err := repos.NewProgressRepo(gdb, testutil.Logger(t)).GetByUserAndMilestone(ctx, nil, user.ID, ids[1])
	require.NoError(t, err)
	assert.Equal(t, 3.5, entry.HoursSpent)
	assert.Equal(t, "felt easy", entry.Notes)

	// Un-complete: timestamp cleared, percentage drops back.
	res, err = svc.ToggleMilestone(ctx, user.ID, ids[1], 0, "")
	require.NoError(t, err)
	assert.False(t, res.IsCompleted)
	assert.Equal(t, 0.0, res.ProgressPercentage)

	require.NoError(t, gdb.First(&stored, "id = ?", ids[1]).Error)
	assert.False(t, stored.IsCompleted)
	assert.Nil(t, stored.CompletedAt)
}

func TestToggleMilestoneUpsertOverwrites(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)
	goal := testutil.CreateGoal(t, gdb, user, cat)
	roadmap := testutil.CreateRoadmapTree(t, gdb, goal, 2)
	ids := milestoneIDs(t, gdb, roadmap.ID)

	svc := newProgressService(t, gdb)

	_, err := svc.ToggleMilestone(ctx, user.ID, ids[0], 2, "first pass")
	require.NoError(t, err)
	_, err = svc.ToggleMilestone(ctx, user.ID, ids[0], 5, "second pass")
	require.NoError(t, err)

	// Still exactly one entry per (user, milestone); last write wins.
	var count int64
	require.NoError(t, gdb.Model(&types.ProgressEntry{}).
		Where("user_id = ? AND milestone_id = ?", user.ID, ids[0]).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	entry, err := repos.NewProgressRepo(gdb, testutil.Logger(t)).GetByUserAndMilestone(ctx, nil, user.ID, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 5.0, entry.HoursSpent)
	assert.Equal(t, "second pass", entry.Notes)
}

func TestToggleMilestoneClampsNegativeHours(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)
	goal := testutil.CreateGoal(t, gdb, user, cat)
	roadmap := testutil.CreateRoadmapTree(t, gdb, goal, 1)
	ids := milestoneIDs(t, gdb, roadmap.ID)

	_, err := newProgressService(t, gdb).ToggleMilestone(ctx, user.ID, ids[0], -3, "")
	require.NoError(t, err)

	entry, err := repos.NewProgressRepo(gdb, testutil.Logger(t)).GetByUserAndMilestone(ctx, nil, user.ID, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 0.0, entry.HoursSpent)
}

func TestToggleMilestoneOwnership(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, gdb)
	intruder := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)
	goal := testutil.CreateGoal(t, gdb, owner, cat)
	roadmap := testutil.CreateRoadmapTree(t, gdb, goal, 1)
	ids := milestoneIDs(t, gdb, roadmap.ID)

	svc := newProgressService(t, gdb)

	_, err := svc.ToggleMilestone(ctx, intruder.ID, ids[0], 0, "")
	assert.ErrorIs(t, err, pkgerrors.ErrUnauthorized)

	_, err = svc.ToggleMilestone(ctx, owner.ID, uuid.New(), 0, "")
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

	// Nothing flipped while bouncing the intruder.
	var stored types.Milestone
	require.NoError(t, gdb.First(&stored, "id = ?", ids[0]).Error)
	assert.False(t, stored.IsCompleted)
}

func TestToggleResource(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, gdb)
	intruder := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)
	goal := testutil.CreateGoal(t, gdb, owner, cat)
	roadmap := testutil.CreateRoadmapTree(t, gdb, goal, 1)

	var resource types.Resource
	require.NoError(t, gdb.
		Joins("JOIN milestone ON milestone.id = resource.milestone_id").
		Where("milestone.roadmap_id = ?", roadmap.ID).
		First(&resource).Error)

	svc := newProgressService(t, gdb)

	completed, err := svc.ToggleResource(ctx, owner.ID, resource.ID)
	require.NoError(t, err)
	assert.True(t, completed)

	var stored types.Resource
	require.NoError(t, gdb.First(&stored, "id = ?", resource.ID).Error)
	assert.True(t, stored.IsCompleted)
	require.NotNil(t, stored.CompletedAt)

	completed, err = svc.ToggleResource(ctx, owner.ID, resource.ID)
	require.NoError(t, err)
	assert.False(t, completed)

	_, err = svc.ToggleResource(ctx, intruder.ID, resource.ID)
	assert.ErrorIs(t, err, pkgerrors.ErrUnauthorized)

	_, err = svc.ToggleResource(ctx, owner.ID, uuid.New())
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestPercentageRounding(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)
	goal := testutil.CreateGoal(t, gdb, user, cat)
	roadmap := testutil.CreateRoadmapTree(t, gdb, goal, 3)
	ids := milestoneIDs(t, gdb, roadmap.ID)

	svc := newProgressService(t, gdb)

	pct, err := svc.Percentage(ctx, roadmap.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)

	_, err = svc.ToggleMilestone(ctx, user.ID, ids[0], 0, "")
	require.NoError(t, err)

	pct, err = svc.Percentage(ctx, roadmap.ID)
	require.NoError(t, err)
	assert.Equal(t, 33.33, pct)

	_, err = svc.ToggleMilestone(ctx, user.ID, ids[1], 0, "")
	require.NoError(t, err)

	pct, err = svc.Percentage(ctx, roadmap.ID)
	require.NoError(t, err)
	assert.Equal(t, 66.67, pct)
}

func TestPercentageEmptyRoadmap(t *testing.T) {
	gdb := testutil.DB(t)
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)
	goal := testutil.CreateGoal(t, gdb, user, cat)
	roadmap := testutil.CreateRoadmapTree(t, gdb, goal, 0)

	pct, err := newProgressService(t, gdb).Percentage(context.Background(), roadmap.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)
}
