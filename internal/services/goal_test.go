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

// fakeTextGenerator stands in for the model endpoint. It records prompts so
// tests can assert whether the pipeline reached the external call at all.
type fakeTextGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeTextGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newGoalService(tb testing.TB, gdb *gorm.DB, gen TextGenerator) GoalService {
	tb.Helper()
	log := testutil.Logger(tb)
	goalRepo := repos.NewGoalRepo(gdb, log)
	categoryRepo := repos.NewCategoryRepo(gdb, log)
	roadmapRepo := repos.NewRoadmapRepo(gdb, log)
	milestoneRepo := repos.NewMilestoneRepo(gdb, log)
	resourceRepo := repos.NewResourceRepo(gdb, log)
	progressRepo := repos.NewProgressRepo(gdb, log)

	return NewGoalService(
		gdb,
		log,
		goalRepo,
		categoryRepo,
		roadmapRepo,
		milestoneRepo,
		resourceRepo,
		progressRepo,
		NewRoadmapGenerator(log, gen),
		NewRoadmapAssembler(log, roadmapRepo, milestoneRepo, resourceRepo),
		NewProgressService(gdb, log, milestoneRepo, resourceRepo, progressRepo),
	)
}

func goalInput(categoryID uuid.UUID) GoalInput {
	return GoalInput{
		CategoryID:          categoryID,
		Title:               "Learn Go",
		Description:         "Backend development with Go",
		Difficulty:          types.DifficultyBeginner,
		HoursPerWeek:        10,
		TargetDurationWeeks: 2,
	}
}

const fakeRoadmapResponse = "```json\n" + `{
	"summary": "Two weeks from zero to a small service.",
	"milestones": [
		{"week_number": 1, "title": "Language basics", "description": "Syntax and tooling", "estimated_hours": 8,
		 "resources": [{"title": "Tour of Go", "url": "https://go.dev/tour", "resource_type": "practice", "is_free": true}]},
		{"week_number": 2, "title": "A small HTTP service", "description": "net/http and JSON", "estimated_hours": 10,
		 "resources": [{"title": "Writing Web Applications", "url": "https://go.dev/doc/articles/wiki/", "resource_type": "article", "is_free": true}]}
	]
}` + "\n```"

func TestCreateGoalWithRoadmapEndToEnd(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)

	gen := &fakeTextGenerator{response: fakeRoadmapResponse}
	svc := newGoalService(t, gdb, gen)

	goal, roadmap, err := svc.CreateGoalWithRoadmap(ctx, user.ID, goalInput(cat.ID))
	require.NoError(t, err)
	require.NotNil(t, goal)
	require.NotNil(t, roadmap)
	assert.Equal(t, goal.ID, roadmap.GoalID)
	assert.Equal(t, "Two weeks from zero to a small service.", roadmap.AISummary)

	// The prompt carried the goal attributes to the model.
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Learn Go")
	assert.Contains(t, gen.prompts[0], cat.Name)

	view, err := svc.RoadmapDetail(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, view.Weeks, 2)
	assert.Equal(t, 1, view.Weeks[0].WeekNumber)
	assert.Equal(t, 2, view.Weeks[1].WeekNumber)
	require.Len(t, view.Weeks[0].Milestones, 1)
	assert.Equal(t, "Language basics", view.Weeks[0].Milestones[0].Title)
	require.Len(t, view.Weeks[0].Milestones[0].Resources, 1)
	assert.Equal(t, 0.0, view.ProgressPercentage)

	dashboard, err := svc.Dashboard(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, dashboard, 1)
	assert.Equal(t, goal.ID, dashboard[0].Goal.ID)
	assert.Equal(t, 0.0, dashboard[0].ProgressPercentage)
}

func TestCreateGoalParseFailureDiscardsGoal(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)

	svc := newGoalService(t, gdb, &fakeTextGenerator{response: "I am sorry, I cannot produce JSON today."})

	_, _, err := svc.CreateGoalWithRoadmap(ctx, user.ID, goalInput(cat.ID))
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))

	var goalCount int64
	require.NoError(t, gdb.Model(&types.Goal{}).Where("user_id = ?", user.ID).Count(&goalCount).Error)
	assert.Zero(t, goalCount, "goal must not survive a failed generation")
}

func TestCreateGoalFieldErrorDiscardsGoal(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)

	// Parses fine but the milestone is missing its title, so assembly
	// fails after the roadmap row was already written.
	svc := newGoalService(t, gdb, &fakeTextGenerator{response: `{
		"summary": "Broken milestone.",
		"milestones": [{"week_number": 1, "description": "d", "estimated_hours": 2}]
	}`})

	_, _, err := svc.CreateGoalWithRoadmap(ctx, user.ID, goalInput(cat.ID))
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "milestone", fe.Entity)
	assert.Equal(t, "title", fe.Field)

	var goalCount, roadmapCount int64
	require.NoError(t, gdb.Model(&types.Goal{}).Where("user_id = ?", user.ID).Count(&goalCount).Error)
	require.NoError(t, gdb.Model(&types.Roadmap{}).
		Joins("JOIN goal ON goal.id = roadmap.goal_id").
		Where("goal.user_id = ?", user.ID).
		Count(&roadmapCount).Error)
	assert.Zero(t, goalCount)
	assert.Zero(t, roadmapCount)
}

func TestCreateGoalTransportFailureDiscardsGoal(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)

	svc := newGoalService(t, gdb, &fakeTextGenerator{err: assert.AnError})

	_, _, err := svc.CreateGoalWithRoadmap(ctx, user.ID, goalInput(cat.ID))
	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, IsGenerationError(err))

	var goalCount int64
	require.NoError(t, gdb.Model(&types.Goal{}).Where("user_id = ?", user.ID).Count(&goalCount).Error)
	assert.Zero(t, goalCount)
}

func TestCreateGoalRejectsBadInputBeforeModelCall(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)

	gen := &fakeTextGenerator{response: fakeRoadmapResponse}
	svc := newGoalService(t, gdb, gen)

	bad := goalInput(cat.ID)
	bad.Difficulty = "impossible"
	_, _, err := svc.CreateGoalWithRoadmap(ctx, user.ID, bad)
	require.Error(t, err)

	bad = goalInput(cat.ID)
	bad.HoursPerWeek = 200
	_, _, err = svc.CreateGoalWithRoadmap(ctx, user.ID, bad)
	require.Error(t, err)

	bad = goalInput(cat.ID)
	bad.TargetDurationWeeks = 0
	_, _, err = svc.CreateGoalWithRoadmap(ctx, user.ID, bad)
	require.Error(t, err)

	_, _, err = svc.CreateGoalWithRoadmap(ctx, user.ID, goalInput(uuid.New()))
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

	assert.Empty(t, gen.prompts, "invalid input must never reach the model")
}

func TestDeleteGoalRemovesWholeTree(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)
	goal := testutil.CreateGoal(t, gdb, user, cat)
	roadmap := testutil.CreateRoadmapTree(t, gdb, goal, 3)
	ids := milestoneIDs(t, gdb, roadmap.ID)

	// Leave a progress entry behind so the delete has to sweep it too.
	_, err := newProgressService(t, gdb).ToggleMilestone(ctx, user.ID, ids[0], 1, "wip")
	require.NoError(t, err)

	svc := newGoalService(t, gdb, &fakeTextGenerator{})
	require.NoError(t, svc.DeleteGoal(ctx, user.ID, goal.ID))

	var goalCount, roadmapCount, milestoneCount, resourceCount, progressCount int64
	require.NoError(t, gdb.Model(&types.Goal{}).Where("id = ?", goal.ID).Count(&goalCount).Error)
	require.NoError(t, gdb.Model(&types.Roadmap{}).Where("goal_id = ?", goal.ID).Count(&roadmapCount).Error)
	require.NoError(t, gdb.Model(&types.Milestone{}).Where("roadmap_id = ?", roadmap.ID).Count(&milestoneCount).Error)
	require.NoError(t, gdb.Model(&types.Resource{}).Where("milestone_id IN ?", ids).Count(&resourceCount).Error)
	require.NoError(t, gdb.Model(&types.ProgressEntry{}).Where("milestone_id IN ?", ids).Count(&progressCount).Error)
	assert.Zero(t, goalCount)
	assert.Zero(t, roadmapCount)
	assert.Zero(t, milestoneCount)
	assert.Zero(t, resourceCount)
	assert.Zero(t, progressCount)
}

func TestGoalOwnershipHidesForeignGoals(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, gdb)
	intruder := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)
	goal := testutil.CreateGoal(t, gdb, owner, cat)
	testutil.CreateRoadmapTree(t, gdb, goal, 1)

	svc := newGoalService(t, gdb, &fakeTextGenerator{})

	// A foreign goal reads as missing, not forbidden.
	_, err := svc.RoadmapDetail(ctx, intruder.ID, goal.ID)
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

	err = svc.DeleteGoal(ctx, intruder.ID, goal.ID)
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

	// And the intruder's dashboard stays empty.
	dashboard, err := svc.Dashboard(ctx, intruder.ID)
	require.NoError(t, err)
	assert.Empty(t, dashboard)
}

func TestDashboardRecomputesPercentages(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, gdb)
	cat := testutil.CreateCategory(t, gdb)

	goalA := testutil.CreateGoal(t, gdb, user, cat)
	roadmapA := testutil.CreateRoadmapTree(t, gdb, goalA, 4)
	goalB := testutil.CreateGoal(t, gdb, user, cat)
	testutil.CreateRoadmapTree(t, gdb, goalB, 2)

	progress := newProgressService(t, gdb)
	idsA := milestoneIDs(t, gdb, roadmapA.ID)
	_, err := progress.ToggleMilestone(ctx, user.ID, idsA[0], 0, "")
	require.NoError(t, err)

	dashboard, err := newGoalService(t, gdb, &fakeTextGenerator{}).Dashboard(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, dashboard, 2)

	byGoal := make(map[uuid.UUID]float64, len(dashboard))
	for _, gp := range dashboard {
		byGoal[gp.Goal.ID] = gp.ProgressPercentage
	}
	assert.Equal(t, 25.0, byGoal[goalA.ID])
	assert.Equal(t, 0.0, byGoal[goalB.ID])
}

func TestSuggestResourcesClampsCount(t *testing.T) {
	gen := &fakeTextGenerator{response: `[{"title": "One", "url": "https://example.com", "resource_type": "article", "is_free": true}]`}
	rg := NewRoadmapGenerator(testutil.Logger(t), gen)

	list, err := rg.SuggestResources(context.Background(), "generics", "advanced", 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Contains(t, gen.prompts[0], "Suggest 5 ")

	_, err = rg.SuggestResources(context.Background(), "generics", "advanced", 99)
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[1], "Suggest 10 ")
}
