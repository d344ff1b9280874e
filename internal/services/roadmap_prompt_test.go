package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRoadmapPromptIncludesGoalAttributes(t *testing.T) {
	prompt := BuildRoadmapPrompt(GoalAttributes{
		Title:               "Learn Go",
		Description:         "Backend development from scratch",
		Category:            "Coding",
		Difficulty:          "beginner",
		HoursPerWeek:        10,
		TargetDurationWeeks: 4,
	})

	assert.Contains(t, prompt, "Learn Go")
	assert.Contains(t, prompt, "Backend development from scratch")
	assert.Contains(t, prompt, "Coding")
	assert.Contains(t, prompt, "10 hours per week")
	assert.Contains(t, prompt, "4 weeks")
	// Tailoring instruction repeats the difficulty.
	assert.Equal(t, 2, strings.Count(prompt, "beginner"))
}

func TestBuildRoadmapPromptMandatesSchema(t *testing.T) {
	prompt := BuildRoadmapPrompt(GoalAttributes{Difficulty: "advanced"})

	for _, key := range []string{
		`"summary"`, `"milestones"`, `"week_number"`, `"estimated_hours"`,
		`"resources"`, `"resource_type"`, `"is_free"`, `"estimated_duration"`,
	} {
		assert.Contains(t, prompt, key)
	}
}

func TestBuildResourceSuggestionPrompt(t *testing.T) {
	prompt := BuildResourceSuggestionPrompt("SQL window functions", "intermediate", 7)

	assert.Contains(t, prompt, "Suggest 7 high-quality learning resources")
	assert.Contains(t, prompt, "SQL window functions")
	assert.Contains(t, prompt, "intermediate")
	assert.Contains(t, prompt, "JSON array")
}
