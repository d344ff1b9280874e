package services

import "fmt"

// GoalAttributes is everything the request builder needs from a goal. The
// caller validates ranges; the builder is a pure function of these values.
type GoalAttributes struct {
	Title               string
	Description         string
	Category            string
	Difficulty          string
	HoursPerWeek        int
	TargetDurationWeeks int
}

// BuildRoadmapPrompt renders the generation request. The JSON schema spelled
// out here is authoritative: the parser and assembler validate against
// exactly this shape.
func BuildRoadmapPrompt(attrs GoalAttributes) string {
	return fmt.Sprintf(`You are an expert learning advisor. Create a detailed, week-by-week learning roadmap for the following goal:

**Goal Title:** %s
**Description:** %s
**Category:** %s
**Difficulty Level:** %s
**Available Time:** %d hours per week
**Target Duration:** %d weeks

Please create a structured learning roadmap with the following:

1. A brief summary (2-3 sentences) explaining the learning path
2. Weekly milestones broken down by week number
3. For each milestone, include:
   - A clear title
   - Description of what will be learned
   - Estimated hours needed
   - 3-5 specific learning resources (mix of free and paid)

For each resource, provide:
- Title
- URL (use real, accessible resources like YouTube, Coursera, Udemy, freeCodeCamp, MDN, Khan Academy, etc.)
- Type (video/article/course/book/practice)
- Whether it's free or paid
- Estimated duration

Return your response in the following JSON format:
{
  "summary": "Brief overview of the learning path",
  "milestones": [
    {
      "week_number": 1,
      "title": "Milestone title",
      "description": "What the learner will achieve",
      "estimated_hours": 5,
      "resources": [
        {
          "title": "Resource title",
          "url": "https://example.com",
          "resource_type": "video",
          "is_free": true,
          "estimated_duration": "2 hours",
          "description": "Brief description"
        }
      ]
    }
  ]
}

Make sure the roadmap is realistic, progressive, and tailored to the %s level.`,
		attrs.Title,
		attrs.Description,
		attrs.Category,
		attrs.Difficulty,
		attrs.HoursPerWeek,
		attrs.TargetDurationWeeks,
		attrs.Difficulty,
	)
}

// BuildResourceSuggestionPrompt renders the secondary request for a bare
// JSON array of resource suggestions on a topic.
func BuildResourceSuggestionPrompt(topic, difficulty string, count int) string {
	return fmt.Sprintf(`Suggest %d high-quality learning resources for the following topic:

**Topic:** %s
**Difficulty Level:** %s

Provide a mix of free and paid resources including videos, articles, and courses.
Return as a JSON array with this structure:
[
  {
    "title": "Resource title",
    "url": "https://example.com",
    "resource_type": "video",
    "is_free": true,
    "estimated_duration": "1 hour",
    "description": "Brief description"
  }
]`,
		count,
		topic,
		difficulty,
	)
}
