package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/repos"
	"github.com/pathforge/roadmap-backend/internal/types"
)

// RoadmapAssembler maps a parsed generation document onto the persisted
// Roadmap → Milestone → Resource tree. The caller supplies the transaction;
// any FieldError aborts it so no partial tree survives.
type RoadmapAssembler interface {
	Assemble(ctx context.Context, tx *gorm.DB, goal *types.Goal, doc map[string]any) (*types.Roadmap, error)
}

type roadmapAssembler struct {
	log           *logger.Logger
	roadmapRepo   repos.RoadmapRepo
	milestoneRepo repos.MilestoneRepo
	resourceRepo  repos.ResourceRepo
}

func NewRoadmapAssembler(
	log *logger.Logger,
	roadmapRepo repos.RoadmapRepo,
	milestoneRepo repos.MilestoneRepo,
	resourceRepo repos.ResourceRepo,
) RoadmapAssembler {
	return &roadmapAssembler{
		log:           log.With("service", "RoadmapAssembler"),
		roadmapRepo:   roadmapRepo,
		milestoneRepo: milestoneRepo,
		resourceRepo:  resourceRepo,
	}
}

func (ra *roadmapAssembler) Assemble(ctx context.Context, tx *gorm.DB, goal *types.Goal, doc map[string]any) (*types.Roadmap, error) {
	summary, ok := stringField(doc, "summary")
	if !ok {
		return nil, &FieldError{Entity: "roadmap", Field: "summary"}
	}

	milestoneList, ok := doc["milestones"].([]any)
	if !ok {
		return nil, &FieldError{Entity: "roadmap", Field: "milestones"}
	}

	meta, _ := json.Marshal(map[string]any{
		"difficulty":            goal.Difficulty,
		"hours_per_week":        goal.HoursPerWeek,
		"target_duration_weeks": goal.TargetDurationWeeks,
	})

	roadmap := &types.Roadmap{
		GoalID:      goal.ID,
		AISummary:   summary,
		GeneratedAt: time.Now(),
		Metadata:    datatypes.JSON(meta),
	}
	roadmap, err := ra.roadmapRepo.Create(ctx, tx, roadmap)
	if err != nil {
		return nil, err
	}

	// The model's ordering is trusted for sequencing; week grouping is a
	// read-time concern.
	for idx, item := range milestoneList {
		position := idx + 1
		milestoneDoc, ok := item.(map[string]any)
		if !ok {
			return nil, &FieldError{Entity: "milestone", Field: "title", Index: position}
		}

		title, ok := stringField(milestoneDoc, "title")
		if !ok {
			return nil, &FieldError{Entity: "milestone", Field: "title", Index: position}
		}
		description, ok := stringField(milestoneDoc, "description")
		if !ok {
			return nil, &FieldError{Entity: "milestone", Field: "description", Index: position}
		}
		weekNumber, ok := numberField(milestoneDoc, "week_number")
		if !ok {
			return nil, &FieldError{Entity: "milestone", Field: "week_number", Index: position}
		}
		estimatedHours, ok := numberField(milestoneDoc, "estimated_hours")
		if !ok {
			return nil, &FieldError{Entity: "milestone", Field: "estimated_hours", Index: position}
		}

		milestone := &types.Milestone{
			RoadmapID:      roadmap.ID,
			Title:          title,
			Description:    description,
			WeekNumber:     int(weekNumber),
			SortOrder:      position,
			EstimatedHours: estimatedHours,
		}
		milestone, err := ra.milestoneRepo.Create(ctx, tx, milestone)
		if err != nil {
			return nil, err
		}

		resources, err := ra.buildResources(milestoneDoc, milestone.ID)
		if err != nil {
			return nil, err
		}
		if _, err := ra.resourceRepo.Create(ctx, tx, resources); err != nil {
			return nil, err
		}
		milestone.Resources = make([]types.Resource, 0, len(resources))
		for _, r := range resources {
			milestone.Resources = append(milestone.Resources, *r)
		}
		roadmap.Milestones = append(roadmap.Milestones, *milestone)
	}

	ra.log.Info("roadmap assembled",
		"goal_id", goal.ID,
		"roadmap_id", roadmap.ID,
		"milestones", len(roadmap.Milestones),
	)
	return roadmap, nil
}

// buildResources converts a milestone's resources list. A missing
// "resources" key is tolerated and treated as empty; a present entry with a
// missing mandatory field fails the whole assembly.
func (ra *roadmapAssembler) buildResources(milestoneDoc map[string]any, milestoneID uuid.UUID) ([]*types.Resource, error) {
	rawList, present := milestoneDoc["resources"]
	if !present || rawList == nil {
		return nil, nil
	}
	resourceList, ok := rawList.([]any)
	if !ok {
		return nil, &FieldError{Entity: "milestone", Field: "resources"}
	}

	resources := make([]*types.Resource, 0, len(resourceList))
	for idx, item := range resourceList {
		position := idx + 1
		resourceDoc, ok := item.(map[string]any)
		if !ok {
			return nil, &FieldError{Entity: "resource", Field: "title", Index: position}
		}

		title, ok := stringField(resourceDoc, "title")
		if !ok {
			return nil, &FieldError{Entity: "resource", Field: "title", Index: position}
		}
		url, ok := stringField(resourceDoc, "url")
		if !ok {
			return nil, &FieldError{Entity: "resource", Field: "url", Index: position}
		}
		resourceType, ok := stringField(resourceDoc, "resource_type")
		if !ok {
			return nil, &FieldError{Entity: "resource", Field: "resource_type", Index: position}
		}
		isFree, ok := boolField(resourceDoc, "is_free")
		if !ok {
			return nil, &FieldError{Entity: "resource", Field: "is_free", Index: position}
		}

		resources = append(resources, &types.Resource{
			MilestoneID:       milestoneID,
			Title:             title,
			URL:               url,
			ResourceType:      resourceType,
			IsFree:            isFree,
			EstimatedDuration: optionalString(resourceDoc, "estimated_duration"),
			Description:       optionalString(resourceDoc, "description"),
		})
	}
	return resources, nil
}

func stringField(doc map[string]any, key string) (string, bool) {
	val, ok := doc[key]
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

func numberField(doc map[string]any, key string) (float64, bool) {
	val, ok := doc[key]
	if !ok {
		return 0, false
	}
	f, ok := val.(float64)
	return f, ok
}

func boolField(doc map[string]any, key string) (bool, bool) {
	val, ok := doc[key]
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

func optionalString(doc map[string]any, key string) string {
	s, _ := stringField(doc, key)
	return s
}
