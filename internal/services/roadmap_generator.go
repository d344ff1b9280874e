package services

import (
	"context"
	"time"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/metrics"
)

// RoadmapGenerator runs the generation pipeline up to (but not including)
// persistence: build the prompt, make the blocking model call, parse and
// validate the response.
type RoadmapGenerator interface {
	GenerateRoadmap(ctx context.Context, attrs GoalAttributes) (map[string]any, error)
	SuggestResources(ctx context.Context, topic, difficulty string, count int) ([]any, error)
}

type roadmapGenerator struct {
	log *logger.Logger
	gen TextGenerator
}

func NewRoadmapGenerator(log *logger.Logger, gen TextGenerator) RoadmapGenerator {
	return &roadmapGenerator{
		log: log.With("service", "RoadmapGenerator"),
		gen: gen,
	}
}

func (rg *roadmapGenerator) GenerateRoadmap(ctx context.Context, attrs GoalAttributes) (map[string]any, error) {
	prompt := BuildRoadmapPrompt(attrs)

	start := time.Now()
	raw, err := rg.gen.GenerateText(ctx, prompt)
	if err != nil {
		metrics.RecordGeneration("transport_error", time.Since(start).Seconds())
		return nil, err
	}

	doc, err := ParseRoadmapPayload(raw)
	if err != nil {
		metrics.RecordGeneration(generationErrorStatus(err), time.Since(start).Seconds())
		rg.log.Warn("roadmap response rejected", "error", err, "response_len", len(raw))
		return nil, err
	}

	metrics.RecordGeneration("ok", time.Since(start).Seconds())
	return doc, nil
}

func (rg *roadmapGenerator) SuggestResources(ctx context.Context, topic, difficulty string, count int) ([]any, error) {
	if count <= 0 {
		count = 5
	}
	if count > 10 {
		count = 10
	}
	prompt := BuildResourceSuggestionPrompt(topic, difficulty, count)

	raw, err := rg.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseResourceList(raw)
}

func generationErrorStatus(err error) string {
	switch err.(type) {
	case *ParseError:
		return "parse_error"
	case *ValidationError:
		return "validation_error"
	case *FieldError:
		return "field_error"
	default:
		return "error"
	}
}
