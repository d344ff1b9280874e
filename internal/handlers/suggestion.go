package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/services"
	"github.com/pathforge/roadmap-backend/internal/types"
)

type SuggestionHandler struct {
	log       *logger.Logger
	generator services.RoadmapGenerator
}

func NewSuggestionHandler(log *logger.Logger, generator services.RoadmapGenerator) *SuggestionHandler {
	return &SuggestionHandler{
		log:       log.With("handler", "SuggestionHandler"),
		generator: generator,
	}
}

// Suggestions asks the model for extra resources on a topic and returns the
// decoded array as-is.
func (h *SuggestionHandler) Suggestions(c *gin.Context) {
	topic := c.Query("topic")
	if topic == "" {
		RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("topic is required"))
		return
	}
	difficulty := c.DefaultQuery("difficulty", types.DifficultyBeginner)
	if !types.ValidDifficulty(difficulty) {
		RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("unknown difficulty"))
		return
	}
	count, _ := strconv.Atoi(c.DefaultQuery("count", "5"))

	resources, err := h.generator.SuggestResources(c.Request.Context(), topic, difficulty, count)
	if err != nil {
		h.log.Error("SuggestResources failed", "error", err, "topic", topic)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"resources": resources})
}
