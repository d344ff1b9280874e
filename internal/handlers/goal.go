package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/requestdata"
	"github.com/pathforge/roadmap-backend/internal/services"
)

type GoalHandler struct {
	log         *logger.Logger
	goalService services.GoalService
}

func NewGoalHandler(log *logger.Logger, goalService services.GoalService) *GoalHandler {
	return &GoalHandler{
		log:         log.With("handler", "GoalHandler"),
		goalService: goalService,
	}
}

type createGoalRequest struct {
	CategoryID          string `json:"category_id" binding:"required,uuid"`
	Title               string `json:"title" binding:"required,max=200"`
	Description         string `json:"description" binding:"required"`
	Difficulty          string `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	HoursPerWeek        int    `json:"hours_per_week" binding:"required,min=1,max=168"`
	TargetDurationWeeks int    `json:"target_duration_weeks" binding:"required,min=1,max=52"`
}

// Dashboard lists the actor's active goals with their progress percentages.
func (h *GoalHandler) Dashboard(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	goals, err := h.goalService.Dashboard(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("Dashboard failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"goals": goals})
}

// Create persists a goal and runs the generation pipeline. On generation
// failure the goal is already discarded by the service; the envelope carries
// the pipeline error for the form to display.
func (h *GoalHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	goal, roadmap, err := h.goalService.CreateGoalWithRoadmap(c.Request.Context(), rd.UserID, services.GoalInput{
		CategoryID:          categoryID,
		Title:               req.Title,
		Description:         req.Description,
		Difficulty:          req.Difficulty,
		HoursPerWeek:        req.HoursPerWeek,
		TargetDurationWeeks: req.TargetDurationWeeks,
	})
	if err != nil {
		h.log.Error("CreateGoalWithRoadmap failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal, "roadmap": roadmap})
}

// RoadmapDetail returns the goal's roadmap with milestones grouped by week
// for display.
func (h *GoalHandler) RoadmapDetail(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_goal_id", err)
		return
	}

	view, err := h.goalService.RoadmapDetail(c.Request.Context(), rd.UserID, goalID)
	if err != nil {
		h.log.Error("RoadmapDetail failed", "error", err, "goal_id", goalID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, view)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_goal_id", err)
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), rd.UserID, goalID); err != nil {
		h.log.Error("DeleteGoal failed", "error", err, "goal_id", goalID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
