package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/requestdata"
	"github.com/pathforge/roadmap-backend/internal/services"
)

type ProgressHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:             log.With("handler", "ProgressHandler"),
		progressService: progressService,
	}
}

type completeMilestoneRequest struct {
	HoursSpent float64 `json:"hours_spent" binding:"omitempty,min=0"`
	Notes      string  `json:"notes"`
}

// CompleteMilestone toggles milestone completion and returns the new state
// with the roadmap's recomputed percentage.
func (h *ProgressHandler) CompleteMilestone(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	milestoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_milestone_id", err)
		return
	}

	var req completeMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.progressService.ToggleMilestone(c.Request.Context(), rd.UserID, milestoneID, req.HoursSpent, req.Notes)
	if err != nil {
		h.log.Error("ToggleMilestone failed", "error", err, "milestone_id", milestoneID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"success":             true,
		"is_completed":        result.IsCompleted,
		"progress_percentage": result.ProgressPercentage,
	})
}

// CompleteResource toggles resource completion and returns the new state.
func (h *ProgressHandler) CompleteResource(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_resource_id", err)
		return
	}

	completed, err := h.progressService.ToggleResource(c.Request.Context(), rd.UserID, resourceID)
	if err != nil {
		h.log.Error("ToggleResource failed", "error", err, "resource_id", resourceID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"success":      true,
		"is_completed": completed,
	})
}
