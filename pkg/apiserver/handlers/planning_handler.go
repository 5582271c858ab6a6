package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/planner"
	"github.com/workplan/workplan/pkg/timeline"
)

type PlanningHandler struct {
	allocator *planner.Allocator
	projects  ProjectStore
	timeline  *timeline.Builder
	logger    *zap.Logger
}

func NewPlanningHandler(
	allocator *planner.Allocator,
	projects ProjectStore,
	builder *timeline.Builder,
	logger *zap.Logger,
) *PlanningHandler {
	return &PlanningHandler{allocator: allocator, projects: projects, timeline: builder, logger: logger}
}

type suggestRequest struct {
	ProjectID uuid.UUID `json:"project_id" binding:"required"`
	// RequiredHours nil means cover the project's outstanding requirement.
	RequiredHours *int `json:"required_hours" binding:"omitempty,gte=0"`
}

// Suggest proposes assignments covering the project's outstanding hours.
func (h *PlanningHandler) Suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	var required int
	if req.RequiredHours != nil {
		required = *req.RequiredHours
	} else {
		project, err := h.projects.GetByID(ctx, req.ProjectID)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		required = project.RequiredHours - project.CurrentHours
		if required < 0 {
			required = 0
		}
	}

	plan, err := h.allocator.SuggestAssignments(ctx, req.ProjectID, required)
	if err != nil {
		h.logger.Error("failed to build suggestion plan", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanningHandler) EmployeeTimeline(c *gin.Context) {
	start, ok := requireDateQuery(c, "period_start")
	if !ok {
		return
	}
	end, ok := requireDateQuery(c, "period_end")
	if !ok {
		return
	}

	rows, err := h.timeline.BuildEmployeeTimeline(c.Request.Context(), start, end)
	if err != nil {
		h.logger.Error("failed to build employee timeline", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"period_start": start, "period_end": end, "rows": rows})
}

func (h *PlanningHandler) DepartmentTimeline(c *gin.Context) {
	start, ok := requireDateQuery(c, "period_start")
	if !ok {
		return
	}
	end, ok := requireDateQuery(c, "period_end")
	if !ok {
		return
	}

	rows, err := h.timeline.BuildDepartmentTimeline(c.Request.Context(), start, end)
	if err != nil {
		h.logger.Error("failed to build department timeline", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"period_start": start, "period_end": end, "rows": rows})
}
