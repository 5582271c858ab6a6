package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/store/postgres"
	"github.com/workplan/workplan/pkg/workload"
)

type ProjectHandler struct {
	projects    ProjectStore
	assignments AssignmentStore
	recalc      *workload.Recalculator
	logger      *zap.Logger
}

func NewProjectHandler(
	projects ProjectStore,
	assignments AssignmentStore,
	recalc *workload.Recalculator,
	logger *zap.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		projects:    projects,
		assignments: assignments,
		recalc:      recalc,
		logger:      logger,
	}
}

type createProjectRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	RequiredHours int     `json:"required_hours" binding:"omitempty,gte=0"`
}

type updateProjectRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Status        *string `json:"status"`
	Priority      *string `json:"priority"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	RequiredHours *int    `json:"required_hours" binding:"omitempty,gte=0"`
}

func parseOptionalDate(raw *string) (*model.Date, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	date, err := model.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	project := model.Project{
		Name:          req.Name,
		Description:   req.Description,
		Status:        model.ProjectPlanning,
		Priority:      model.PriorityMedium,
		RequiredHours: req.RequiredHours,
	}

	if req.Status != "" {
		status := model.ProjectStatus(req.Status)
		if !model.ValidProjectStatus(status) {
			respondError(c, http.StatusBadRequest, "invalid status")
			return
		}
		project.Status = status
	}
	if req.Priority != "" {
		priority := model.ProjectPriority(req.Priority)
		if !model.ValidProjectPriority(priority) {
			respondError(c, http.StatusBadRequest, "invalid priority")
			return
		}
		project.Priority = priority
	}

	var err error
	if project.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		respondError(c, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	if project.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		respondError(c, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
		return
	}
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Time.Before(project.StartDate.Time) {
		respondError(c, http.StatusBadRequest, model.ErrInvalidDateRange.Error())
		return
	}

	if err := h.projects.Create(c.Request.Context(), &project); err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	query := postgres.ProjectQuery{}
	if status := c.Query("status"); status != "" {
		if !model.ValidProjectStatus(model.ProjectStatus(status)) {
			respondError(c, http.StatusBadRequest, "invalid status")
			return
		}
		query.Status = model.ProjectStatus(status)
	}
	if priority := c.Query("priority"); priority != "" {
		if !model.ValidProjectPriority(model.ProjectPriority(priority)) {
			respondError(c, http.StatusBadRequest, "invalid priority")
			return
		}
		query.Priority = model.ProjectPriority(priority)
	}

	projects, err := h.projects.List(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects, "total": len(projects)})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		status := model.ProjectStatus(*req.Status)
		if !model.ValidProjectStatus(status) {
			respondError(c, http.StatusBadRequest, "invalid status")
			return
		}
		project.Status = status
	}
	if req.Priority != nil {
		priority := model.ProjectPriority(*req.Priority)
		if !model.ValidProjectPriority(priority) {
			respondError(c, http.StatusBadRequest, "invalid priority")
			return
		}
		project.Priority = priority
	}
	if req.StartDate != nil {
		if project.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
			respondError(c, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
			return
		}
	}
	if req.EndDate != nil {
		if project.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
			respondError(c, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
			return
		}
	}
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Time.Before(project.StartDate.Time) {
		respondError(c, http.StatusBadRequest, model.ErrInvalidDateRange.Error())
		return
	}
	if req.RequiredHours != nil {
		project.RequiredHours = *req.RequiredHours
	}

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		h.logger.Error("failed to update project", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete removes the project together with every assignment referencing it,
// then recalculates the load of each affected employee.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := h.projects.GetByID(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}

	employeeIDs, err := h.assignments.DeleteByProject(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete project assignments", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.recalc.RecalcEmployees(c.Request.Context(), employeeIDs); err != nil {
		h.logger.Error("failed to recalculate employees after project delete", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id, "removed_assignments": len(employeeIDs)})
}
