package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/eventbus"
	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/store/postgres"
	"github.com/workplan/workplan/pkg/workload"
)

type AssignmentHandler struct {
	assignments AssignmentStore
	employees   EmployeeStore
	projects    ProjectStore
	calculator  *workload.Calculator
	recalc      *workload.Recalculator
	bus         *eventbus.Bus
	logger      *zap.Logger
}

func NewAssignmentHandler(
	assignments AssignmentStore,
	employees EmployeeStore,
	projects ProjectStore,
	calculator *workload.Calculator,
	recalc *workload.Recalculator,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignments: assignments,
		employees:   employees,
		projects:    projects,
		calculator:  calculator,
		recalc:      recalc,
		bus:         bus,
		logger:      logger,
	}
}

type createAssignmentRequest struct {
	EmployeeID   uuid.UUID `json:"employee_id" binding:"required"`
	ProjectID    uuid.UUID `json:"project_id" binding:"required"`
	HoursPerWeek int       `json:"hours_per_week" binding:"required,hours_range"`
	StartDate    string    `json:"start_date" binding:"required"`
	EndDate      *string   `json:"end_date"`
	Role         string    `json:"role"`
	// ConfirmOverload acknowledges an over-capacity warning and forces the
	// write through.
	ConfirmOverload bool `json:"confirm_overload"`
}

type updateAssignmentRequest struct {
	EmployeeID      *uuid.UUID `json:"employee_id"`
	ProjectID       *uuid.UUID `json:"project_id"`
	HoursPerWeek    *int       `json:"hours_per_week"`
	StartDate       *string    `json:"start_date"`
	EndDate         *string    `json:"end_date"`
	Role            *string    `json:"role"`
	ConfirmOverload bool       `json:"confirm_overload"`
}

func validHours(hours int) bool {
	return hours >= model.MinHoursPerWeek && hours <= model.MaxHoursPerWeek
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	startDate, err := model.ParseDate(req.StartDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
		return
	}
	if endDate != nil && endDate.Time.Before(startDate.Time) {
		respondError(c, http.StatusBadRequest, model.ErrInvalidDateRange.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := h.employees.GetByID(ctx, req.EmployeeID); err != nil {
		respondStoreError(c, err)
		return
	}
	if _, err := h.projects.GetByID(ctx, req.ProjectID); err != nil {
		respondStoreError(c, err)
		return
	}

	overage, err := h.calculator.CheckCapacity(ctx, req.EmployeeID, req.HoursPerWeek, nil)
	if err != nil {
		h.logger.Error("failed to check capacity", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	if overage > 0 && !req.ConfirmOverload {
		c.JSON(http.StatusConflict, gin.H{
			"error":         "assignment exceeds employee capacity",
			"overage_hours": overage,
			"hint":          "retry with confirm_overload=true to accept the overload",
		})
		return
	}

	assignment := model.Assignment{
		EmployeeID:   req.EmployeeID,
		ProjectID:    req.ProjectID,
		HoursPerWeek: req.HoursPerWeek,
		StartDate:    startDate,
		EndDate:      endDate,
		Role:         req.Role,
	}

	if err := h.assignments.Create(ctx, &assignment); err != nil {
		h.logger.Error("failed to create assignment", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	if err := h.recalcBothSides(ctx, assignment.EmployeeID, assignment.ProjectID); err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(ctx, assignment, "created")

	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) List(c *gin.Context) {
	query := postgres.AssignmentQuery{Preload: c.Query("expand") == "true"}

	if raw := c.Query("employee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid employee_id")
			return
		}
		query.EmployeeID = &id
	}
	if raw := c.Query("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid project_id")
			return
		}
		query.ProjectID = &id
	}
	if raw := c.Query("active_on"); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid active_on, expected YYYY-MM-DD")
			return
		}
		query.StartsBy = &date
		query.EndsBy = &date
	}

	assignments, err := h.assignments.List(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed to list assignments", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments, "total": len(assignments)})
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	assignment, err := h.assignments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// Update supports re-targeting an assignment onto another employee or
// project; the vacated side is recalculated along with the new one.
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	assignment, err := h.assignments.GetByID(ctx, id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	oldEmployeeID := assignment.EmployeeID
	oldProjectID := assignment.ProjectID

	if req.EmployeeID != nil {
		if _, err := h.employees.GetByID(ctx, *req.EmployeeID); err != nil {
			respondStoreError(c, err)
			return
		}
		assignment.EmployeeID = *req.EmployeeID
	}
	if req.ProjectID != nil {
		if _, err := h.projects.GetByID(ctx, *req.ProjectID); err != nil {
			respondStoreError(c, err)
			return
		}
		assignment.ProjectID = *req.ProjectID
	}
	if req.HoursPerWeek != nil {
		if !validHours(*req.HoursPerWeek) {
			respondError(c, http.StatusBadRequest, model.ErrInvalidHours.Error())
			return
		}
		assignment.HoursPerWeek = *req.HoursPerWeek
	}
	if req.StartDate != nil {
		startDate, err := model.ParseDate(*req.StartDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		assignment.StartDate = startDate
	}
	if req.EndDate != nil {
		if assignment.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
			respondError(c, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
			return
		}
	}
	if assignment.EndDate != nil && assignment.EndDate.Time.Before(assignment.StartDate.Time) {
		respondError(c, http.StatusBadRequest, model.ErrInvalidDateRange.Error())
		return
	}
	if req.Role != nil {
		assignment.Role = *req.Role
	}

	// The row being updated must not count against its own capacity.
	overage, err := h.calculator.CheckCapacity(ctx, assignment.EmployeeID, assignment.HoursPerWeek, &assignment.ID)
	if err != nil {
		h.logger.Error("failed to check capacity", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	if overage > 0 && !req.ConfirmOverload {
		c.JSON(http.StatusConflict, gin.H{
			"error":         "assignment exceeds employee capacity",
			"overage_hours": overage,
			"hint":          "retry with confirm_overload=true to accept the overload",
		})
		return
	}

	if err := h.assignments.Update(ctx, assignment); err != nil {
		h.logger.Error("failed to update assignment", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	if err := h.recalc.RecalcEmployees(ctx, []uuid.UUID{oldEmployeeID, assignment.EmployeeID}); err != nil {
		respondStoreError(c, err)
		return
	}
	if err := h.recalc.RecalcProjects(ctx, []uuid.UUID{oldProjectID, assignment.ProjectID}); err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(ctx, *assignment, "updated")

	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	assignment, err := h.assignments.GetByID(ctx, id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.assignments.Delete(ctx, id); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.recalcBothSides(ctx, assignment.EmployeeID, assignment.ProjectID); err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(ctx, *assignment, "deleted")

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *AssignmentHandler) recalcBothSides(ctx context.Context, employeeID, projectID uuid.UUID) error {
	load, err := h.recalc.RecalcEmployee(ctx, employeeID)
	if err != nil {
		h.logger.Error("failed to recalculate employee load", zap.Error(err))
		return err
	}
	h.publishRecalc(ctx, "employee", employeeID, load)

	hours, err := h.recalc.RecalcProject(ctx, projectID)
	if err != nil {
		h.logger.Error("failed to recalculate project hours", zap.Error(err))
		return err
	}
	h.publishRecalc(ctx, "project", projectID, hours)
	return nil
}

func (h *AssignmentHandler) publishRecalc(ctx context.Context, entityType string, id uuid.UUID, value int) {
	if h.bus == nil {
		return
	}

	event, err := eventbus.NewEvent("recalc."+entityType, eventbus.RecalcEvent{
		EntityType: entityType,
		EntityID:   id.String(),
		Value:      value,
	})
	if err != nil {
		h.logger.Warn("failed to build recalc event", zap.Error(err))
		return
	}
	if err := h.bus.Publish(ctx, eventbus.ChannelRecalc, event); err != nil {
		h.logger.Warn("failed to publish recalc event", zap.Error(err))
	}
}

// publish is best-effort; the write already succeeded.
func (h *AssignmentHandler) publish(ctx context.Context, assignment model.Assignment, action string) {
	if h.bus == nil {
		return
	}

	event, err := eventbus.NewEvent("assignment."+action, eventbus.AssignmentEvent{
		AssignmentID: assignment.ID.String(),
		EmployeeID:   assignment.EmployeeID.String(),
		ProjectID:    assignment.ProjectID.String(),
		Action:       action,
	})
	if err != nil {
		h.logger.Warn("failed to build assignment event", zap.Error(err))
		return
	}
	if err := h.bus.Publish(ctx, eventbus.ChannelAssignment, event); err != nil {
		h.logger.Warn("failed to publish assignment event", zap.Error(err))
	}
}
