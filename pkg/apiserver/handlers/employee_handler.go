package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/store/postgres"
	"github.com/workplan/workplan/pkg/workload"
)

type EmployeeHandler struct {
	employees   EmployeeStore
	assignments AssignmentStore
	calculator  *workload.Calculator
	recalc      *workload.Recalculator
	logger      *zap.Logger
}

func NewEmployeeHandler(
	employees EmployeeStore,
	assignments AssignmentStore,
	calculator *workload.Calculator,
	recalc *workload.Recalculator,
	logger *zap.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		employees:   employees,
		assignments: assignments,
		calculator:  calculator,
		recalc:      recalc,
		logger:      logger,
	}
}

type createEmployeeRequest struct {
	Name           string `json:"name" binding:"required"`
	Department     string `json:"department" binding:"required"`
	Team           string `json:"team" binding:"required"`
	Role           string `json:"role" binding:"required"`
	MaxWeeklyHours *int   `json:"max_weekly_hours" binding:"omitempty,gte=1,lte=80"`
}

type updateEmployeeRequest struct {
	Name           *string `json:"name"`
	Department     *string `json:"department"`
	Team           *string `json:"team"`
	Role           *string `json:"role"`
	MaxWeeklyHours *int    `json:"max_weekly_hours" binding:"omitempty,gte=1,lte=80"`
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	employee := model.Employee{
		Name:           req.Name,
		Department:     req.Department,
		Team:           req.Team,
		Role:           req.Role,
		MaxWeeklyHours: model.DefaultMaxWeeklyHours,
	}
	if req.MaxWeeklyHours != nil {
		employee.MaxWeeklyHours = *req.MaxWeeklyHours
	}

	if err := h.employees.Create(c.Request.Context(), &employee); err != nil {
		h.logger.Error("failed to create employee", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employees.List(c.Request.Context(), postgres.EmployeeQuery{
		Department: c.Query("department"),
		Team:       c.Query("team"),
		Role:       c.Query("role"),
	})
	if err != nil {
		h.logger.Error("failed to list employees", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees, "total": len(employees)})
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	employee, err := h.employees.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// Workload returns the date-aware utilization figures, as opposed to the
// persisted current_load which ignores assignment dates.
func (h *EmployeeHandler) Workload(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	ref, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	if _, err := h.employees.GetByID(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}

	load, err := h.calculator.ComputeWorkload(c.Request.Context(), id, ref)
	if err != nil {
		h.logger.Error("failed to compute workload", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee_id": id, "date": ref, "workload": load})
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	employee, err := h.employees.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Team != nil {
		employee.Team = *req.Team
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	capacityChanged := false
	if req.MaxWeeklyHours != nil && *req.MaxWeeklyHours != employee.MaxWeeklyHours {
		employee.MaxWeeklyHours = *req.MaxWeeklyHours
		capacityChanged = true
	}

	if err := h.employees.Update(c.Request.Context(), employee); err != nil {
		h.logger.Error("failed to update employee", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	// A new capacity shifts the load percentage even with unchanged assignments.
	if capacityChanged {
		if _, err := h.recalc.RecalcEmployee(c.Request.Context(), id); err != nil {
			h.logger.Error("failed to recalculate employee load", zap.Error(err))
			respondStoreError(c, err)
			return
		}
		employee, err = h.employees.GetByID(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, employee)
}

// Delete removes the employee together with every assignment referencing it,
// then recalculates the committed hours of each affected project.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := h.employees.GetByID(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}

	projectIDs, err := h.assignments.DeleteByEmployee(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete employee assignments", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.recalc.RecalcProjects(c.Request.Context(), projectIDs); err != nil {
		h.logger.Error("failed to recalculate projects after employee delete", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id, "removed_assignments": len(projectIDs)})
}
