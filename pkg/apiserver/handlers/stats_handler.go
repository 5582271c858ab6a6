package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/workload"
)

type StatsHandler struct {
	employees  EmployeeStore
	projects   ProjectStore
	calculator *workload.Calculator
	logger     *zap.Logger
}

func NewStatsHandler(
	employees EmployeeStore,
	projects ProjectStore,
	calculator *workload.Calculator,
	logger *zap.Logger,
) *StatsHandler {
	return &StatsHandler{
		employees:  employees,
		projects:   projects,
		calculator: calculator,
		logger:     logger,
	}
}

// Dashboard is the landing-page summary; the detailed breakdowns live on
// the per-entity stats endpoints.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	employeeStats, err := h.employees.Stats(ctx)
	if err != nil {
		h.logger.Error("failed to load employee stats", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	activeProjects, err := h.projects.CountByStatus(ctx, model.ProjectActive)
	if err != nil {
		h.logger.Error("failed to count active projects", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_employees": employeeStats.TotalEmployees,
		"active_projects": activeProjects,
		"avg_workload":    employeeStats.AvgLoad,
		"overloaded":      employeeStats.Overloaded,
	})
}

func (h *StatsHandler) EmployeeStats(c *gin.Context) {
	stats, err := h.employees.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load employee stats", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) ProjectStats(c *gin.Context) {
	stats, err := h.projects.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load project stats", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DepartmentUtilization reports the mean utilization of a department's
// members on the given date.
func (h *StatsHandler) DepartmentUtilization(c *gin.Context) {
	department := c.Param("department")
	ref, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	utilization, err := h.calculator.DepartmentUtilization(c.Request.Context(), department, ref)
	if err != nil {
		h.logger.Error("failed to compute department utilization", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"department":          department,
		"date":                ref,
		"utilization_percent": utilization,
	})
}
