package workload

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/metrics"
	"github.com/workplan/workplan/pkg/model"
)

// Recalculator keeps Employee.CurrentLoad and Project.CurrentHours in step
// with the assignment set. It must run synchronously after every mutation,
// before the response is sent. The persisted figures deliberately ignore
// assignment dates; callers needing point-in-time numbers use the Calculator.
type Recalculator struct {
	src    DataSource
	logger *zap.Logger
}

func NewRecalculator(src DataSource, logger *zap.Logger) *Recalculator {
	return &Recalculator{src: src, logger: logger}
}

// RecalcEmployee recomputes and persists the employee's load percentage over
// all assignments. A missing employee is a no-op so cascade deletes can race
// recalculation safely.
func (r *Recalculator) RecalcEmployee(ctx context.Context, employeeID uuid.UUID) (int, error) {
	employee, err := r.src.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, model.ErrEmployeeNotFound) {
			return 0, nil
		}
		return 0, err
	}

	assignments, err := r.src.ListAssignments(ctx, AssignmentFilter{EmployeeID: &employeeID})
	if err != nil {
		return 0, err
	}

	total := 0
	for _, a := range assignments {
		total += a.HoursPerWeek
	}

	load := 0
	if employee.MaxWeeklyHours > 0 {
		load = int(math.Round(float64(total) / float64(employee.MaxWeeklyHours) * 100))
	}

	if err := r.src.PersistEmployeeLoad(ctx, employeeID, load); err != nil {
		return 0, err
	}

	metrics.RecalculationsTotal.WithLabelValues("employee").Inc()
	r.logger.Debug("recalculated employee load",
		zap.String("employee_id", employeeID.String()),
		zap.Int("load_percent", load),
	)
	return load, nil
}

// RecalcProject recomputes and persists the project's committed weekly hours
// over all assignments. Missing project is a no-op.
func (r *Recalculator) RecalcProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	if _, err := r.src.GetProject(ctx, projectID); err != nil {
		if errors.Is(err, model.ErrProjectNotFound) {
			return 0, nil
		}
		return 0, err
	}

	assignments, err := r.src.ListAssignments(ctx, AssignmentFilter{ProjectID: &projectID})
	if err != nil {
		return 0, err
	}

	total := 0
	for _, a := range assignments {
		total += a.HoursPerWeek
	}

	if err := r.src.PersistProjectHours(ctx, projectID, total); err != nil {
		return 0, err
	}

	metrics.RecalculationsTotal.WithLabelValues("project").Inc()
	r.logger.Debug("recalculated project hours",
		zap.String("project_id", projectID.String()),
		zap.Int("current_hours", total),
	)
	return total, nil
}

// RecalcEmployees applies RecalcEmployee to each distinct id.
func (r *Recalculator) RecalcEmployees(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range dedupe(ids) {
		if _, err := r.RecalcEmployee(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// RecalcProjects applies RecalcProject to each distinct id.
func (r *Recalculator) RecalcProjects(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range dedupe(ids) {
		if _, err := r.RecalcProject(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
