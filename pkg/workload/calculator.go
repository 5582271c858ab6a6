package workload

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/workplan/workplan/pkg/interval"
	"github.com/workplan/workplan/pkg/model"
)

// Workload is the point-in-time view of an employee's commitment.
type Workload struct {
	HoursCommitted     int `json:"hours_committed"`
	UtilizationPercent int `json:"utilization_percent"`
	AvailableHours     int `json:"available_hours"`
}

// Calculator answers date-aware workload questions. Unlike the persisted
// current_load cache, every method here filters assignments by a reference
// date.
type Calculator struct {
	src DataSource
}

func NewCalculator(src DataSource) *Calculator {
	return &Calculator{src: src}
}

// EmployeeHours sums hours_per_week over the employee's assignments whose
// interval contains the reference date, inclusive on both ends.
func (c *Calculator) EmployeeHours(ctx context.Context, employeeID uuid.UUID, ref model.Date) (int, error) {
	assignments, err := c.src.ListAssignments(ctx, AssignmentFilter{EmployeeID: &employeeID})
	if err != nil {
		return 0, err
	}

	total := 0
	for _, a := range assignments {
		end := interval.FarFuture
		if a.EndDate != nil {
			end = a.EndDate.Time
		}
		if interval.Overlaps(a.StartDate.Time, end, ref.Time, ref.Time) {
			total += a.HoursPerWeek
		}
	}
	return total, nil
}

// EmployeeUtilization returns the rounded percentage of the employee's weekly
// capacity committed on the reference date. Unknown employee or zero capacity
// yields 0, never an error.
func (c *Calculator) EmployeeUtilization(ctx context.Context, employeeID uuid.UUID, ref model.Date) (int, error) {
	employee, err := c.src.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, model.ErrEmployeeNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if employee.MaxWeeklyHours <= 0 {
		return 0, nil
	}

	hours, err := c.EmployeeHours(ctx, employeeID, ref)
	if err != nil {
		return 0, err
	}
	return roundPercent(hours, employee.MaxWeeklyHours), nil
}

// EmployeeAvailableHours is the remaining weekly capacity on the reference
// date, clamped at zero.
func (c *Calculator) EmployeeAvailableHours(ctx context.Context, employeeID uuid.UUID, ref model.Date) (int, error) {
	employee, err := c.src.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, model.ErrEmployeeNotFound) {
			return 0, nil
		}
		return 0, err
	}

	hours, err := c.EmployeeHours(ctx, employeeID, ref)
	if err != nil {
		return 0, err
	}
	if available := employee.MaxWeeklyHours - hours; available > 0 {
		return available, nil
	}
	return 0, nil
}

// ComputeWorkload bundles the three per-employee figures for the API layer.
func (c *Calculator) ComputeWorkload(ctx context.Context, employeeID uuid.UUID, ref model.Date) (Workload, error) {
	employee, err := c.src.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, model.ErrEmployeeNotFound) {
			return Workload{}, nil
		}
		return Workload{}, err
	}

	hours, err := c.EmployeeHours(ctx, employeeID, ref)
	if err != nil {
		return Workload{}, err
	}

	available := employee.MaxWeeklyHours - hours
	if available < 0 {
		available = 0
	}

	utilization := 0
	if employee.MaxWeeklyHours > 0 {
		utilization = roundPercent(hours, employee.MaxWeeklyHours)
	}

	return Workload{
		HoursCommitted:     hours,
		UtilizationPercent: utilization,
		AvailableHours:     available,
	}, nil
}

// DepartmentUtilization is the rounded arithmetic mean of member utilization
// on the reference date. An empty department yields 0.
func (c *Calculator) DepartmentUtilization(ctx context.Context, department string, ref model.Date) (int, error) {
	employees, err := c.src.ListEmployees(ctx, EmployeeFilter{Department: department})
	if err != nil {
		return 0, err
	}
	if len(employees) == 0 {
		return 0, nil
	}

	total := 0
	for _, employee := range employees {
		utilization, err := c.EmployeeUtilization(ctx, employee.ID, ref)
		if err != nil {
			return 0, err
		}
		total += utilization
	}
	return int(math.Round(float64(total) / float64(len(employees)))), nil
}

// AssignedHours sums hours_per_week over every assignment of the employee
// regardless of date, optionally excluding one assignment. This is the figure
// behind the persisted load cache and the over-capacity check.
func (c *Calculator) AssignedHours(ctx context.Context, employeeID uuid.UUID, exclude *uuid.UUID) (int, error) {
	assignments, err := c.src.ListAssignments(ctx, AssignmentFilter{EmployeeID: &employeeID})
	if err != nil {
		return 0, err
	}

	total := 0
	for _, a := range assignments {
		if exclude != nil && a.ID == *exclude {
			continue
		}
		total += a.HoursPerWeek
	}
	return total, nil
}

// CheckCapacity reports by how many hours a proposed commitment would exceed
// the employee's weekly ceiling. Zero means the proposal fits.
func (c *Calculator) CheckCapacity(ctx context.Context, employeeID uuid.UUID, hoursPerWeek int, exclude *uuid.UUID) (int, error) {
	employee, err := c.src.GetEmployee(ctx, employeeID)
	if err != nil {
		return 0, err
	}

	assigned, err := c.AssignedHours(ctx, employeeID, exclude)
	if err != nil {
		return 0, err
	}
	if overage := assigned + hoursPerWeek - employee.MaxWeeklyHours; overage > 0 {
		return overage, nil
	}
	return 0, nil
}

func roundPercent(hours, maxHours int) int {
	return int(math.Round(float64(hours) / float64(maxHours) * 100))
}
