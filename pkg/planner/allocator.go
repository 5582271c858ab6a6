// Package planner implements the greedy assignment-suggestion algorithm. It
// is a best-effort heuristic: no backtracking, no reshuffling of earlier
// suggestions, no cross-project fairness.
package planner

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/workplan/workplan/pkg/metrics"
	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/workload"
)

// PerAssignmentCap bounds a single suggestion so one person never absorbs a
// whole requirement in one pass.
const PerAssignmentCap = 40

type Suggestion struct {
	Employee       model.Employee `json:"employee"`
	SuggestedHours int            `json:"suggested_hours"`
	AvailableHours int            `json:"available_hours"`
}

type Plan struct {
	Project        *model.Project `json:"project"`
	Suggestions    []Suggestion   `json:"suggestions"`
	RemainingHours int            `json:"remaining_hours"`
}

type Allocator struct {
	src workload.DataSource
}

func NewAllocator(src workload.DataSource) *Allocator {
	return &Allocator{src: src}
}

type candidate struct {
	employee    model.Employee
	available   int
	utilization int
}

// SuggestAssignments walks every employee in ascending utilization order and
// allocates min(available, remaining, PerAssignmentCap) hours until the
// requirement is covered or candidates run out. Insufficient capacity is not
// an error; the shortfall comes back as RemainingHours. Repeated runs on an
// unchanged snapshot return identical output: candidates arrive in repository
// order and the sort is stable.
func (a *Allocator) SuggestAssignments(ctx context.Context, projectID uuid.UUID, requiredHours int) (*Plan, error) {
	project, err := a.src.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	employees, err := a.src.ListEmployees(ctx, workload.EmployeeFilter{})
	if err != nil {
		return nil, err
	}

	candidates := make([]candidate, 0, len(employees))
	for _, employee := range employees {
		id := employee.ID
		assignments, err := a.src.ListAssignments(ctx, workload.AssignmentFilter{EmployeeID: &id})
		if err != nil {
			return nil, err
		}

		assigned := 0
		for _, assignment := range assignments {
			assigned += assignment.HoursPerWeek
		}

		available := employee.MaxWeeklyHours - assigned
		if available < 0 {
			available = 0
		}
		utilization := 0
		if employee.MaxWeeklyHours > 0 {
			utilization = int(math.Round(float64(assigned) / float64(employee.MaxWeeklyHours) * 100))
		}

		candidates = append(candidates, candidate{
			employee:    employee,
			available:   available,
			utilization: utilization,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].utilization < candidates[j].utilization
	})

	plan := &Plan{
		Project:        project,
		Suggestions:    []Suggestion{},
		RemainingHours: requiredHours,
	}

	for _, c := range candidates {
		if plan.RemainingHours <= 0 {
			break
		}
		if c.available <= 0 {
			continue
		}

		hours := c.available
		if plan.RemainingHours < hours {
			hours = plan.RemainingHours
		}
		if hours > PerAssignmentCap {
			hours = PerAssignmentCap
		}

		plan.Suggestions = append(plan.Suggestions, Suggestion{
			Employee:       c.employee,
			SuggestedHours: hours,
			AvailableHours: c.available,
		})
		plan.RemainingHours -= hours
	}

	metrics.SuggestionsTotal.Inc()
	if plan.RemainingHours > 0 {
		metrics.SuggestionShortfallHours.Add(float64(plan.RemainingHours))
	}
	return plan, nil
}
