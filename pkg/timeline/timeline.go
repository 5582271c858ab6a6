// Package timeline builds the rows behind the Gantt-style views: one row per
// employee or department, each carrying its assignment bars clamped to the
// reporting window.
package timeline

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/workplan/workplan/pkg/interval"
	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/workload"
)

// Bar is one rendered interval within a row. Start and End are already
// clamped to the reporting window; Days is the inclusive layout width.
type Bar struct {
	ProjectID    uuid.UUID  `json:"project_id"`
	ProjectName  string     `json:"project_name"`
	Role         string     `json:"role,omitempty"`
	HoursPerWeek int        `json:"hours_per_week"`
	Start        model.Date `json:"start"`
	End          model.Date `json:"end"`
	Days         int        `json:"days"`
}

type Row struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Bars  []Bar  `json:"bars"`
}

type Builder struct {
	src workload.DataSource
}

func NewBuilder(src workload.DataSource) *Builder {
	return &Builder{src: src}
}

// BuildEmployeeTimeline returns one row per employee with at least one
// assignment overlapping the window, bars ordered by clamped start.
func (b *Builder) BuildEmployeeTimeline(ctx context.Context, periodStart, periodEnd model.Date) ([]Row, error) {
	windowStart, windowEnd := normalizeWindow(periodStart, periodEnd)

	assignments, employees, projects, err := b.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[uuid.UUID][]model.Assignment)
	for _, a := range assignments {
		if !overlapsWindow(a, windowStart, windowEnd) {
			continue
		}
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], a)
	}

	rows := make([]Row, 0, len(byEmployee))
	for employeeID, group := range byEmployee {
		employee, ok := employees[employeeID]
		if !ok {
			continue
		}

		bars := make([]Bar, 0, len(group))
		for _, a := range group {
			project, ok := projects[a.ProjectID]
			if !ok {
				continue
			}
			start, end := clampToWindow(a.StartDate.Time, assignmentEnd(a), windowStart, windowEnd)
			bars = append(bars, Bar{
				ProjectID:    a.ProjectID,
				ProjectName:  project.Name,
				Role:         a.Role,
				HoursPerWeek: a.HoursPerWeek,
				Start:        model.Date{Time: start},
				End:          model.Date{Time: end},
				Days:         interval.Days(start, end) + 1,
			})
		}
		if len(bars) == 0 {
			continue
		}
		sortBars(bars)
		rows = append(rows, Row{Key: employeeID.String(), Label: employee.Name, Bars: bars})
	}

	sortRows(rows)
	return rows, nil
}

// BuildDepartmentTimeline groups overlapping assignments by department and
// merges all assignments on the same project into a single bar per project
// per department: the union bounding box of their intervals and the sum of
// their weekly hours.
func (b *Builder) BuildDepartmentTimeline(ctx context.Context, periodStart, periodEnd model.Date) ([]Row, error) {
	windowStart, windowEnd := normalizeWindow(periodStart, periodEnd)

	assignments, employees, projects, err := b.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	type mergedBar struct {
		start time.Time
		end   time.Time
		hours int
	}
	merged := make(map[string]map[uuid.UUID]*mergedBar)

	for _, a := range assignments {
		if !overlapsWindow(a, windowStart, windowEnd) {
			continue
		}
		employee, ok := employees[a.EmployeeID]
		if !ok {
			continue
		}
		if _, ok := projects[a.ProjectID]; !ok {
			continue
		}

		byProject := merged[employee.Department]
		if byProject == nil {
			byProject = make(map[uuid.UUID]*mergedBar)
			merged[employee.Department] = byProject
		}

		end := assignmentEnd(a)
		bar := byProject[a.ProjectID]
		if bar == nil {
			byProject[a.ProjectID] = &mergedBar{start: a.StartDate.Time, end: end, hours: a.HoursPerWeek}
			continue
		}
		if a.StartDate.Time.Before(bar.start) {
			bar.start = a.StartDate.Time
		}
		if end.After(bar.end) {
			bar.end = end
		}
		bar.hours += a.HoursPerWeek
	}

	rows := make([]Row, 0, len(merged))
	for department, byProject := range merged {
		bars := make([]Bar, 0, len(byProject))
		for projectID, bar := range byProject {
			start, end := clampToWindow(bar.start, bar.end, windowStart, windowEnd)
			bars = append(bars, Bar{
				ProjectID:    projectID,
				ProjectName:  projects[projectID].Name,
				HoursPerWeek: bar.hours,
				Start:        model.Date{Time: start},
				End:          model.Date{Time: end},
				Days:         interval.Days(start, end) + 1,
			})
		}
		sortBars(bars)
		rows = append(rows, Row{Key: department, Label: department, Bars: bars})
	}

	sortRows(rows)
	return rows, nil
}

func (b *Builder) snapshot(ctx context.Context) ([]model.Assignment, map[uuid.UUID]model.Employee, map[uuid.UUID]model.Project, error) {
	assignments, err := b.src.ListAssignments(ctx, workload.AssignmentFilter{})
	if err != nil {
		return nil, nil, nil, err
	}

	employeeList, err := b.src.ListEmployees(ctx, workload.EmployeeFilter{})
	if err != nil {
		return nil, nil, nil, err
	}
	employees := make(map[uuid.UUID]model.Employee, len(employeeList))
	for _, e := range employeeList {
		employees[e.ID] = e
	}

	projectList, err := b.src.ListProjects(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	projects := make(map[uuid.UUID]model.Project, len(projectList))
	for _, p := range projectList {
		projects[p.ID] = p
	}

	return assignments, employees, projects, nil
}

// normalizeWindow collapses an inverted window to a single day at its start.
func normalizeWindow(periodStart, periodEnd model.Date) (time.Time, time.Time) {
	if periodEnd.Time.Before(periodStart.Time) {
		return periodStart.Time, periodStart.Time
	}
	return periodStart.Time, periodEnd.Time
}

func assignmentEnd(a model.Assignment) time.Time {
	if a.EndDate == nil {
		return interval.FarFuture
	}
	return a.EndDate.Time
}

func overlapsWindow(a model.Assignment, windowStart, windowEnd time.Time) bool {
	return interval.Overlaps(a.StartDate.Time, assignmentEnd(a), windowStart, windowEnd)
}

func clampToWindow(start, end, windowStart, windowEnd time.Time) (time.Time, time.Time) {
	return interval.Clamp(start, end, windowStart, windowEnd)
}

func sortBars(bars []Bar) {
	sort.SliceStable(bars, func(i, j int) bool {
		if !bars[i].Start.Time.Equal(bars[j].Start.Time) {
			return bars[i].Start.Time.Before(bars[j].Start.Time)
		}
		return bars[i].ProjectName < bars[j].ProjectName
	})
}

func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Label != rows[j].Label {
			return rows[i].Label < rows[j].Label
		}
		return rows[i].Key < rows[j].Key
	})
}
