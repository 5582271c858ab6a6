package workload

import (
	"context"

	"github.com/google/uuid"

	"github.com/workplan/workplan/pkg/model"
)

// fakeSource is an in-memory DataSource. Slices keep repository ordering so
// results are deterministic.
type fakeSource struct {
	employees   []model.Employee
	projects    []model.Project
	assignments []model.Assignment

	persistedLoads map[uuid.UUID]int
	persistedHours map[uuid.UUID]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		persistedLoads: make(map[uuid.UUID]int),
		persistedHours: make(map[uuid.UUID]int),
	}
}

func (f *fakeSource) ListAssignments(_ context.Context, filter AssignmentFilter) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range f.assignments {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.ProjectID != nil && a.ProjectID != *filter.ProjectID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeSource) ListEmployees(_ context.Context, filter EmployeeFilter) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range f.employees {
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		if filter.Team != "" && e.Team != filter.Team {
			continue
		}
		if filter.Role != "" && e.Role != filter.Role {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeSource) ListProjects(_ context.Context) ([]model.Project, error) {
	return f.projects, nil
}

func (f *fakeSource) GetEmployee(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	for i := range f.employees {
		if f.employees[i].ID == id {
			employee := f.employees[i]
			return &employee, nil
		}
	}
	return nil, model.ErrEmployeeNotFound
}

func (f *fakeSource) GetProject(_ context.Context, id uuid.UUID) (*model.Project, error) {
	for i := range f.projects {
		if f.projects[i].ID == id {
			project := f.projects[i]
			return &project, nil
		}
	}
	return nil, model.ErrProjectNotFound
}

func (f *fakeSource) PersistEmployeeLoad(_ context.Context, id uuid.UUID, loadPercent int) error {
	f.persistedLoads[id] = loadPercent
	return nil
}

func (f *fakeSource) PersistProjectHours(_ context.Context, id uuid.UUID, hours int) error {
	f.persistedHours[id] = hours
	return nil
}

func (f *fakeSource) addEmployee(name, department string, maxHours int) uuid.UUID {
	id := uuid.New()
	f.employees = append(f.employees, model.Employee{
		ID:             id,
		Name:           name,
		Department:     department,
		Team:           "core",
		Role:           "engineer",
		MaxWeeklyHours: maxHours,
	})
	return id
}

func (f *fakeSource) addProject(name string, requiredHours int) uuid.UUID {
	id := uuid.New()
	f.projects = append(f.projects, model.Project{
		ID:            id,
		Name:          name,
		Status:        model.ProjectActive,
		Priority:      model.PriorityMedium,
		RequiredHours: requiredHours,
	})
	return id
}

func (f *fakeSource) addAssignment(employeeID, projectID uuid.UUID, hours int, start model.Date, end *model.Date) uuid.UUID {
	id := uuid.New()
	f.assignments = append(f.assignments, model.Assignment{
		ID:           id,
		EmployeeID:   employeeID,
		ProjectID:    projectID,
		HoursPerWeek: hours,
		StartDate:    start,
		EndDate:      end,
	})
	return id
}
