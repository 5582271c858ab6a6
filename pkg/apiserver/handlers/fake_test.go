package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/store/postgres"
	"github.com/workplan/workplan/pkg/workload"
)

// fakeData backs the per-entity fake stores and doubles as the
// workload.DataSource, so the engine and the handlers see the same rows.
type fakeData struct {
	employees   []model.Employee
	projects    []model.Project
	assignments []model.Assignment
}

func (d *fakeData) addEmployee(name string, maxHours int) uuid.UUID {
	id := uuid.New()
	d.employees = append(d.employees, model.Employee{
		ID:             id,
		Name:           name,
		Department:     "engineering",
		Team:           "core",
		Role:           "engineer",
		MaxWeeklyHours: maxHours,
	})
	return id
}

func (d *fakeData) addProject(name string, requiredHours int) uuid.UUID {
	id := uuid.New()
	d.projects = append(d.projects, model.Project{
		ID:            id,
		Name:          name,
		Status:        model.ProjectActive,
		Priority:      model.PriorityMedium,
		RequiredHours: requiredHours,
	})
	return id
}

func (d *fakeData) addAssignment(employeeID, projectID uuid.UUID, hours int, start model.Date) uuid.UUID {
	id := uuid.New()
	d.assignments = append(d.assignments, model.Assignment{
		ID:           id,
		EmployeeID:   employeeID,
		ProjectID:    projectID,
		HoursPerWeek: hours,
		StartDate:    start,
	})
	return id
}

func (d *fakeData) employee(id uuid.UUID) *model.Employee {
	for i := range d.employees {
		if d.employees[i].ID == id {
			return &d.employees[i]
		}
	}
	return nil
}

func (d *fakeData) project(id uuid.UUID) *model.Project {
	for i := range d.projects {
		if d.projects[i].ID == id {
			return &d.projects[i]
		}
	}
	return nil
}

// workload.DataSource

func (d *fakeData) ListAssignments(_ context.Context, filter workload.AssignmentFilter) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range d.assignments {
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

func (d *fakeData) ListEmployees(_ context.Context, filter workload.EmployeeFilter) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range d.employees {
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

func (d *fakeData) ListProjects(_ context.Context) ([]model.Project, error) {
	return d.projects, nil
}

func (d *fakeData) GetEmployee(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	if e := d.employee(id); e != nil {
		employee := *e
		return &employee, nil
	}
	return nil, model.ErrEmployeeNotFound
}

func (d *fakeData) GetProject(_ context.Context, id uuid.UUID) (*model.Project, error) {
	if p := d.project(id); p != nil {
		project := *p
		return &project, nil
	}
	return nil, model.ErrProjectNotFound
}

func (d *fakeData) PersistEmployeeLoad(_ context.Context, id uuid.UUID, loadPercent int) error {
	if e := d.employee(id); e != nil {
		e.CurrentLoad = loadPercent
	}
	return nil
}

func (d *fakeData) PersistProjectHours(_ context.Context, id uuid.UUID, hours int) error {
	if p := d.project(id); p != nil {
		p.CurrentHours = hours
	}
	return nil
}

// EmployeeStore

type fakeEmployeeStore struct{ d *fakeData }

func (s *fakeEmployeeStore) Create(_ context.Context, employee *model.Employee) error {
	employee.ID = uuid.New()
	s.d.employees = append(s.d.employees, *employee)
	return nil
}

func (s *fakeEmployeeStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	return s.d.GetEmployee(ctx, id)
}

func (s *fakeEmployeeStore) List(ctx context.Context, query postgres.EmployeeQuery) ([]model.Employee, error) {
	return s.d.ListEmployees(ctx, workload.EmployeeFilter{
		Department: query.Department,
		Team:       query.Team,
		Role:       query.Role,
	})
}

func (s *fakeEmployeeStore) Update(_ context.Context, employee *model.Employee) error {
	if e := s.d.employee(employee.ID); e != nil {
		*e = *employee
		return nil
	}
	return model.ErrEmployeeNotFound
}

func (s *fakeEmployeeStore) Delete(_ context.Context, id uuid.UUID) error {
	for i := range s.d.employees {
		if s.d.employees[i].ID == id {
			s.d.employees = append(s.d.employees[:i], s.d.employees[i+1:]...)
			return nil
		}
	}
	return model.ErrEmployeeNotFound
}

func (s *fakeEmployeeStore) Stats(_ context.Context) (*postgres.EmployeeStats, error) {
	stats := &postgres.EmployeeStats{TotalEmployees: int64(len(s.d.employees))}
	for _, e := range s.d.employees {
		if e.CurrentLoad > 100 {
			stats.Overloaded++
		}
	}
	return stats, nil
}

// ProjectStore

type fakeProjectStore struct{ d *fakeData }

func (s *fakeProjectStore) Create(_ context.Context, project *model.Project) error {
	project.ID = uuid.New()
	s.d.projects = append(s.d.projects, *project)
	return nil
}

func (s *fakeProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return s.d.GetProject(ctx, id)
}

func (s *fakeProjectStore) List(_ context.Context, query postgres.ProjectQuery) ([]model.Project, error) {
	var out []model.Project
	for _, p := range s.d.projects {
		if query.Status != "" && p.Status != query.Status {
			continue
		}
		if query.Priority != "" && p.Priority != query.Priority {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeProjectStore) Update(_ context.Context, project *model.Project) error {
	if p := s.d.project(project.ID); p != nil {
		*p = *project
		return nil
	}
	return model.ErrProjectNotFound
}

func (s *fakeProjectStore) Delete(_ context.Context, id uuid.UUID) error {
	for i := range s.d.projects {
		if s.d.projects[i].ID == id {
			s.d.projects = append(s.d.projects[:i], s.d.projects[i+1:]...)
			return nil
		}
	}
	return model.ErrProjectNotFound
}

func (s *fakeProjectStore) CountByStatus(_ context.Context, status model.ProjectStatus) (int64, error) {
	var count int64
	for _, p := range s.d.projects {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *fakeProjectStore) Stats(_ context.Context) (*postgres.ProjectStats, error) {
	return &postgres.ProjectStats{TotalProjects: int64(len(s.d.projects))}, nil
}

// AssignmentStore

type fakeAssignmentStore struct{ d *fakeData }

func (s *fakeAssignmentStore) Create(_ context.Context, assignment *model.Assignment) error {
	assignment.ID = uuid.New()
	s.d.assignments = append(s.d.assignments, *assignment)
	return nil
}

func (s *fakeAssignmentStore) GetByID(_ context.Context, id uuid.UUID) (*model.Assignment, error) {
	for i := range s.d.assignments {
		if s.d.assignments[i].ID == id {
			assignment := s.d.assignments[i]
			return &assignment, nil
		}
	}
	return nil, model.ErrAssignmentNotFound
}

func (s *fakeAssignmentStore) List(ctx context.Context, query postgres.AssignmentQuery) ([]model.Assignment, error) {
	return s.d.ListAssignments(ctx, workload.AssignmentFilter{
		EmployeeID: query.EmployeeID,
		ProjectID:  query.ProjectID,
	})
}

func (s *fakeAssignmentStore) Update(_ context.Context, assignment *model.Assignment) error {
	for i := range s.d.assignments {
		if s.d.assignments[i].ID == assignment.ID {
			s.d.assignments[i] = *assignment
			return nil
		}
	}
	return model.ErrAssignmentNotFound
}

func (s *fakeAssignmentStore) Delete(_ context.Context, id uuid.UUID) error {
	for i := range s.d.assignments {
		if s.d.assignments[i].ID == id {
			s.d.assignments = append(s.d.assignments[:i], s.d.assignments[i+1:]...)
			return nil
		}
	}
	return model.ErrAssignmentNotFound
}

func (s *fakeAssignmentStore) DeleteByEmployee(_ context.Context, employeeID uuid.UUID) ([]uuid.UUID, error) {
	var projectIDs []uuid.UUID
	kept := s.d.assignments[:0]
	for _, a := range s.d.assignments {
		if a.EmployeeID == employeeID {
			projectIDs = append(projectIDs, a.ProjectID)
			continue
		}
		kept = append(kept, a)
	}
	s.d.assignments = kept
	return projectIDs, nil
}

func (s *fakeAssignmentStore) DeleteByProject(_ context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	var employeeIDs []uuid.UUID
	kept := s.d.assignments[:0]
	for _, a := range s.d.assignments {
		if a.ProjectID == projectID {
			employeeIDs = append(employeeIDs, a.EmployeeID)
			continue
		}
		kept = append(kept, a)
	}
	s.d.assignments = kept
	return employeeIDs, nil
}
