package workload

import (
	"context"

	"github.com/google/uuid"

	"github.com/workplan/workplan/pkg/model"
)

// AssignmentFilter narrows ListAssignments by either side of the relation.
// Zero value means unconstrained.
type AssignmentFilter struct {
	EmployeeID *uuid.UUID
	ProjectID  *uuid.UUID
}

// EmployeeFilter narrows ListEmployees. Zero value means all employees.
type EmployeeFilter struct {
	Department string
	Team       string
	Role       string
}

// DataSource is the persistence collaborator injected into the engine. The
// engine holds no state of its own; every computation reads through this
// interface and writes back only the two denormalized fields.
type DataSource interface {
	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	PersistEmployeeLoad(ctx context.Context, id uuid.UUID, loadPercent int) error
	PersistProjectHours(ctx context.Context, id uuid.UUID, hours int) error
}
