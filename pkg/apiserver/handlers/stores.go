package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/store/postgres"
)

// The handlers depend on these narrow store contracts rather than the
// concrete repositories; the postgres repositories satisfy them, and tests
// substitute in-memory implementations.

type EmployeeStore interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	List(ctx context.Context, query postgres.EmployeeQuery) ([]model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*postgres.EmployeeStats, error)
}

type ProjectStore interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, query postgres.ProjectQuery) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status model.ProjectStatus) (int64, error)
	Stats(ctx context.Context) (*postgres.ProjectStats, error)
}

type AssignmentStore interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	List(ctx context.Context, query postgres.AssignmentQuery) ([]model.Assignment, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEmployee(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error)
	DeleteByProject(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
}

type EpicStore interface {
	GetByKey(ctx context.Context, key string) (*model.Epic, error)
	List(ctx context.Context, query postgres.EpicQuery) ([]model.Epic, error)
}
