package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/workplan/workplan/pkg/model"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

type AssignmentQuery struct {
	EmployeeID *uuid.UUID
	ProjectID  *uuid.UUID
	// StartsBy/EndsBy bound the listing to assignments overlapping a window:
	// EndsBy keeps rows starting no later than it, StartsBy keeps rows ending
	// no earlier than it (open-ended rows always qualify).
	StartsBy *model.Date
	EndsBy   *model.Date
	Preload  bool
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAssignmentNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) List(ctx context.Context, query AssignmentQuery) ([]model.Assignment, error) {
	var assignments []model.Assignment

	dbQuery := r.db.WithContext(ctx).Model(&model.Assignment{})
	if query.EmployeeID != nil {
		dbQuery = dbQuery.Where("employee_id = ?", *query.EmployeeID)
	}
	if query.ProjectID != nil {
		dbQuery = dbQuery.Where("project_id = ?", *query.ProjectID)
	}
	if query.StartsBy != nil {
		dbQuery = dbQuery.Where("(end_date >= ? OR end_date IS NULL)", query.StartsBy.Time)
	}
	if query.EndsBy != nil {
		dbQuery = dbQuery.Where("start_date <= ?", query.EndsBy.Time)
	}
	if query.Preload {
		dbQuery = dbQuery.Preload("Employee").Preload("Project")
	}

	err := dbQuery.Order("start_date ASC, id ASC").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Update(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Assignment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrAssignmentNotFound
	}
	return nil
}

// DeleteByEmployee removes every assignment of the employee and returns the
// distinct project ids that referenced them, for other-side recalculation.
func (r *AssignmentRepository) DeleteByEmployee(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error) {
	assignments, err := r.List(ctx, AssignmentQuery{EmployeeID: &employeeID})
	if err != nil {
		return nil, err
	}

	projectIDs := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		projectIDs = append(projectIDs, a.ProjectID)
	}

	if err := r.db.WithContext(ctx).Delete(&model.Assignment{}, "employee_id = ?", employeeID).Error; err != nil {
		return nil, err
	}
	return projectIDs, nil
}

// DeleteByProject removes every assignment of the project and returns the
// distinct employee ids that referenced them.
func (r *AssignmentRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	assignments, err := r.List(ctx, AssignmentQuery{ProjectID: &projectID})
	if err != nil {
		return nil, err
	}

	employeeIDs := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		employeeIDs = append(employeeIDs, a.EmployeeID)
	}

	if err := r.db.WithContext(ctx).Delete(&model.Assignment{}, "project_id = ?", projectID).Error; err != nil {
		return nil, err
	}
	return employeeIDs, nil
}
