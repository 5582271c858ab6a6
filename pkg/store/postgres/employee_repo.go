package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/workplan/workplan/pkg/model"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

type EmployeeQuery struct {
	Department string
	Team       string
	Role       string
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) List(ctx context.Context, query EmployeeQuery) ([]model.Employee, error) {
	var employees []model.Employee

	dbQuery := r.db.WithContext(ctx).Model(&model.Employee{})
	if query.Department != "" {
		dbQuery = dbQuery.Where("department = ?", query.Department)
	}
	if query.Team != "" {
		dbQuery = dbQuery.Where("team = ?", query.Team)
	}
	if query.Role != "" {
		dbQuery = dbQuery.Where("role = ?", query.Role)
	}

	err := dbQuery.Order("created_at ASC, id ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *EmployeeRepository) UpdateLoad(ctx context.Context, id uuid.UUID, loadPercent int) error {
	return r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_load": loadPercent,
			"updated_at":   time.Now(),
		}).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrEmployeeNotFound
	}
	return nil
}

type DepartmentLoad struct {
	Department string  `json:"department"`
	Count      int64   `json:"count"`
	AvgLoad    float64 `json:"avg_load"`
}

type EmployeeStats struct {
	TotalEmployees int64            `json:"total_employees"`
	Overloaded     int64            `json:"overloaded"`
	AvgLoad        int              `json:"avg_load"`
	ByDepartment   []DepartmentLoad `json:"by_department"`
}

func (r *EmployeeRepository) Stats(ctx context.Context) (*EmployeeStats, error) {
	var stats EmployeeStats

	if err := r.db.WithContext(ctx).Model(&model.Employee{}).Count(&stats.TotalEmployees).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("current_load > ?", 100).
		Count(&stats.Overloaded).Error; err != nil {
		return nil, err
	}

	var avgLoad *float64
	if err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Select("AVG(current_load)").
		Scan(&avgLoad).Error; err != nil {
		return nil, err
	}
	if avgLoad != nil {
		stats.AvgLoad = int(*avgLoad + 0.5)
	}

	if err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Select("department, COUNT(*) AS count, AVG(current_load) AS avg_load").
		Group("department").
		Order("department ASC").
		Scan(&stats.ByDepartment).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
