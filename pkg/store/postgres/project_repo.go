package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/workplan/workplan/pkg/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type ProjectQuery struct {
	Status   model.ProjectStatus
	Priority model.ProjectPriority
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) List(ctx context.Context, query ProjectQuery) ([]model.Project, error) {
	var projects []model.Project

	dbQuery := r.db.WithContext(ctx).Model(&model.Project{})
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if query.Priority != "" {
		dbQuery = dbQuery.Where("priority = ?", query.Priority)
	}

	err := dbQuery.Order("created_at DESC, id ASC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) UpdateHours(ctx context.Context, id uuid.UUID, hours int) error {
	return r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_hours": hours,
			"updated_at":    time.Now(),
		}).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, status model.ProjectStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

type ProjectStats struct {
	TotalProjects int64           `json:"total_projects"`
	ByStatus      []StatusCount   `json:"by_status"`
	ByPriority    []PriorityCount `json:"by_priority"`
}

func (r *ProjectRepository) Stats(ctx context.Context) (*ProjectStats, error) {
	var stats ProjectStats

	if err := r.db.WithContext(ctx).Model(&model.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&model.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&stats.ByStatus).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&model.Project{}).
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Order("priority ASC").
		Scan(&stats.ByPriority).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
