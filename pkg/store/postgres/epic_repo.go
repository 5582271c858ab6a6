package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/workplan/workplan/pkg/model"
)

type EpicRepository struct {
	db *gorm.DB
}

func NewEpicRepository(db *gorm.DB) *EpicRepository {
	return &EpicRepository{db: db}
}

type EpicQuery struct {
	Department string
	Team       string
	Status     model.EpicStatus
}

// Upsert inserts the epic or refreshes an existing row with the same tracker
// key, so repeated syncs converge instead of duplicating.
func (r *EpicRepository) Upsert(ctx context.Context, epic *model.Epic) error {
	epic.SyncedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"summary", "status", "department", "team", "labels", "estimated_hours", "synced_at", "updated_at",
		}),
	}).Create(epic).Error
}

func (r *EpicRepository) GetByKey(ctx context.Context, key string) (*model.Epic, error) {
	var epic model.Epic
	err := r.db.WithContext(ctx).First(&epic, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrEpicNotFound
		}
		return nil, err
	}
	return &epic, nil
}

func (r *EpicRepository) List(ctx context.Context, query EpicQuery) ([]model.Epic, error) {
	var epics []model.Epic

	dbQuery := r.db.WithContext(ctx).Model(&model.Epic{})
	if query.Department != "" {
		dbQuery = dbQuery.Where("department = ?", query.Department)
	}
	if query.Team != "" {
		dbQuery = dbQuery.Where("team = ?", query.Team)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}

	err := dbQuery.Order("key ASC").Find(&epics).Error
	return epics, err
}
