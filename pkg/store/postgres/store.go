package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/workplan/workplan/pkg/config"
	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/workload"
)

type Store struct {
	db *gorm.DB
}

func NewStore(cfg *config.DatabaseConfig) (*Store, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	return &Store{db: db}, nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// The Store doubles as the engine's workload.DataSource so the calculator,
// recalculator, allocator and timeline builder stay persistence-agnostic.

func (s *Store) ListAssignments(ctx context.Context, filter workload.AssignmentFilter) ([]model.Assignment, error) {
	return NewAssignmentRepository(s.db).List(ctx, AssignmentQuery{
		EmployeeID: filter.EmployeeID,
		ProjectID:  filter.ProjectID,
	})
}

func (s *Store) ListEmployees(ctx context.Context, filter workload.EmployeeFilter) ([]model.Employee, error) {
	return NewEmployeeRepository(s.db).List(ctx, EmployeeQuery{
		Department: filter.Department,
		Team:       filter.Team,
		Role:       filter.Role,
	})
}

func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	return NewProjectRepository(s.db).List(ctx, ProjectQuery{})
}

func (s *Store) GetEmployee(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	return NewEmployeeRepository(s.db).GetByID(ctx, id)
}

func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return NewProjectRepository(s.db).GetByID(ctx, id)
}

func (s *Store) PersistEmployeeLoad(ctx context.Context, id uuid.UUID, loadPercent int) error {
	return NewEmployeeRepository(s.db).UpdateLoad(ctx, id, loadPercent)
}

func (s *Store) PersistProjectHours(ctx context.Context, id uuid.UUID, hours int) error {
	return NewProjectRepository(s.db).UpdateHours(ctx, id, hours)
}
