package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectCompleted ProjectStatus = "completed"
)

type ProjectPriority string

const (
	PriorityHigh   ProjectPriority = "high"
	PriorityMedium ProjectPriority = "medium"
	PriorityLow    ProjectPriority = "low"
)

type Project struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description"`
	Status        ProjectStatus   `gorm:"type:varchar(50);default:'planning';index" json:"status"`
	Priority      ProjectPriority `gorm:"type:varchar(50);default:'medium';index" json:"priority"`
	StartDate     *Date           `json:"start_date,omitempty"`
	EndDate       *Date           `json:"end_date,omitempty"`
	RequiredHours int             `gorm:"default:0" json:"required_hours"`
	// CurrentHours is the denormalized sum of hours_per_week over every
	// assignment referencing this project, maintained by the recalculator.
	CurrentHours int            `gorm:"default:0" json:"current_hours"`
	Assignments  []Assignment   `gorm:"foreignKey:ProjectID" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func ValidProjectStatus(status ProjectStatus) bool {
	switch status {
	case ProjectPlanning, ProjectActive, ProjectPaused, ProjectCompleted:
		return true
	default:
		return false
	}
}

func ValidProjectPriority(priority ProjectPriority) bool {
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}
