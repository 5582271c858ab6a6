package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultMaxWeeklyHours = 40

type Employee struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Department    string    `gorm:"not null;index" json:"department"`
	Team          string    `gorm:"not null;index" json:"team"`
	Role          string    `gorm:"not null" json:"role"`
	MaxWeeklyHours int      `gorm:"default:40" json:"max_weekly_hours"`
	// CurrentLoad is a denormalized utilization percentage maintained by the
	// recalculator. It sums hours over all assignments regardless of date.
	CurrentLoad int            `gorm:"default:0" json:"current_load"`
	Assignments []Assignment   `gorm:"foreignKey:EmployeeID" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
