package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinHoursPerWeek = 1
	MaxHoursPerWeek = 80
)

type Assignment struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee     *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project      *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	HoursPerWeek int       `gorm:"not null" json:"hours_per_week"`
	StartDate    Date      `gorm:"not null" json:"start_date"`
	// EndDate nil means open-ended; overlap checks treat it as far future.
	EndDate   *Date     `json:"end_date,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
