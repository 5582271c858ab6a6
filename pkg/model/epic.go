package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type EpicStatus string

const (
	EpicOpen       EpicStatus = "open"
	EpicInProgress EpicStatus = "in_progress"
	EpicDone       EpicStatus = "done"
)

// Epic is an issue pulled from the external tracker, mapped onto the
// planning org structure so its estimate can be rolled up per team and
// department.
type Epic struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Key            string         `gorm:"uniqueIndex;not null" json:"key"`
	Summary        string         `gorm:"not null" json:"summary"`
	Status         EpicStatus     `gorm:"type:varchar(50);default:'open';index" json:"status"`
	Department     string         `gorm:"index" json:"department"`
	Team           string         `gorm:"index" json:"team"`
	Labels         pq.StringArray `gorm:"type:text[]" json:"labels"`
	EstimatedHours int            `gorm:"default:0" json:"estimated_hours"`
	SyncedAt       time.Time      `json:"synced_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
