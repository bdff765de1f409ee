package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedSearch digest frequencies.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyNever   = "never"
)

// SavedSearch stores a user's filter set in exactly the shape the catalog
// query composer consumes (raw JSON; unmarshalled by the savedsearches service).
type SavedSearch struct {
	SearchID  uuid.UUID      `gorm:"column:search_id;type:uuid;primaryKey" json:"search_id"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Filters   datatypes.JSON `gorm:"column:filters" json:"filters"`
	Frequency string         `gorm:"column:frequency;type:varchar(10);default:'never'" json:"frequency"`
	LastRunAt *time.Time     `gorm:"column:last_run_at" json:"last_run_at"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (SavedSearch) TableName() string {
	return "SavedSearches"
}

func (s *SavedSearch) BeforeCreate(tx *gorm.DB) error {
	if s.SearchID == uuid.Nil {
		s.SearchID = uuid.New()
	}
	return nil
}

// ValidFrequency returns true if f is one of the allowed digest frequencies.
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyNever:
		return true
	}
	return false
}
