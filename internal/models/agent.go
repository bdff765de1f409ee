package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Agent is a licensed agent profile. UserID is a weak reference to the account
// row; Rating and TotalReviews are derived from approved reviews and recomputed
// on each new review (read-then-write, not atomic).
type Agent struct {
	AgentID         uuid.UUID                   `gorm:"column:agent_id;type:uuid;primaryKey" json:"agent_id"`
	UserID          *uuid.UUID                  `gorm:"column:user_id;type:uuid" json:"user_id"`
	Fullname        string                      `gorm:"column:fullname;not null" json:"fullname"`
	Email           string                      `gorm:"column:email;not null" json:"email"`
	Phone           string                      `gorm:"column:phone" json:"phone"`
	Agency          string                      `gorm:"column:agency" json:"agency"`
	LicenseNumber   string                      `gorm:"column:license_number" json:"license_number"`
	Specializations datatypes.JSONSlice[string] `gorm:"column:specializations" json:"specializations"`
	ServiceAreas    datatypes.JSONSlice[string] `gorm:"column:service_areas" json:"service_areas"`
	Bio             string                      `gorm:"column:bio;type:text" json:"bio"`
	Rating          float64                     `gorm:"column:rating;default:0" json:"rating"`
	TotalReviews    int64                       `gorm:"column:total_reviews;default:0" json:"total_reviews"`
	CreatedAt       time.Time                   `json:"createdAt"`
	UpdatedAt       time.Time                   `json:"updatedAt"`
}

func (Agent) TableName() string {
	return "Agents"
}

func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.AgentID == uuid.Nil {
		a.AgentID = uuid.New()
	}
	return nil
}
