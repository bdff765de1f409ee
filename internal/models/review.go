package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a 1-5 rating of an agent on a property. Only approved reviews feed
// the agent's derived rating.
type Review struct {
	ReviewID   uuid.UUID  `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`
	PropertyID uuid.UUID  `gorm:"column:property_id;type:uuid;not null" json:"property_id"`
	UserID     *uuid.UUID `gorm:"column:user_id;type:uuid" json:"user_id"`
	AgentID    uuid.UUID  `gorm:"column:agent_id;type:uuid;not null" json:"agent_id"`
	Rating     int        `gorm:"column:rating;not null" json:"rating"`
	Comment    string     `gorm:"column:comment;type:text" json:"comment"`
	Approved   bool       `gorm:"column:approved;default:false" json:"approved"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (Review) TableName() string {
	return "Reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewID == uuid.Nil {
		r.ReviewID = uuid.New()
	}
	return nil
}
