package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inquiry statuses.
const (
	InquiryStatusPending   = "pending"
	InquiryStatusResponded = "responded"
	InquiryStatusScheduled = "scheduled"
	InquiryStatusCompleted = "completed"
	InquiryStatusClosed    = "closed"
)

// InquiryResponse is one entry in the ordered response thread.
type InquiryResponse struct {
	Message   string    `json:"message"`
	Responder string    `json:"responder"`
	SentAt    time.Time `json:"sentAt"`
}

// Inquiry is a buyer message about a property. Property/user references are
// weak; contact fields are snapshotted at creation time.
type Inquiry struct {
	InquiryID  uuid.UUID         `gorm:"column:inquiry_id;type:uuid;primaryKey" json:"inquiry_id"`
	PropertyID uuid.UUID         `gorm:"column:property_id;type:uuid;not null" json:"property_id"`
	UserID     *uuid.UUID        `gorm:"column:user_id;type:uuid" json:"user_id"`
	AgentID    *uuid.UUID        `gorm:"column:agent_id;type:uuid" json:"agent_id"`
	Name       string            `gorm:"column:name;not null" json:"name"`
	Email      string            `gorm:"column:email;not null" json:"email"`
	Phone      string            `gorm:"column:phone" json:"phone"`
	Message    string            `gorm:"column:message;type:text;not null" json:"message"`
	Status     string            `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`
	Responses  []InquiryResponse `gorm:"column:responses;serializer:json" json:"responses"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func (Inquiry) TableName() string {
	return "Inquiries"
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.InquiryID == uuid.Nil {
		i.InquiryID = uuid.New()
	}
	return nil
}

// ValidInquiryStatus returns true if s is one of the allowed statuses.
func ValidInquiryStatus(s string) bool {
	switch s {
	case InquiryStatusPending, InquiryStatusResponded, InquiryStatusScheduled,
		InquiryStatusCompleted, InquiryStatusClosed:
		return true
	}
	return false
}
