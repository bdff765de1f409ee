package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserPreferences holds notification flags stored as a JSON column.
type UserPreferences struct {
	EmailAlerts       bool `json:"emailAlerts"`
	SavedSearchDigest bool `json:"savedSearchDigest"`
	InquiryUpdates    bool `json:"inquiryUpdates"`
}

// User is an account row. Legacy rows may have an empty role column; callers
// must treat that as "user" (see access.RoleForAccount). Users are never
// hard-deleted by handlers.
type User struct {
	UserID           uuid.UUID                   `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname         string                      `gorm:"column:fullname;not null" json:"fullname"`
	Email            string                      `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Phone            string                      `gorm:"column:phone" json:"phone"`
	PasswordHash     string                      `gorm:"column:password_hash;not null" json:"-"`
	Role             string                      `gorm:"column:role" json:"role"`
	PhotoURL         string                      `gorm:"column:photo_url" json:"photo_url"`
	IsActive         bool                        `gorm:"column:is_active;default:true" json:"is_active"`
	Preferences      UserPreferences             `gorm:"column:preferences;serializer:json" json:"preferences"`
	SavedProperties  datatypes.JSONSlice[string] `gorm:"column:saved_properties" json:"saved_properties"`
	ViewedProperties datatypes.JSONSlice[string] `gorm:"column:viewed_properties" json:"viewed_properties"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "Users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
