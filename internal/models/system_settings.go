package models

import (
	"time"
)

// SystemSettingsID is the fixed primary key of the singleton settings row.
const SystemSettingsID = "default"

// SystemSettingsFlags holds site-wide feature toggles.
type SystemSettingsFlags struct {
	RegistrationOpen bool `json:"registrationOpen"`
	ReviewsEnabled   bool `json:"reviewsEnabled"`
	MaintenanceMode  bool `json:"maintenanceMode"`
}

// SystemSettings is a singleton document (id = "default").
type SystemSettings struct {
	ID           string              `gorm:"column:id;primaryKey" json:"id"`
	SiteName     string              `gorm:"column:site_name;not null" json:"site_name"`
	Currency     string              `gorm:"column:currency;default:'ZAR'" json:"currency"`
	ContactEmail string              `gorm:"column:contact_email" json:"contact_email"`
	Flags        SystemSettingsFlags `gorm:"column:flags;serializer:json" json:"flags"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func (SystemSettings) TableName() string {
	return "SystemSettings"
}
