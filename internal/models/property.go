package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property types stored in property_type.
const (
	PropertyTypeFarm         = "farm"
	PropertyTypeSmallholding = "smallholding"
	PropertyTypePlot         = "plot"
	PropertyTypeHouse        = "house"
)

// Property statuses. Transitions are caller-driven; no state machine is enforced.
const (
	PropertyStatusActive  = "active"
	PropertyStatusPending = "pending"
	PropertyStatusSold    = "sold"
	PropertyStatusRented  = "rented"
)

// PropertyFeatures is the structured feature blob stored as a JSON column.
type PropertyFeatures struct {
	Bedrooms       int  `json:"bedrooms"`
	Bathrooms      int  `json:"bathrooms"`
	Garages        int  `json:"garages"`
	HasWater       bool `json:"hasWater"`
	HasElectricity bool `json:"hasElectricity"`
	HasBorehole    bool `json:"hasBorehole"`
	PetFriendly    bool `json:"petFriendly"`
	Furnished      bool `json:"furnished"`
}

// PropertySize holds free-text size descriptions (units vary per listing).
type PropertySize struct {
	Land     string `json:"land"`
	Building string `json:"building"`
	Total    string `json:"total"`
}

// Property is a catalog listing. Deletes are explicit hard removals, so there is
// no soft-delete column here.
type Property struct {
	PropertyID   uuid.UUID                   `gorm:"column:property_id;type:uuid;primaryKey" json:"property_id"`
	Title        string                      `gorm:"column:title;not null" json:"title"`
	Description  string                      `gorm:"column:description;type:text" json:"description"`
	Address      string                      `gorm:"column:address" json:"address"`
	City         string                      `gorm:"column:city;not null" json:"city"`
	Province     string                      `gorm:"column:province;not null" json:"province"`
	Latitude     float64                     `gorm:"column:latitude" json:"latitude"`
	Longitude    float64                     `gorm:"column:longitude" json:"longitude"`
	Price        float64                     `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	PriceDisplay string                      `gorm:"column:price_display" json:"price_display"`
	Size         PropertySize                `gorm:"column:size;serializer:json" json:"size"`
	Features     PropertyFeatures            `gorm:"column:features;serializer:json" json:"features"`
	PropertyType string                      `gorm:"column:property_type;type:varchar(20);not null" json:"property_type"`
	Status       string                      `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	Featured     bool                        `gorm:"column:featured;default:false" json:"featured"`
	Images       datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	AgentID      *uuid.UUID                  `gorm:"column:agent_id;type:uuid" json:"agent_id"`
	AgentName    string                      `gorm:"column:agent_name" json:"agent_name"`
	AgentPhone   string                      `gorm:"column:agent_phone" json:"agent_phone"`
	AgentEmail   string                      `gorm:"column:agent_email" json:"agent_email"`
	OwnerID      *uuid.UUID                  `gorm:"column:owner_id;type:uuid" json:"owner_id"`
	Views        int64                       `gorm:"column:views;default:0" json:"views"`
	Inquiries    int64                       `gorm:"column:inquiries;default:0" json:"inquiries"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

func (Property) TableName() string {
	return "Properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.PropertyID == uuid.Nil {
		p.PropertyID = uuid.New()
	}
	return nil
}

// ValidPropertyType returns true if t is one of the allowed property types.
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyTypeFarm, PropertyTypeSmallholding, PropertyTypePlot, PropertyTypeHouse:
		return true
	}
	return false
}

// ValidPropertyStatus returns true if s is one of the allowed statuses.
func ValidPropertyStatus(s string) bool {
	switch s {
	case PropertyStatusActive, PropertyStatusPending, PropertyStatusSold, PropertyStatusRented:
		return true
	}
	return false
}
