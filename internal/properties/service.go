package properties

import (
	"context"
	"errors"
	"fmt"

	"karoo-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound = errors.New("Property not found")
	ErrInvalidPrice     = errors.New("Price must be non-negative")
	ErrInvalidType      = errors.New("Invalid property type")
	ErrInvalidStatus    = errors.New("Invalid property status")
	ErrNotOwner         = errors.New("Unauthorized property edit")
)

// Service implements property CRUD and counter bumps.
type Service struct {
	DB *gorm.DB
}

type CreatePropertyInput struct {
	Title        string
	Description  string
	Address      string
	City         string
	Province     string
	Latitude     float64
	Longitude    float64
	Price        float64
	Size         models.PropertySize
	Features     models.PropertyFeatures
	PropertyType string
	Status       string
	Featured     bool
	Images       []string
	AgentID      *uuid.UUID
	AgentName    string
	AgentPhone   string
	AgentEmail   string
	OwnerID      *uuid.UUID
}

func (s *Service) Create(ctx context.Context, in CreatePropertyInput) (*models.Property, error) {
	if in.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if !models.ValidPropertyType(in.PropertyType) {
		return nil, ErrInvalidType
	}
	status := in.Status
	if status == "" {
		status = models.PropertyStatusActive
	}
	if !models.ValidPropertyStatus(status) {
		return nil, ErrInvalidStatus
	}
	p := &models.Property{
		Title:        in.Title,
		Description:  in.Description,
		Address:      in.Address,
		City:         in.City,
		Province:     in.Province,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Price:        in.Price,
		PriceDisplay: FormatPrice(in.Price),
		Size:         in.Size,
		Features:     in.Features,
		PropertyType: in.PropertyType,
		Status:       status,
		Featured:     in.Featured,
		Images:       in.Images,
		AgentID:      in.AgentID,
		AgentName:    in.AgentName,
		AgentPhone:   in.AgentPhone,
		AgentEmail:   in.AgentEmail,
		OwnerID:      in.OwnerID,
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("Failed to create property: %v", err)
	}
	return p, nil
}

// GetByID fetches one property. IncrementViews is a separate call so reads
// issued by admin tooling do not skew the counter.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var p models.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ?", id).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetFeatured returns active featured properties, newest first.
func (s *Service) GetFeatured(ctx context.Context, limit int) ([]models.Property, error) {
	q := s.DB.WithContext(ctx).
		Where("featured = ? AND status = ?", true, models.PropertyStatusActive).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var props []models.Property
	if err := q.Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

type UpdatePropertyInput struct {
	Title       *string
	Description *string
	Price       *float64
	Status      *string
	Featured    *bool
	Images      []string
}

// Update edits a property. A non-admin caller must be the listing agent or
// the owner.
func (s *Service) Update(ctx context.Context, id uuid.UUID, callerID uuid.UUID, isAdmin bool, in UpdatePropertyInput) (*models.Property, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !isOwnedBy(p, callerID) {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, ErrInvalidPrice
		}
		updates["price"] = *in.Price
		updates["price_display"] = FormatPrice(*in.Price)
	}
	if in.Status != nil {
		if !models.ValidPropertyStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *in.Status
	}
	if in.Featured != nil {
		updates["featured"] = *in.Featured
	}
	if in.Images != nil {
		p.Images = in.Images
		if err := s.DB.WithContext(ctx).Model(p).Update("images", p.Images).Error; err != nil {
			return nil, err
		}
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(p).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

// Delete removes a property permanently. No archival.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("property_id = ?", id).Delete(&models.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// IncrementViews bumps the view counter with a single atomic update.
func (s *Service) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Model(&models.Property{}).
		Where("property_id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// IncrementInquiries bumps the inquiry counter with a single atomic update.
func (s *Service) IncrementInquiries(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Model(&models.Property{}).
		Where("property_id = ?", id).
		UpdateColumn("inquiries", gorm.Expr("inquiries + 1")).Error
}

func isOwnedBy(p *models.Property, callerID uuid.UUID) bool {
	if callerID == uuid.Nil {
		return false
	}
	if p.AgentID != nil && *p.AgentID == callerID {
		return true
	}
	if p.OwnerID != nil && *p.OwnerID == callerID {
		return true
	}
	return false
}

// FormatPrice renders a ZAR display string, e.g. "R 1 850 000".
func FormatPrice(price float64) string {
	n := int64(price)
	if n < 0 {
		n = 0
	}
	s := fmt.Sprintf("%d", n)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, ch := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, ch)
	}
	return "R " + string(out)
}
