package savedsearches

import (
	"context"
	"encoding/json"
	"errors"

	"karoo-backend/internal/catalog"
	"karoo-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSearchNotFound   = errors.New("Saved search not found")
	ErrNotSearchOwner   = errors.New("Unauthorized saved search access")
	ErrInvalidFrequency = errors.New("Invalid digest frequency")
	ErrInvalidFilters   = errors.New("Invalid filters payload")
)

// Service implements saved-search CRUD. Filters are stored as the exact JSON
// shape the catalog composer consumes.
type Service struct {
	DB      *gorm.DB
	Catalog *catalog.Service
}

type CreateInput struct {
	UserID    uuid.UUID
	Name      string
	Filters   catalog.Filter
	Frequency string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.SavedSearch, error) {
	freq := in.Frequency
	if freq == "" {
		freq = models.FrequencyNever
	}
	if !models.ValidFrequency(freq) {
		return nil, ErrInvalidFrequency
	}
	raw, err := json.Marshal(in.Filters)
	if err != nil {
		return nil, ErrInvalidFilters
	}
	ss := &models.SavedSearch{
		UserID:    in.UserID,
		Name:      in.Name,
		Filters:   datatypes.JSON(raw),
		Frequency: freq,
	}
	if err := s.DB.WithContext(ctx).Create(ss).Error; err != nil {
		return nil, err
	}
	return ss, nil
}

func (s *Service) GetForUser(ctx context.Context, userID uuid.UUID) ([]models.SavedSearch, error) {
	var out []models.SavedSearch
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) getOwned(ctx context.Context, searchID, userID uuid.UUID) (*models.SavedSearch, error) {
	var ss models.SavedSearch
	if err := s.DB.WithContext(ctx).Where("search_id = ?", searchID).First(&ss).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSearchNotFound
		}
		return nil, err
	}
	if ss.UserID != userID {
		return nil, ErrNotSearchOwner
	}
	return &ss, nil
}

type UpdateInput struct {
	Name      *string
	Filters   *catalog.Filter
	Frequency *string
}

func (s *Service) Update(ctx context.Context, searchID, userID uuid.UUID, in UpdateInput) (*models.SavedSearch, error) {
	ss, err := s.getOwned(ctx, searchID, userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Frequency != nil {
		if !models.ValidFrequency(*in.Frequency) {
			return nil, ErrInvalidFrequency
		}
		updates["frequency"] = *in.Frequency
	}
	if in.Filters != nil {
		raw, err := json.Marshal(*in.Filters)
		if err != nil {
			return nil, ErrInvalidFilters
		}
		updates["filters"] = datatypes.JSON(raw)
	}
	if len(updates) == 0 {
		return ss, nil
	}
	if err := s.DB.WithContext(ctx).Model(ss).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.getOwned(ctx, searchID, userID)
}

func (s *Service) Delete(ctx context.Context, searchID, userID uuid.UUID) error {
	ss, err := s.getOwned(ctx, searchID, userID)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(ss).Error
}

// Run executes a saved search through the catalog composer and stamps
// last_run_at. Used by the digest scheduler and available for ad-hoc runs.
func (s *Service) Run(ctx context.Context, ss *models.SavedSearch) (*catalog.Result, error) {
	var f catalog.Filter
	if len(ss.Filters) > 0 {
		if err := json.Unmarshal(ss.Filters, &f); err != nil {
			return nil, ErrInvalidFilters
		}
	}
	res, err := s.Catalog.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	now := gorm.Expr("CURRENT_TIMESTAMP")
	_ = s.DB.WithContext(ctx).Model(ss).UpdateColumn("last_run_at", now).Error
	return res, nil
}

// DueForFrequency returns the saved searches subscribed to the given digest
// frequency.
func (s *Service) DueForFrequency(ctx context.Context, frequency string) ([]models.SavedSearch, error) {
	var out []models.SavedSearch
	if err := s.DB.WithContext(ctx).Where("frequency = ?", frequency).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
