package reviews

import (
	"context"
	"errors"

	"karoo-backend/internal/agents"
	"karoo-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("Review not found")
	ErrInvalidRating  = errors.New("Rating must be between 1 and 5")
)

// Service implements review creation/approval. Each mutation of an approved
// review triggers the agent rating recompute.
type Service struct {
	DB     *gorm.DB
	Agents *agents.Service
}

type CreateReviewInput struct {
	PropertyID uuid.UUID
	UserID     *uuid.UUID
	AgentID    uuid.UUID
	Rating     int
	Comment    string
	Approved   bool
}

func (s *Service) Create(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	r := &models.Review{
		PropertyID: in.PropertyID,
		UserID:     in.UserID,
		AgentID:    in.AgentID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		Approved:   in.Approved,
	}
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	if r.Approved {
		// Not atomic with the insert; see agents.RecomputeRating.
		if _, err := s.Agents.RecomputeRating(ctx, r.AgentID); err != nil {
			return r, err
		}
	}
	return r, nil
}

// GetForProperty returns approved reviews only, newest first.
func (s *Service) GetForProperty(ctx context.Context, propertyID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.DB.WithContext(ctx).
		Where("property_id = ? AND approved = ?", propertyID, true).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Approve marks a review approved and recomputes the agent rating.
func (s *Service) Approve(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	var r models.Review
	if err := s.DB.WithContext(ctx).Where("review_id = ?", reviewID).First(&r).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if !r.Approved {
		if err := s.DB.WithContext(ctx).Model(&r).Update("approved", true).Error; err != nil {
			return nil, err
		}
		r.Approved = true
		if _, err := s.Agents.RecomputeRating(ctx, r.AgentID); err != nil {
			return &r, err
		}
	}
	return &r, nil
}
