package agents

import (
	"context"
	"errors"

	"karoo-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAgentNotFound = errors.New("Agent not found")

// Service implements agent profile reads and the derived-rating recompute.
type Service struct {
	DB *gorm.DB
}

func (s *Service) GetAll(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	if err := s.DB.WithContext(ctx).Order("rating DESC").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	var a models.Agent
	if err := s.DB.WithContext(ctx).Where("agent_id = ?", id).First(&a).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// RecomputeRating averages the agent's approved reviews and writes the
// result. Read-then-write: concurrent review writes can interleave, which is
// acceptable for this low-write-rate admin path.
func (s *Service) RecomputeRating(ctx context.Context, agentID uuid.UUID) (*models.Agent, error) {
	var reviews []models.Review
	if err := s.DB.WithContext(ctx).
		Where("agent_id = ? AND approved = ?", agentID, true).
		Find(&reviews).Error; err != nil {
		return nil, err
	}

	var rating float64
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		rating = float64(sum) / float64(len(reviews))
	}

	if err := s.DB.WithContext(ctx).Model(&models.Agent{}).
		Where("agent_id = ?", agentID).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_reviews": len(reviews),
		}).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, agentID)
}
