package inquiries

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"karoo-backend/internal/emails"
	"karoo-backend/internal/models"
	"karoo-backend/internal/pkg/validation"
	"karoo-backend/internal/properties"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInquiryNotFound = errors.New("Inquiry not found")
	ErrInvalidStatus   = errors.New("Invalid inquiry status")
	ErrMissingFields   = errors.New("Name, email and message are required")
	ErrInvalidEmail    = errors.New("Invalid email format")
)

// Service implements inquiry creation and the agent response thread.
type Service struct {
	DB         *gorm.DB
	Properties *properties.Service
	Emails     emails.Sender
}

type CreateInquiryInput struct {
	PropertyID uuid.UUID
	UserID     *uuid.UUID
	Name       string
	Email      string
	Phone      string
	Message    string
}

// Create records an inquiry, bumps the property's inquiry counter and
// notifies the listing agent. Counter and email failures are logged, not
// surfaced: the inquiry itself has been stored.
func (s *Service) Create(ctx context.Context, in CreateInquiryInput) (*models.Inquiry, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, ErrMissingFields
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}

	prop, err := s.Properties.GetByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}

	inq := &models.Inquiry{
		PropertyID: in.PropertyID,
		UserID:     in.UserID,
		AgentID:    prop.AgentID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Message:    in.Message,
		Status:     models.InquiryStatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(inq).Error; err != nil {
		return nil, err
	}

	if err := s.Properties.IncrementInquiries(ctx, in.PropertyID); err != nil {
		log.Warn().Err(err).Str("property_id", in.PropertyID.String()).Msg("inquiry counter bump failed")
	}
	if s.Emails != nil && prop.AgentEmail != "" {
		if err := s.Emails.SendInquiryNotification(ctx, prop.AgentEmail, prop.Title, in.Name, in.Message); err != nil {
			log.Warn().Err(err).Msg("inquiry notification email failed")
		}
	}
	return inq, nil
}

// GetForAgent returns the agent's inquiries, newest first.
func (s *Service) GetForAgent(ctx context.Context, agentID uuid.UUID) ([]models.Inquiry, error) {
	var out []models.Inquiry
	if err := s.DB.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Respond appends to the ordered response thread and moves a pending inquiry
// to responded.
func (s *Service) Respond(ctx context.Context, inquiryID uuid.UUID, responder, message string) (*models.Inquiry, error) {
	var inq models.Inquiry
	if err := s.DB.WithContext(ctx).Where("inquiry_id = ?", inquiryID).First(&inq).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	inq.Responses = append(inq.Responses, models.InquiryResponse{
		Message:   message,
		Responder: responder,
		SentAt:    time.Now(),
	})
	rawResponses, err := json.Marshal(inq.Responses)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"responses": datatypes.JSON(rawResponses)}
	if inq.Status == models.InquiryStatusPending {
		updates["status"] = models.InquiryStatusResponded
		inq.Status = models.InquiryStatusResponded
	}
	if err := s.DB.WithContext(ctx).Model(&inq).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &inq, nil
}

// SetStatus moves an inquiry to any valid status. Transitions are
// caller-driven.
func (s *Service) SetStatus(ctx context.Context, inquiryID uuid.UUID, status string) (*models.Inquiry, error) {
	if !models.ValidInquiryStatus(status) {
		return nil, ErrInvalidStatus
	}
	var inq models.Inquiry
	if err := s.DB.WithContext(ctx).Where("inquiry_id = ?", inquiryID).First(&inq).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&inq).Update("status", status).Error; err != nil {
		return nil, err
	}
	inq.Status = status
	return &inq, nil
}
