package inquiries

import (
	"context"
	"testing"

	"karoo-backend/internal/models"
	"karoo-backend/internal/properties"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInquiriesTest(t *testing.T) (*Service, *models.Property) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Property{}, &models.Inquiry{}))

	propSvc := &properties.Service{DB: db}
	agentID := uuid.New()
	prop, err := propSvc.Create(context.Background(), properties.CreatePropertyInput{
		Title:        "Smallholding near Town",
		City:         "Hartbeespoort",
		Province:     "North West",
		Price:        1850000,
		PropertyType: models.PropertyTypeSmallholding,
		AgentID:      &agentID,
		AgentEmail:   "agent@karoo.properties",
	})
	require.NoError(t, err)

	return &Service{DB: db, Properties: propSvc}, prop
}

func validInput(propID uuid.UUID) CreateInquiryInput {
	return CreateInquiryInput{
		PropertyID: propID,
		Name:       "Thabo Nkosi",
		Email:      "thabo@example.com",
		Message:    "Is the borehole equipped?",
	}
}

func TestCreate_BumpsPropertyCounter(t *testing.T) {
	svc, prop := setupInquiriesTest(t)
	ctx := context.Background()

	inq, err := svc.Create(ctx, validInput(prop.PropertyID))
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusPending, inq.Status)
	require.NotNil(t, inq.AgentID)

	got, err := svc.Properties.GetByID(ctx, prop.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Inquiries)
}

func TestCreate_Validation(t *testing.T) {
	svc, prop := setupInquiriesTest(t)
	ctx := context.Background()

	in := validInput(prop.PropertyID)
	in.Name = ""
	_, err := svc.Create(ctx, in)
	assert.Equal(t, ErrMissingFields, err)

	in = validInput(prop.PropertyID)
	in.Email = "not-an-email"
	_, err = svc.Create(ctx, in)
	assert.Equal(t, ErrInvalidEmail, err)

	_, err = svc.Create(ctx, validInput(uuid.New()))
	assert.Equal(t, properties.ErrPropertyNotFound, err)
}

func TestRespond_AppendsThreadAndMovesStatus(t *testing.T) {
	svc, prop := setupInquiriesTest(t)
	ctx := context.Background()
	inq, err := svc.Create(ctx, validInput(prop.PropertyID))
	require.NoError(t, err)

	got, err := svc.Respond(ctx, inq.InquiryID, "agent-1", "Yes, equipped with a solar pump.")
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusResponded, got.Status)
	require.Len(t, got.Responses, 1)

	got, err = svc.Respond(ctx, inq.InquiryID, "agent-1", "Happy to arrange a viewing.")
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusResponded, got.Status)
	assert.Len(t, got.Responses, 2)
}

func TestSetStatus(t *testing.T) {
	svc, prop := setupInquiriesTest(t)
	ctx := context.Background()
	inq, err := svc.Create(ctx, validInput(prop.PropertyID))
	require.NoError(t, err)

	got, err := svc.SetStatus(ctx, inq.InquiryID, models.InquiryStatusScheduled)
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusScheduled, got.Status)

	_, err = svc.SetStatus(ctx, inq.InquiryID, "spam")
	assert.Equal(t, ErrInvalidStatus, err)

	_, err = svc.SetStatus(ctx, uuid.New(), models.InquiryStatusClosed)
	assert.Equal(t, ErrInquiryNotFound, err)
}
