package savedsearches

import (
	"context"
	"testing"

	"karoo-backend/internal/catalog"
	"karoo-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSavedSearchesTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Property{}, &models.SavedSearch{}))
	return &Service{DB: db, Catalog: &catalog.Service{DB: db}}
}

func TestCreate_DefaultsToNever(t *testing.T) {
	svc := setupSavedSearchesTest(t)
	ss, err := svc.Create(context.Background(), CreateInput{
		UserID:  uuid.New(),
		Name:    "Free State farms",
		Filters: catalog.Filter{Type: "farm", Province: "Free State"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyNever, ss.Frequency)
}

func TestCreate_RejectsUnknownFrequency(t *testing.T) {
	svc := setupSavedSearchesTest(t)
	_, err := svc.Create(context.Background(), CreateInput{
		UserID: uuid.New(), Name: "x", Frequency: "hourly",
	})
	assert.Equal(t, ErrInvalidFrequency, err)
}

func TestRun_FiltersRoundTrip(t *testing.T) {
	svc := setupSavedSearchesTest(t)
	ctx := context.Background()

	farm := models.Property{Title: "Beautiful Farm", City: "Clarens", Province: "Free State",
		Price: 4500000, PropertyType: models.PropertyTypeFarm, Status: models.PropertyStatusActive}
	house := models.Property{Title: "Town House", City: "Howick", Province: "KwaZulu-Natal",
		Price: 2400000, PropertyType: models.PropertyTypeHouse, Status: models.PropertyStatusActive}
	require.NoError(t, svc.DB.Create(&farm).Error)
	require.NoError(t, svc.DB.Create(&house).Error)

	ss, err := svc.Create(ctx, CreateInput{
		UserID:  uuid.New(),
		Name:    "Free State farms",
		Filters: catalog.Filter{Type: "farm", Province: "Free State"},
	})
	require.NoError(t, err)

	res, err := svc.Run(ctx, ss)
	require.NoError(t, err)
	require.Len(t, res.Properties, 1)
	assert.Equal(t, "Beautiful Farm", res.Properties[0].Title)

	var stamped models.SavedSearch
	require.NoError(t, svc.DB.Where("search_id = ?", ss.SearchID).First(&stamped).Error)
	assert.NotNil(t, stamped.LastRunAt)
}

func TestOwnershipEnforced(t *testing.T) {
	svc := setupSavedSearchesTest(t)
	ctx := context.Background()
	owner := uuid.New()

	ss, err := svc.Create(ctx, CreateInput{UserID: owner, Name: "mine"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, ss.SearchID, uuid.New(), UpdateInput{})
	assert.Equal(t, ErrNotSearchOwner, err)

	err = svc.Delete(ctx, ss.SearchID, uuid.New())
	assert.Equal(t, ErrNotSearchOwner, err)

	require.NoError(t, svc.Delete(ctx, ss.SearchID, owner))
	err = svc.Delete(ctx, ss.SearchID, owner)
	assert.Equal(t, ErrSearchNotFound, err)
}

func TestDueForFrequency(t *testing.T) {
	svc := setupSavedSearchesTest(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := svc.Create(ctx, CreateInput{UserID: owner, Name: "daily one", Frequency: models.FrequencyDaily})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{UserID: owner, Name: "weekly one", Frequency: models.FrequencyWeekly})
	require.NoError(t, err)

	due, err := svc.DueForFrequency(ctx, models.FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "daily one", due[0].Name)
}
