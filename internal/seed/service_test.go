package seed

import (
	"context"
	"testing"

	"karoo-backend/internal/agents"
	"karoo-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSeedTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Agent{}, &models.Property{},
		&models.Inquiry{}, &models.Review{}, &models.SavedSearch{},
		&models.SystemSettings{},
	))
	return &Service{DB: db, Agents: &agents.Service{DB: db}}
}

func TestSeedAll_Counts(t *testing.T) {
	svc := setupSeedTest(t)
	res := svc.SeedAll(context.Background())

	assert.Empty(t, res.Errors)
	assert.Equal(t, int64(4), res.Counts["users"])
	assert.Equal(t, int64(2), res.Counts["agents"])
	assert.Equal(t, int64(5), res.Counts["properties"])
	assert.Equal(t, int64(2), res.Counts["inquiries"])
	assert.Equal(t, int64(2), res.Counts["reviews"])
	assert.Equal(t, int64(2), res.Counts["saved_searches"])
	assert.Equal(t, int64(1), res.Counts["system_settings"])

	var farms int64
	require.NoError(t, svc.DB.Model(&models.Property{}).
		Where("property_type = ?", models.PropertyTypeFarm).
		Count(&farms).Error)
	assert.Equal(t, int64(2), farms)
}

func TestSeedAll_Idempotent(t *testing.T) {
	svc := setupSeedTest(t)
	ctx := context.Background()

	svc.SeedAll(ctx)
	res := svc.SeedAll(ctx)
	assert.Empty(t, res.Errors)

	var props int64
	require.NoError(t, svc.DB.Model(&models.Property{}).Count(&props).Error)
	assert.Equal(t, int64(5), props)

	var users int64
	require.NoError(t, svc.DB.Unscoped().Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(4), users)
}

func TestClearThenSeed_RestoresCounts(t *testing.T) {
	svc := setupSeedTest(t)
	ctx := context.Background()

	svc.SeedAll(ctx)

	// Extra rows created outside seeding must go too.
	require.NoError(t, svc.DB.Create(&models.Property{
		Title: "Stray Listing", City: "Nieu-Bethesda", Province: "Eastern Cape",
		Price: 900000, PropertyType: models.PropertyTypeHouse,
	}).Error)

	cleared := svc.ClearAll(ctx)
	assert.Empty(t, cleared.Errors)
	assert.Equal(t, int64(6), cleared.Counts["properties"])
	assert.Equal(t, int64(4), cleared.Counts["users"])

	var remaining int64
	require.NoError(t, svc.DB.Model(&models.Property{}).Count(&remaining).Error)
	assert.Equal(t, int64(0), remaining)

	res := svc.SeedAll(ctx)
	assert.Empty(t, res.Errors)
	assert.Equal(t, int64(5), res.Counts["properties"])
	assert.Equal(t, int64(4), res.Counts["users"])
	assert.Equal(t, int64(1), res.Counts["system_settings"])
}

func TestSeedAll_RecomputesAgentRatings(t *testing.T) {
	svc := setupSeedTest(t)
	svc.SeedAll(context.Background())

	var a models.Agent
	require.NoError(t, svc.DB.Where("fullname = ?", "Piet Marais").First(&a).Error)
	assert.Equal(t, 5.0, a.Rating)
	assert.Equal(t, int64(1), a.TotalReviews)
}

func TestSeedAll_ReportsBrokenCollection(t *testing.T) {
	svc := setupSeedTest(t)
	require.NoError(t, svc.DB.Migrator().DropTable(&models.Review{}))

	res := svc.SeedAll(context.Background())
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "reviews")

	// Other collections still landed.
	assert.Equal(t, int64(5), res.Counts["properties"])
	_, ok := res.Counts["reviews"]
	assert.False(t, ok)
}
