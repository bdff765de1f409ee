package catalog

import (
	"context"
	"testing"
	"time"

	"karoo-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Property{}))

	base := time.Now().Add(-time.Hour)
	props := []models.Property{
		{Title: "Beautiful Farm with River Access", City: "Clarens", Province: "Free State",
			Price: 4500000, PropertyType: models.PropertyTypeFarm, Status: models.PropertyStatusActive, Featured: true},
		{Title: "Working Cattle Farm", City: "Cradock", Province: "Eastern Cape",
			Price: 6200000, PropertyType: models.PropertyTypeFarm, Status: models.PropertyStatusActive},
		{Title: "Smallholding near Town", Address: "14 Farmdale Road", City: "Hartbeespoort", Province: "North West",
			Price: 1850000, PropertyType: models.PropertyTypeSmallholding, Status: models.PropertyStatusActive},
		{Title: "Vacant Plot", City: "Swellendam", Province: "Western Cape",
			Price: 500000, PropertyType: models.PropertyTypePlot, Status: models.PropertyStatusPending},
		{Title: "Family House with Garden", City: "Howick", Province: "KwaZulu-Natal",
			Price: 2400000, PropertyType: models.PropertyTypeHouse, Status: models.PropertyStatusActive, Featured: true},
	}
	for i := range props {
		props[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&props[i]).Error)
	}
	return &Service{DB: db}
}

func TestQuery_Unfiltered(t *testing.T) {
	svc := setupCatalogTest(t)
	res, err := svc.Query(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, res.Properties, 5)
}

func TestQuery_OrderedNewestFirst(t *testing.T) {
	svc := setupCatalogTest(t)
	res, err := svc.Query(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, res.Properties, 5)
	for i := 1; i < len(res.Properties); i++ {
		assert.False(t, res.Properties[i].CreatedAt.After(res.Properties[i-1].CreatedAt))
	}
}

func TestQuery_TypeFilterFarmScenario(t *testing.T) {
	svc := setupCatalogTest(t)
	res, err := svc.Query(context.Background(), Filter{
		Type:       "Farm",
		Province:   AllProvinces,
		PriceRange: AnyPrice,
	})
	require.NoError(t, err)
	assert.Len(t, res.Properties, 2)
	for _, p := range res.Properties {
		assert.Equal(t, models.PropertyTypeFarm, p.PropertyType)
	}
}

// Adding any predicate never grows the result set.
func TestQuery_MonotonicNarrowing(t *testing.T) {
	svc := setupCatalogTest(t)
	ctx := context.Background()

	full, err := svc.Query(ctx, Filter{})
	require.NoError(t, err)
	baseline := len(full.Properties)

	featured := true
	narrower := []Filter{
		{Type: "farm"},
		{Province: "Free State"},
		{PriceRange: "R1M - R2M"},
		{Status: models.PropertyStatusActive},
		{Featured: &featured},
		{Search: "farm"},
		{Type: "farm", Province: "Free State", PriceRange: "R2M - R5M", Search: "river"},
	}
	for _, f := range narrower {
		res, err := svc.Query(ctx, f)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.Properties), baseline)
	}
}

func TestQuery_PriceBoundaryExactlyOneBucket(t *testing.T) {
	svc := setupCatalogTest(t)
	ctx := context.Background()

	// The R500,000 plot sits on the Under R500K / R500K - R1M boundary.
	under, err := svc.Query(ctx, Filter{PriceRange: "Under R500K"})
	require.NoError(t, err)
	mid, err := svc.Query(ctx, Filter{PriceRange: "R500K - R1M"})
	require.NoError(t, err)

	found := 0
	for _, p := range under.Properties {
		if p.Price == 500000 {
			found++
		}
	}
	for _, p := range mid.Properties {
		if p.Price == 500000 {
			found++
		}
	}
	assert.Equal(t, 1, found)
	assert.Empty(t, under.Properties)
	assert.Len(t, mid.Properties, 1)
}

func TestQuery_SearchMatchesTitleAndLocation(t *testing.T) {
	svc := setupCatalogTest(t)
	res, err := svc.Query(context.Background(), Filter{Search: "farm"})
	require.NoError(t, err)

	titles := make([]string, 0, len(res.Properties))
	for _, p := range res.Properties {
		titles = append(titles, p.Title)
	}
	// Two farm titles plus the smallholding on Farmdale Road.
	assert.Len(t, res.Properties, 3)
	assert.Contains(t, titles, "Beautiful Farm with River Access")
	assert.Contains(t, titles, "Working Cattle Farm")
	assert.Contains(t, titles, "Smallholding near Town")
}

func TestQuery_SearchCaseInsensitive(t *testing.T) {
	svc := setupCatalogTest(t)
	upper, err := svc.Query(context.Background(), Filter{Search: "FARM"})
	require.NoError(t, err)
	lower, err := svc.Query(context.Background(), Filter{Search: "farm"})
	require.NoError(t, err)
	assert.Equal(t, len(lower.Properties), len(upper.Properties))
}

func TestQuery_SearchNoMatchIsEmptyNotError(t *testing.T) {
	svc := setupCatalogTest(t)
	res, err := svc.Query(context.Background(), Filter{Search: "penthouse"})
	require.NoError(t, err)
	assert.Empty(t, res.Properties)
}

func TestQuery_StoreFailureIsQueryError(t *testing.T) {
	svc := setupCatalogTest(t)
	require.NoError(t, svc.DB.Migrator().DropTable(&models.Property{}))

	res, err := svc.Query(context.Background(), Filter{})
	assert.Nil(t, res)
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
}

func TestQuery_CursorPagination(t *testing.T) {
	svc := setupCatalogTest(t)
	ctx := context.Background()

	first, err := svc.Query(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Properties, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.Query(ctx, Filter{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Properties, 2)

	seen := map[string]bool{}
	for _, p := range append(first.Properties, second.Properties...) {
		assert.False(t, seen[p.PropertyID.String()])
		seen[p.PropertyID.String()] = true
	}
}

// The cursor advances through fetched rows, so a page the text refinement
// empties still yields a cursor that reaches older matches.
func TestQuery_CursorSurvivesSearchRefinement(t *testing.T) {
	svc := setupCatalogTest(t)
	ctx := context.Background()

	// Newest two rows (house, plot) match no "farm" term; the three matches
	// are all on later pages.
	first, err := svc.Query(ctx, Filter{Search: "farm", Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, first.Properties)
	require.NotEmpty(t, first.NextCursor)

	matches := len(first.Properties)
	cursor := first.NextCursor
	for cursor != "" {
		page, err := svc.Query(ctx, Filter{Search: "farm", Limit: 2, Cursor: cursor})
		require.NoError(t, err)
		matches += len(page.Properties)
		cursor = page.NextCursor
	}
	assert.Equal(t, 3, matches)
}
