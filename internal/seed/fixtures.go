package seed

import (
	"encoding/json"
	"sync"

	"karoo-backend/internal/access"
	"karoo-backend/internal/catalog"
	"karoo-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Fixture ids are fixed so references line up across collections and repeated
// seed runs produce identical data.
var (
	fixtureAdminID  = uuid.MustParse("0b0e7b1a-9c1d-4f6e-8a2b-111111111111")
	fixtureAgent1ID = uuid.MustParse("0b0e7b1a-9c1d-4f6e-8a2b-222222222222")
	fixtureAgent2ID = uuid.MustParse("0b0e7b1a-9c1d-4f6e-8a2b-333333333333")
	fixtureUser1ID  = uuid.MustParse("0b0e7b1a-9c1d-4f6e-8a2b-444444444444")
	fixtureUser2ID  = uuid.MustParse("0b0e7b1a-9c1d-4f6e-8a2b-555555555555")

	fixtureProp1ID = uuid.MustParse("1c1f8c2b-0d2e-4a7f-9b3c-111111111111")
	fixtureProp2ID = uuid.MustParse("1c1f8c2b-0d2e-4a7f-9b3c-222222222222")
	fixtureProp3ID = uuid.MustParse("1c1f8c2b-0d2e-4a7f-9b3c-333333333333")
	fixtureProp4ID = uuid.MustParse("1c1f8c2b-0d2e-4a7f-9b3c-444444444444")
	fixtureProp5ID = uuid.MustParse("1c1f8c2b-0d2e-4a7f-9b3c-555555555555")

	fixtureAgentProfile1ID = uuid.MustParse("2d2a9d3c-1e3f-4b80-ac4d-111111111111")
	fixtureAgentProfile2ID = uuid.MustParse("2d2a9d3c-1e3f-4b80-ac4d-222222222222")

	fixtureInquiry1ID = uuid.MustParse("3e3bae4d-2f40-4c91-bd5e-111111111111")
	fixtureInquiry2ID = uuid.MustParse("3e3bae4d-2f40-4c91-bd5e-222222222222")
	fixtureReview1ID  = uuid.MustParse("4f4cbf5e-3051-4da2-ce6f-111111111111")
	fixtureReview2ID  = uuid.MustParse("4f4cbf5e-3051-4da2-ce6f-222222222222")
	fixtureSearch1ID  = uuid.MustParse("5a5dc06f-4162-4eb3-df70-111111111111")
	fixtureSearch2ID  = uuid.MustParse("5a5dc06f-4162-4eb3-df70-222222222222")
)

// FixturePassword is the password for every fixture account.
const FixturePassword = "Karoo#2024demo"

var (
	hashOnce    sync.Once
	fixtureHash string
)

// passwordHash hashes FixturePassword once; all fixture accounts share it.
func passwordHash() string {
	hashOnce.Do(func() {
		b, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}
		fixtureHash = string(b)
	})
	return fixtureHash
}

// FixtureProperties returns the 5 sample listings (2 farms, 1 smallholding,
// 1 plot, 1 house).
func FixtureProperties() []models.Property {
	return []models.Property{
		{
			PropertyID:   fixtureProp1ID,
			Title:        "Beautiful Farm with River Access",
			Description:  "Working irrigation farm on the Ash River with three pivots and established lucerne.",
			Address:      "R712, Clarens district",
			City:         "Clarens",
			Province:     "Free State",
			Latitude:     -28.5246, Longitude: 28.4208,
			Price: 4500000, PriceDisplay: "R 4 500 000",
			Size:         models.PropertySize{Land: "128 ha", Building: "420 m²", Total: "128 ha"},
			Features:     models.PropertyFeatures{Bedrooms: 4, Bathrooms: 2, Garages: 2, HasWater: true, HasElectricity: true, HasBorehole: true},
			PropertyType: models.PropertyTypeFarm,
			Status:       models.PropertyStatusActive,
			Featured:     true,
			Images:       datatypes.JSONSlice[string]{"https://images.karoo.properties/fixtures/farm-river-1.jpg"},
			AgentID:      &fixtureAgent1ID,
			AgentName:    "Piet Marais", AgentPhone: "+27 82 555 0101", AgentEmail: "piet@karoo.properties",
		},
		{
			PropertyID:   fixtureProp2ID,
			Title:        "Working Cattle Farm",
			Description:  "Sweetveld grazing for 180 LSU, handling facilities and two staff cottages.",
			Address:      "Off the N10",
			City:         "Cradock",
			Province:     "Eastern Cape",
			Latitude:     -32.1641, Longitude: 25.6192,
			Price: 6200000, PriceDisplay: "R 6 200 000",
			Size:         models.PropertySize{Land: "850 ha", Total: "850 ha"},
			Features:     models.PropertyFeatures{Bedrooms: 3, Bathrooms: 2, HasWater: true, HasBorehole: true},
			PropertyType: models.PropertyTypeFarm,
			Status:       models.PropertyStatusActive,
			Images:       datatypes.JSONSlice[string]{"https://images.karoo.properties/fixtures/cattle-farm-1.jpg"},
			AgentID:      &fixtureAgent1ID,
			AgentName:    "Piet Marais", AgentPhone: "+27 82 555 0101", AgentEmail: "piet@karoo.properties",
		},
		{
			PropertyID:   fixtureProp3ID,
			Title:        "Smallholding near Town",
			Description:  "Equipped 8.5 ha smallholding with stables, borehole and three-phase power.",
			Address:      "14 Farmdale Road",
			City:         "Hartbeespoort",
			Province:     "North West",
			Latitude:     -25.7442, Longitude: 27.8672,
			Price: 1850000, PriceDisplay: "R 1 850 000",
			Size:         models.PropertySize{Land: "8.5 ha", Building: "310 m²", Total: "8.5 ha"},
			Features:     models.PropertyFeatures{Bedrooms: 3, Bathrooms: 2, Garages: 2, HasWater: true, HasElectricity: true, HasBorehole: true, PetFriendly: true},
			PropertyType: models.PropertyTypeSmallholding,
			Status:       models.PropertyStatusActive,
			Featured:     true,
			Images:       datatypes.JSONSlice[string]{"https://images.karoo.properties/fixtures/smallholding-1.jpg"},
			AgentID:      &fixtureAgent2ID,
			AgentName:    "Lerato Mokoena", AgentPhone: "+27 83 555 0202", AgentEmail: "lerato@karoo.properties",
		},
		{
			PropertyID:   fixtureProp4ID,
			Title:        "Vacant Plot with Mountain Views",
			Description:  "Serviced 4000 m² stand on the edge of town, zoned residential.",
			City:         "Swellendam",
			Province:     "Western Cape",
			Latitude:     -34.0218, Longitude: 20.4436,
			Price: 500000, PriceDisplay: "R 500 000",
			Size:         models.PropertySize{Land: "4000 m²", Total: "4000 m²"},
			PropertyType: models.PropertyTypePlot,
			Status:       models.PropertyStatusPending,
			Images:       datatypes.JSONSlice[string]{},
			AgentID:      &fixtureAgent2ID,
			AgentName:    "Lerato Mokoena", AgentPhone: "+27 83 555 0202", AgentEmail: "lerato@karoo.properties",
		},
		{
			PropertyID:   fixtureProp5ID,
			Title:        "Family House with Large Garden",
			Description:  "Midlands family home, established garden, double garage and granny flat.",
			Address:      "7 Currys Post Road",
			City:         "Howick",
			Province:     "KwaZulu-Natal",
			Latitude:     -29.4789, Longitude: 30.2293,
			Price: 2400000, PriceDisplay: "R 2 400 000",
			Size:         models.PropertySize{Land: "2100 m²", Building: "280 m²", Total: "2100 m²"},
			Features:     models.PropertyFeatures{Bedrooms: 4, Bathrooms: 3, Garages: 2, HasWater: true, HasElectricity: true, PetFriendly: true, Furnished: false},
			PropertyType: models.PropertyTypeHouse,
			Status:       models.PropertyStatusActive,
			Images:       datatypes.JSONSlice[string]{"https://images.karoo.properties/fixtures/house-howick-1.jpg"},
			AgentID:      &fixtureAgent1ID,
			AgentName:    "Piet Marais", AgentPhone: "+27 82 555 0101", AgentEmail: "piet@karoo.properties",
		},
	}
}

// FixtureUsers returns the 4 sample accounts: one admin, one agent, two users.
func FixtureUsers() []models.User {
	return []models.User{
		{
			UserID: fixtureAdminID, Fullname: "Sarah van Wyk", Email: "admin@karoo.properties",
			PasswordHash: passwordHash(), Role: access.RoleAdmin.String(), IsActive: true,
			Preferences: models.UserPreferences{EmailAlerts: true, InquiryUpdates: true},
		},
		{
			UserID: fixtureAgent1ID, Fullname: "Piet Marais", Email: "piet@karoo.properties",
			Phone: "+27 82 555 0101", PasswordHash: passwordHash(), Role: access.RoleAgent.String(), IsActive: true,
			Preferences: models.UserPreferences{EmailAlerts: true, InquiryUpdates: true},
		},
		{
			UserID: fixtureUser1ID, Fullname: "Thabo Nkosi", Email: "thabo@example.com",
			PasswordHash: passwordHash(), Role: access.RoleUser.String(), IsActive: true,
			Preferences:     models.UserPreferences{EmailAlerts: true, SavedSearchDigest: true},
			SavedProperties: datatypes.JSONSlice[string]{fixtureProp1ID.String()},
		},
		{
			UserID: fixtureUser2ID, Fullname: "Anna Botha", Email: "anna@example.com",
			PasswordHash: passwordHash(), Role: access.RoleUser.String(), IsActive: true,
		},
	}
}

// FixtureAgents returns the 2 sample agent profiles.
func FixtureAgents() []models.Agent {
	return []models.Agent{
		{
			AgentID: fixtureAgentProfile1ID, UserID: &fixtureAgent1ID,
			Fullname: "Piet Marais", Email: "piet@karoo.properties", Phone: "+27 82 555 0101",
			Agency: "Karoo Country Properties", LicenseNumber: "FFC-2019-11482",
			Specializations: datatypes.JSONSlice[string]{"farms", "smallholdings"},
			ServiceAreas:    datatypes.JSONSlice[string]{"Free State", "Eastern Cape"},
			Bio:             "Twenty years selling working farms across the central districts.",
		},
		{
			AgentID: fixtureAgentProfile2ID, UserID: &fixtureAgent2ID,
			Fullname: "Lerato Mokoena", Email: "lerato@karoo.properties", Phone: "+27 83 555 0202",
			Agency: "Highveld Rural Realty", LicenseNumber: "FFC-2021-20917",
			Specializations: datatypes.JSONSlice[string]{"smallholdings", "plots"},
			ServiceAreas:    datatypes.JSONSlice[string]{"North West", "Gauteng"},
		},
	}
}

// FixtureInquiries returns 2 sample inquiries against the fixture listings.
func FixtureInquiries() []models.Inquiry {
	return []models.Inquiry{
		{
			InquiryID:  fixtureInquiry1ID,
			PropertyID: fixtureProp1ID, UserID: &fixtureUser1ID, AgentID: &fixtureAgent1ID,
			Name: "Thabo Nkosi", Email: "thabo@example.com", Phone: "+27 84 555 0303",
			Message: "What are the water rights on the river frontage?",
			Status:  models.InquiryStatusPending,
		},
		{
			InquiryID:  fixtureInquiry2ID,
			PropertyID: fixtureProp3ID, UserID: &fixtureUser2ID, AgentID: &fixtureAgent2ID,
			Name: "Anna Botha", Email: "anna@example.com",
			Message: "Is the smallholding fenced for horses?",
			Status:  models.InquiryStatusResponded,
			Responses: []models.InquiryResponse{
				{Message: "Yes, post-and-rail paddocks around the stables.", Responder: fixtureAgent2ID.String()},
			},
		},
	}
}

// FixtureReviews returns 2 approved sample reviews.
func FixtureReviews() []models.Review {
	return []models.Review{
		{ReviewID: fixtureReview1ID, PropertyID: fixtureProp1ID, UserID: &fixtureUser1ID,
			AgentID: fixtureAgentProfile1ID, Rating: 5,
			Comment: "Knew every pump and pivot on the farm.", Approved: true},
		{ReviewID: fixtureReview2ID, PropertyID: fixtureProp3ID, UserID: &fixtureUser2ID,
			AgentID: fixtureAgentProfile2ID, Rating: 4,
			Comment: "Responsive and well prepared.", Approved: true},
	}
}

// FixtureSavedSearches returns 2 sample saved searches in the composer's
// filter shape.
func FixtureSavedSearches() []models.SavedSearch {
	mk := func(f catalog.Filter) datatypes.JSON {
		raw, _ := json.Marshal(f)
		return datatypes.JSON(raw)
	}
	return []models.SavedSearch{
		{
			SearchID: fixtureSearch1ID,
			UserID:   fixtureUser1ID, Name: "Free State farms under R5M",
			Filters:   mk(catalog.Filter{Type: "farm", Province: "Free State", PriceRange: "R2M - R5M"}),
			Frequency: models.FrequencyWeekly,
		},
		{
			SearchID: fixtureSearch2ID,
			UserID:   fixtureUser2ID, Name: "Smallholdings anywhere",
			Filters:   mk(catalog.Filter{Type: "smallholding", Province: catalog.AllProvinces, PriceRange: catalog.AnyPrice}),
			Frequency: models.FrequencyNever,
		},
	}
}

// FixtureSystemSettings returns the singleton settings document.
func FixtureSystemSettings() models.SystemSettings {
	return models.SystemSettings{
		ID:           models.SystemSettingsID,
		SiteName:     "Karoo Properties",
		Currency:     "ZAR",
		ContactEmail: "info@karoo.properties",
		Flags:        models.SystemSettingsFlags{RegistrationOpen: true, ReviewsEnabled: true},
	}
}
