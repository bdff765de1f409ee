package seed

import (
	"context"
	"fmt"

	"karoo-backend/internal/agents"
	"karoo-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection names used in Result.Counts, in seed order.
var Collections = []string{
	"users", "agents", "properties", "inquiries", "reviews",
	"saved_searches", "system_settings",
}

// Result reports per-collection row counts and any per-collection failures.
// A failed collection is skipped, not fatal; callers decide how to surface
// the errors.
type Result struct {
	Counts map[string]int64 `json:"counts"`
	Errors []string         `json:"errors,omitempty"`
}

func (r *Result) fail(collection string, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", collection, err))
}

// Service loads and clears the fixture dataset. Agents is optional; when set,
// derived agent ratings are recomputed after the fixture reviews land.
type Service struct {
	DB     *gorm.DB
	Agents *agents.Service
}

// SeedAll inserts the full fixture set. Each collection is seeded
// independently so one broken table does not abort the rest. Rows with fixed
// ids upsert in place, which makes repeated runs converge on the same data.
func (s *Service) SeedAll(ctx context.Context) *Result {
	res := &Result{Counts: map[string]int64{}}
	db := s.DB.WithContext(ctx)

	seedRows := func(collection string, rows interface{}, n int64) {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(rows).Error; err != nil {
			log.Warn().Err(err).Str("collection", collection).Msg("seed failed")
			res.fail(collection, err)
			return
		}
		res.Counts[collection] = n
	}

	users := FixtureUsers()
	seedRows("users", &users, int64(len(users)))

	agentRows := FixtureAgents()
	seedRows("agents", &agentRows, int64(len(agentRows)))

	props := FixtureProperties()
	seedRows("properties", &props, int64(len(props)))

	inquiries := FixtureInquiries()
	seedRows("inquiries", &inquiries, int64(len(inquiries)))

	reviews := FixtureReviews()
	seedRows("reviews", &reviews, int64(len(reviews)))

	searches := FixtureSavedSearches()
	seedRows("saved_searches", &searches, int64(len(searches)))

	settings := FixtureSystemSettings()
	seedRows("system_settings", &settings, 1)

	if s.Agents != nil {
		for _, a := range agentRows {
			if _, err := s.Agents.RecomputeRating(ctx, a.AgentID); err != nil {
				log.Warn().Err(err).Str("agent_id", a.AgentID.String()).Msg("rating recompute failed")
			}
		}
	}
	return res
}

// ClearAll removes every row from every seeded collection, including rows
// created outside seeding. Like SeedAll, failures are collected per
// collection.
func (s *Service) ClearAll(ctx context.Context) *Result {
	res := &Result{Counts: map[string]int64{}}
	db := s.DB.WithContext(ctx)

	wipe := func(collection string, model interface{}) {
		tx := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model)
		if tx.Error != nil {
			log.Warn().Err(tx.Error).Str("collection", collection).Msg("clear failed")
			res.fail(collection, tx.Error)
			return
		}
		res.Counts[collection] = tx.RowsAffected
	}

	wipe("inquiries", &models.Inquiry{})
	wipe("reviews", &models.Review{})
	wipe("saved_searches", &models.SavedSearch{})
	wipe("properties", &models.Property{})
	wipe("agents", &models.Agent{})
	wipe("users", &models.User{})
	wipe("system_settings", &models.SystemSettings{})
	return res
}
