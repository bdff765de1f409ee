package catalog

import (
	"context"
	"fmt"
	"strings"

	"karoo-backend/internal/models"

	"gorm.io/gorm"
)

// QueryError marks a failed store read. Handlers surface it as a retryable
// error state, never as an empty result.
type QueryError struct {
	Cause error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("catalog query failed: %v", e.Cause)
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}

// Result is one composed query response. NextCursor is set when Limit was
// given and a full page came back.
type Result struct {
	Properties []models.Property
	NextCursor string
}

// Service composes filter state into a store query plus a client-side text
// refinement pass. Every call issues a fresh full query; there is no caching.
type Service struct {
	DB *gorm.DB
}

// Query applies the server-side predicates (AND-combined equality and price
// bounds, ordered created_at DESC), then refines by free-text search in
// memory. The backend has no full-text index, so the substring pass stays
// client-side; the composed result is the intersection of all predicates.
func (s *Service) Query(ctx context.Context, f Filter) (*Result, error) {
	q := s.DB.WithContext(ctx).Model(&models.Property{})

	if f.Type != "" && f.Type != AllTypes {
		q = q.Where("property_type = ?", strings.ToLower(f.Type))
	}
	if f.Province != "" && f.Province != AllProvinces {
		q = q.Where("province = ?", f.Province)
	}
	if b, ok := LookupPriceBucket(f.PriceRange); ok {
		q = q.Where("price >= ?", b.Min)
		if b.Max >= 0 {
			q = q.Where("price < ?", b.Max)
		}
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if before, ok := DecodeCursor(f.Cursor); ok {
		q = q.Where("created_at < ?", before)
	}

	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var props []models.Property
	if err := q.Find(&props).Error; err != nil {
		return nil, &QueryError{Cause: err}
	}

	// The cursor advances through fetched rows, not refined ones; the text
	// pass may empty a full page while older matches still exist.
	var nextCursor string
	if f.Limit > 0 && len(props) == f.Limit {
		nextCursor = EncodeCursor(props[len(props)-1].CreatedAt)
	}

	if term := strings.TrimSpace(f.Search); term != "" {
		props = refineBySearch(props, term)
	}
	return &Result{Properties: props, NextCursor: nextCursor}, nil
}

// refineBySearch keeps properties whose title or location string contains the
// term, case-insensitively.
func refineBySearch(props []models.Property, term string) []models.Property {
	needle := strings.ToLower(term)
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		title := strings.ToLower(p.Title)
		location := strings.ToLower(locationString(p))
		if strings.Contains(title, needle) || strings.Contains(location, needle) {
			out = append(out, p)
		}
	}
	return out
}

func locationString(p models.Property) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Address, p.City, p.Province} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
