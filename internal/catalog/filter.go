package catalog

import (
	"encoding/base64"
	"time"
)

// Wildcard selections coming from the filter bar.
const (
	AllTypes     = "All"
	AllProvinces = "All Provinces"
	AnyPrice     = "Any Price"
)

// Filter is the full filter state the composer consumes. SavedSearch rows
// persist this exact shape as JSON.
type Filter struct {
	Type       string `json:"type"`
	Province   string `json:"province"`
	PriceRange string `json:"priceRange"`
	Search     string `json:"search"`
	Status     string `json:"status,omitempty"`
	Featured   *bool  `json:"featured,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Cursor     string `json:"cursor,omitempty"`
}

// PriceBucket is one row of the fixed price-range lookup table. Buckets are
// half-open: Min inclusive, Max exclusive. Max < 0 means unbounded above.
type PriceBucket struct {
	Label string
	Min   float64
	Max   float64
}

// PriceBuckets is the canonical range table. A price on a bucket boundary
// belongs to exactly one bucket (the one whose Min it equals).
var PriceBuckets = []PriceBucket{
	{Label: "Under R500K", Min: 0, Max: 500000},
	{Label: "R500K - R1M", Min: 500000, Max: 1000000},
	{Label: "R1M - R2M", Min: 1000000, Max: 2000000},
	{Label: "R2M - R5M", Min: 2000000, Max: 5000000},
	{Label: "Over R5M", Min: 5000000, Max: -1},
}

// LookupPriceBucket resolves a range label. "Any Price" and unknown labels
// return ok=false (no price bounds applied).
func LookupPriceBucket(label string) (PriceBucket, bool) {
	if label == "" || label == AnyPrice {
		return PriceBucket{}, false
	}
	for _, b := range PriceBuckets {
		if b.Label == label {
			return b, true
		}
	}
	return PriceBucket{}, false
}

// BucketForPrice returns the bucket a price falls into. Every non-negative
// price lands in exactly one bucket.
func BucketForPrice(price float64) (PriceBucket, bool) {
	for _, b := range PriceBuckets {
		if price >= b.Min && (b.Max < 0 || price < b.Max) {
			return b, true
		}
	}
	return PriceBucket{}, false
}

// EncodeCursor packs a creation timestamp into an opaque continuation token.
func EncodeCursor(t time.Time) string {
	return base64.RawURLEncoding.EncodeToString([]byte(t.UTC().Format(time.RFC3339Nano)))
}

// DecodeCursor unpacks a continuation token. Invalid tokens return ok=false
// and the query starts from the top.
func DecodeCursor(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, string(b))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
