package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPriceBucket(t *testing.T) {
	_, ok := LookupPriceBucket(AnyPrice)
	assert.False(t, ok)
	_, ok = LookupPriceBucket("")
	assert.False(t, ok)
	_, ok = LookupPriceBucket("R0 - R1")
	assert.False(t, ok)

	b, ok := LookupPriceBucket("R500K - R1M")
	require.True(t, ok)
	assert.Equal(t, float64(500000), b.Min)
	assert.Equal(t, float64(1000000), b.Max)

	top, ok := LookupPriceBucket("Over R5M")
	require.True(t, ok)
	assert.Negative(t, top.Max)
}

// Every boundary price belongs to exactly one bucket: the one it opens.
func TestBucketForPrice_Boundaries(t *testing.T) {
	boundaries := map[float64]string{
		0:       "Under R500K",
		500000:  "R500K - R1M",
		1000000: "R1M - R2M",
		2000000: "R2M - R5M",
		5000000: "Over R5M",
	}
	for price, label := range boundaries {
		b, ok := BucketForPrice(price)
		require.True(t, ok, "price %v", price)
		assert.Equal(t, label, b.Label)
	}
}

func TestBucketForPrice_CoversAllNonNegative(t *testing.T) {
	for _, price := range []float64{1, 499999, 750000, 1999999.99, 3000000, 99000000} {
		_, ok := BucketForPrice(price)
		assert.True(t, ok, "price %v", price)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	now := time.Now()
	decoded, ok := DecodeCursor(EncodeCursor(now))
	require.True(t, ok)
	assert.True(t, decoded.Equal(now.UTC().Truncate(time.Nanosecond)))
}

func TestDecodeCursor_Invalid(t *testing.T) {
	_, ok := DecodeCursor("")
	assert.False(t, ok)
	_, ok = DecodeCursor("%%%not-base64%%%")
	assert.False(t, ok)
	_, ok = DecodeCursor("bm90LWEtdGltZQ")
	assert.False(t, ok)
}
