package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComparisonResult_Empty(t *testing.T) {
	var res ComparisonResult

	assert.True(t, res.Empty())
	assert.Zero(t, res.Count())

	_, ok := res.Best()
	assert.False(t, ok)
	_, ok = res.MinPrice()
	assert.False(t, ok)
	_, ok = res.MaxPrice()
	assert.False(t, ok)
}

func TestComparisonResult_Summary(t *testing.T) {
	res := ComparisonResult{
		Product: "rtx 4070",
		Records: []PriceRecord{
			{Source: "newegg", Price: 199.99},
			{Source: "amazon", Price: 249.50},
			{Source: "bestbuy", Price: 299.00},
		},
	}

	best, ok := res.Best()
	assert.True(t, ok)
	assert.Equal(t, "newegg", best.Source)

	minPrice, _ := res.MinPrice()
	maxPrice, _ := res.MaxPrice()
	assert.InDelta(t, 199.99, minPrice, 1e-9)
	assert.InDelta(t, 299.00, maxPrice, 1e-9)
	assert.Equal(t, 3, res.Count())
}

func TestPriceRecord_Timestamp(t *testing.T) {
	r := PriceRecord{RetrievedAt: time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)}
	assert.Equal(t, "2025-03-01T12:30:00Z", r.Timestamp())
}
