package compare

import (
	"testing"
	"time"

	"github.com/bradykim7/pricecompare/internal/fetcher"
	"github.com/bradykim7/pricecompare/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRender_Layout(t *testing.T) {
	res := models.ComparisonResult{
		Product: "sony wh-1000xm5",
		Records: []models.PriceRecord{
			{Source: "bestbuy", Name: "Sony WH-1000XM5", Price: 199.99, URL: "https://b.example/?st=sony"},
			{Source: "newegg", Name: "Sony XM5 Black", Price: 249.5, URL: "https://n.example/?d=sony"},
			{Source: "amazon", Name: "Sony Headphones", Price: 299, URL: "https://a.example/?k=sony"},
		},
	}

	want := "Price Comparison for: sony wh-1000xm5\n\n" +
		"Best Prices:\n" +
		"\n1. Bestbuy:\n" +
		"   Product: Sony WH-1000XM5\n" +
		"   Price: $199.99\n" +
		"   URL: https://b.example/?st=sony\n" +
		"\n2. Newegg:\n" +
		"   Product: Sony XM5 Black\n" +
		"   Price: $249.50\n" +
		"   URL: https://n.example/?d=sony\n" +
		"\n3. Amazon:\n" +
		"   Product: Sony Headphones\n" +
		"   Price: $299.00\n" +
		"   URL: https://a.example/?k=sony\n" +
		"\nBest Deal: Bestbuy at $199.99\n" +
		"Price Range: $199.99 - $299.00\n" +
		"Number of stores compared: 3\n"

	assert.Equal(t, want, Render(res))
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "No prices found for rtx 4090", Render(models.ComparisonResult{Product: "rtx 4090"}))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Amazon", DisplayName("amazon"))
	assert.Equal(t, "Bestbuy", DisplayName("bestbuy"))
}

func TestStats_SuccessRate(t *testing.T) {
	s := NewStats()
	now := time.Now()

	s.Record(fetcher.Outcome{Source: "a", Record: &models.PriceRecord{Price: 10}}, now)
	s.Record(fetcher.Outcome{Source: "a", Reason: fetcher.ReasonStatus}, now)

	snap := s.Snapshot()
	assert.Len(t, snap, 1)
	assert.Equal(t, 2, snap[0].Attempts)
	assert.Equal(t, 1, snap[0].Successes)
	assert.InDelta(t, 0.9, snap[0].SuccessRate, 1e-9)
	assert.Equal(t, "status", snap[0].LastReason)
	assert.InDelta(t, 10, snap[0].LastPrice, 1e-9)
}
