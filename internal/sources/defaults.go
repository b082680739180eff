package sources

import (
	"github.com/bradykim7/pricecompare/internal/extract"
)

// browserHeaders mirrors a desktop Chrome navigation request
func browserHeaders() map[string]string {
	return map[string]string{
		"User-Agent":                "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.9",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
		"Cache-Control":             "max-age=0",
	}
}

// DefaultConfigs returns the built-in retailer table
func DefaultConfigs() []SourceConfig {
	return []SourceConfig{
		{
			ID:          "amazon",
			URLTemplate: "https://www.amazon.com/s?k={}",
			Headers:     browserHeaders(),
			PriceRule:   extract.Class("a-price-whole"),
			NameRule:    extract.Class("a-size-medium"),
		},
		{
			ID:          "bestbuy",
			URLTemplate: "https://www.bestbuy.com/site/searchpage.jsp?st={}",
			Headers:     browserHeaders(),
			PriceRule:   extract.Class("priceView-customer-price"),
			NameRule:    extract.Attrs("h4", map[string]string{"class": "sku-title"}),
		},
		{
			ID:          "newegg",
			URLTemplate: "https://www.newegg.com/p/pl?d={}",
			Headers:     browserHeaders(),
			PriceRule:   extract.Class("price-current"),
			NameRule:    extract.Attrs("a", map[string]string{"class": "item-title"}),
		},
	}
}

// Default builds the registry from DefaultConfigs
func Default() (*Registry, error) {
	return New(DefaultConfigs()...)
}
