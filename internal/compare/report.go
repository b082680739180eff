package compare

import (
	"fmt"
	"strings"

	"github.com/bradykim7/pricecompare/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoPricesMessage is the report for a comparison where no source succeeded
func NoPricesMessage(product string) string {
	return fmt.Sprintf("No prices found for %s", product)
}

// DisplayName title-cases a source identifier for reports
func DisplayName(source string) string {
	return cases.Title(language.English).String(source)
}

// Render formats a comparison as the ranked text report
func Render(result models.ComparisonResult) string {
	if result.Empty() {
		return NoPricesMessage(result.Product)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Price Comparison for: %s\n\n", result.Product)
	b.WriteString("Best Prices:\n")

	for i, r := range result.Records {
		fmt.Fprintf(&b, "\n%d. %s:\n", i+1, DisplayName(r.Source))
		fmt.Fprintf(&b, "   Product: %s\n", r.Name)
		fmt.Fprintf(&b, "   Price: $%.2f\n", r.Price)
		fmt.Fprintf(&b, "   URL: %s\n", r.URL)
	}

	best, _ := result.Best()
	minPrice, _ := result.MinPrice()
	maxPrice, _ := result.MaxPrice()
	fmt.Fprintf(&b, "\nBest Deal: %s at $%.2f\n", DisplayName(best.Source), best.Price)
	fmt.Fprintf(&b, "Price Range: $%.2f - $%.2f\n", minPrice, maxPrice)
	fmt.Fprintf(&b, "Number of stores compared: %d\n", result.Count())

	return b.String()
}
