package mcp

const (
	toolComparePrices     = "compare_prices"
	toolAvailableWebsites = "get_available_websites"
	toolRecommendation    = "get_shopping_recommendation"
	toolSourceStats       = "get_source_stats"
	toolPriceHistory      = "get_price_history"
)

func productSchema(extra map[string]any, required ...string) map[string]any {
	props := map[string]any{
		"product_name": map[string]any{
			"type":        "string",
			"description": "The product to search for (e.g. \"rtx 4070\")",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   append([]string{"product_name"}, required...),
	}
}

func emptySchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

// getAllTools returns the tools advertised by tools/list
func getAllTools(historyEnabled bool) []Tool {
	tools := []Tool{
		{
			Name:        toolComparePrices,
			Description: "Compare prices for a product across the configured retailers. Returns a ranked report, cheapest first.",
			InputSchema: productSchema(nil),
		},
		{
			Name:        toolAvailableWebsites,
			Description: "List the retailers used for price comparison.",
			InputSchema: emptySchema(),
		},
		{
			Name:        toolRecommendation,
			Description: "Compare prices for a product and add an AI shopping analysis of the results.",
			InputSchema: productSchema(nil),
		},
		{
			Name:        toolSourceStats,
			Description: "Show per-retailer fetch statistics since the server started.",
			InputSchema: emptySchema(),
		},
	}

	if historyEnabled {
		tools = append(tools, Tool{
			Name:        toolPriceHistory,
			Description: "Show recent comparison summaries recorded for a product, newest first.",
			InputSchema: productSchema(map[string]any{
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of entries (default 10)",
				},
			}),
		})
	}
	return tools
}
