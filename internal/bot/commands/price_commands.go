package commands

import (
	"context"
	"fmt"
	"strings"
)

const defaultHistoryLimit = 5

// PriceService is the text-level comparison surface the commands relay
type PriceService interface {
	ComparePrices(ctx context.Context, product string) string
	AvailableWebsites() string
	ShoppingRecommendation(ctx context.Context, product string) string
	SourceStats() string
	PriceHistory(ctx context.Context, product string, limit int64) string
}

func usage(prefix, name, arg string) string {
	return fmt.Sprintf("Usage: %s%s %s", prefix, name, arg)
}

// CompareCommand handles "compare <product>"
type CompareCommand struct {
	svc    PriceService
	prefix string
}

// NewCompareCommand creates the compare command
func NewCompareCommand(svc PriceService, prefix string) *CompareCommand {
	return &CompareCommand{svc: svc, prefix: prefix}
}

func (c *CompareCommand) Name() string { return "compare" }

func (c *CompareCommand) Help() string { return "Compare prices for a product across retailers" }

func (c *CompareCommand) Execute(ctx context.Context, args []string) string {
	product := strings.Join(args, " ")
	if product == "" {
		return usage(c.prefix, c.Name(), "<product>")
	}
	return c.svc.ComparePrices(ctx, product)
}

// RecommendCommand handles "recommend <product>"
type RecommendCommand struct {
	svc    PriceService
	prefix string
}

// NewRecommendCommand creates the recommend command
func NewRecommendCommand(svc PriceService, prefix string) *RecommendCommand {
	return &RecommendCommand{svc: svc, prefix: prefix}
}

func (c *RecommendCommand) Name() string { return "recommend" }

func (c *RecommendCommand) Help() string {
	return "Compare prices and get an AI shopping recommendation"
}

func (c *RecommendCommand) Execute(ctx context.Context, args []string) string {
	product := strings.Join(args, " ")
	if product == "" {
		return usage(c.prefix, c.Name(), "<product>")
	}
	return c.svc.ShoppingRecommendation(ctx, product)
}

// WebsitesCommand handles "websites"
type WebsitesCommand struct {
	svc PriceService
}

// NewWebsitesCommand creates the websites command
func NewWebsitesCommand(svc PriceService) *WebsitesCommand {
	return &WebsitesCommand{svc: svc}
}

func (c *WebsitesCommand) Name() string { return "websites" }

func (c *WebsitesCommand) Help() string { return "List the retailers used for comparison" }

func (c *WebsitesCommand) Execute(context.Context, []string) string {
	return c.svc.AvailableWebsites()
}

// StatsCommand handles "stats"
type StatsCommand struct {
	svc PriceService
}

// NewStatsCommand creates the stats command
func NewStatsCommand(svc PriceService) *StatsCommand {
	return &StatsCommand{svc: svc}
}

func (c *StatsCommand) Name() string { return "stats" }

func (c *StatsCommand) Help() string { return "Show per-retailer fetch statistics" }

func (c *StatsCommand) Execute(context.Context, []string) string {
	return c.svc.SourceStats()
}

// HistoryCommand handles "history <product>"
type HistoryCommand struct {
	svc    PriceService
	prefix string
}

// NewHistoryCommand creates the history command
func NewHistoryCommand(svc PriceService, prefix string) *HistoryCommand {
	return &HistoryCommand{svc: svc, prefix: prefix}
}

func (c *HistoryCommand) Name() string { return "history" }

func (c *HistoryCommand) Help() string { return "Show recent comparisons recorded for a product" }

func (c *HistoryCommand) Execute(ctx context.Context, args []string) string {
	product := strings.Join(args, " ")
	if product == "" {
		return usage(c.prefix, c.Name(), "<product>")
	}
	return c.svc.PriceHistory(ctx, product, defaultHistoryLimit)
}

// HelpCommand lists the registered commands
type HelpCommand struct {
	registry *Registry
}

// NewHelpCommand creates the help command
func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{registry: registry}
}

func (c *HelpCommand) Name() string { return "help" }

func (c *HelpCommand) Help() string { return "Show this list" }

func (c *HelpCommand) Execute(context.Context, []string) string {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, cmd := range c.registry.GetCommands() {
		fmt.Fprintf(&b, "\n%s%s - %s", c.registry.Prefix(), cmd.Name(), cmd.Help())
	}
	return b.String()
}
