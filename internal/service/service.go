// Package service exposes the price comparison as plain-text operations for
// the transports.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bradykim7/pricecompare/internal/compare"
	"github.com/bradykim7/pricecompare/internal/models"
	"github.com/bradykim7/pricecompare/internal/summarize"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const historyTimeout = 5 * time.Second

// Comparer is the aggregator the service relays to
type Comparer interface {
	Compare(ctx context.Context, product string) (models.ComparisonResult, error)
	Sources() []string
	Stats() []compare.SourceStats
}

// HistoryStore records and reads comparison summaries
type HistoryStore interface {
	Save(ctx context.Context, entry models.ComparisonLog) error
	Recent(ctx context.Context, product string, limit int64) ([]models.ComparisonLog, error)
}

// Service renders comparisons and recommendations as text. Its methods never
// return errors; failures become descriptive strings.
type Service struct {
	comparer   Comparer
	summarizer summarize.Summarizer
	history    HistoryStore
	log        *zap.Logger
}

// Option customizes a Service
type Option func(*Service)

// WithSummarizer enables shopping recommendations
func WithSummarizer(s summarize.Summarizer) Option {
	return func(svc *Service) { svc.summarizer = s }
}

// WithHistory records every completed comparison
func WithHistory(h HistoryStore) Option {
	return func(svc *Service) { svc.history = h }
}

// New creates a service
func New(c Comparer, log *zap.Logger, opts ...Option) *Service {
	svc := &Service{comparer: c, log: log.Named("service")}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ComparePrices returns the rendered report for product
func (s *Service) ComparePrices(ctx context.Context, product string) (report string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Comparison panicked", zap.String("product", product), zap.Any("panic", r))
			report = fmt.Sprintf("Error comparing prices: %v", r)
		}
	}()

	res, err := s.comparer.Compare(ctx, product)
	if err != nil {
		s.log.Error("Comparison failed", zap.String("product", product), zap.Error(err))
		return fmt.Sprintf("Error comparing prices: %v", err)
	}

	s.record(ctx, res)
	return compare.Render(res)
}

// AvailableWebsites lists the registered sources
func (s *Service) AvailableWebsites() string {
	var b strings.Builder
	b.WriteString("Available websites for price comparison:")
	for _, id := range s.comparer.Sources() {
		b.WriteString("\n- ")
		b.WriteString(id)
	}
	return b.String()
}

// ShoppingRecommendation compares prices and appends an AI analysis
func (s *Service) ShoppingRecommendation(ctx context.Context, product string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Recommendation panicked", zap.String("product", product), zap.Any("panic", r))
			out = fmt.Sprintf("Error getting recommendation: %v", r)
		}
	}()

	report := s.ComparePrices(ctx, product)
	return summarize.Compose(ctx, s.summarizer, report)
}

// SourceStats renders per-source statistics as indented JSON
func (s *Service) SourceStats() string {
	stats := s.comparer.Stats()
	if len(stats) == 0 {
		return "No comparisons have run yet."
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		s.log.Error("Failed to encode source stats", zap.Error(err))
		return fmt.Sprintf("Error encoding source stats: %v", err)
	}
	return string(data)
}

// PriceHistory renders recent comparison summaries for product
func (s *Service) PriceHistory(ctx context.Context, product string, limit int64) string {
	if s.history == nil {
		return "Price history is not enabled."
	}
	if limit <= 0 {
		limit = 10
	}

	entries, err := s.history.Recent(ctx, strings.TrimSpace(product), limit)
	if err != nil {
		s.log.Error("Failed to read price history", zap.String("product", product), zap.Error(err))
		return fmt.Sprintf("Error reading price history: %v", err)
	}
	if len(entries) == 0 {
		return fmt.Sprintf("No price history for %s", product)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Price history for: %s\n", product)
	for _, e := range entries {
		if e.Count == 0 {
			fmt.Fprintf(&b, "\n%s: no prices found", e.RequestedAt.Format(time.RFC3339))
			continue
		}
		fmt.Fprintf(&b, "\n%s: best %s at $%.2f, range $%.2f - $%.2f across %d stores",
			e.RequestedAt.Format(time.RFC3339), compare.DisplayName(e.BestSource),
			e.BestPrice, e.MinPrice, e.MaxPrice, e.Count)
	}
	return b.String()
}

func (s *Service) record(ctx context.Context, res models.ComparisonResult) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyTimeout)
	defer cancel()

	if err := s.history.Save(ctx, models.NewComparisonLog(res, time.Now())); err != nil {
		s.log.Warn("Failed to record comparison", zap.String("product", res.Product), zap.Error(eris.Cause(err)))
	}
}
