// Package compare fans a product query out to every registered source and
// ranks what comes back.
package compare

import (
	"context"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/bradykim7/pricecompare/internal/fetcher"
	"github.com/bradykim7/pricecompare/internal/models"
	"github.com/bradykim7/pricecompare/internal/sources"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyProduct is returned for a blank product name
var ErrEmptyProduct = eris.New("product name is empty")

// ClientFactory supplies the HTTP client a single comparison uses
type ClientFactory func() *http.Client

// NewHTTPClient returns a client with its own connection pool
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          32,
			MaxIdleConnsPerHost:   4,
			IdleConnTimeout:       30 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: time.Second,
		},
	}
}

// Options configures a Comparer
type Options struct {
	// Deadline bounds a whole comparison; zero means none. Sources still
	// running when it expires count as having no price.
	Deadline  time.Duration
	NewClient ClientFactory
}

// Comparer runs one fetch per source concurrently and ranks the results
type Comparer struct {
	registry *sources.Registry
	fetcher  *fetcher.Fetcher
	log      *zap.Logger
	opts     Options
	stats    *Stats
}

// New creates a comparer over the registry
func New(registry *sources.Registry, f *fetcher.Fetcher, log *zap.Logger, opts Options) *Comparer {
	if opts.NewClient == nil {
		opts.NewClient = NewHTTPClient
	}
	return &Comparer{
		registry: registry,
		fetcher:  f,
		log:      log.Named("compare"),
		opts:     opts,
		stats:    NewStats(),
	}
}

// Sources returns the registry identifiers in order
func (c *Comparer) Sources() []string {
	return c.registry.IDs()
}

// Stats returns per-source statistics gathered so far
func (c *Comparer) Stats() []SourceStats {
	return c.stats.Snapshot()
}

// Compare queries every source for product. Every source is always
// attempted; failures only shrink the result. Sources are queried with the
// trimmed name; the result carries the name as given.
func (c *Comparer) Compare(ctx context.Context, product string) (models.ComparisonResult, error) {
	query := strings.TrimSpace(product)
	if query == "" {
		return models.ComparisonResult{}, ErrEmptyProduct
	}

	if c.opts.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Deadline)
		defer cancel()
	}

	client := c.opts.NewClient()
	defer client.CloseIdleConnections()

	start := time.Now()
	srcs := c.registry.All()
	c.log.Info("Comparing prices",
		zap.String("product", query),
		zap.Int("sources", len(srcs)))

	outcomes := make([]fetcher.Outcome, len(srcs))
	var g errgroup.Group
	for i, src := range srcs {
		g.Go(func() error {
			outcomes[i] = c.fetcher.Fetch(ctx, client, src, query)
			return nil
		})
	}
	_ = g.Wait()

	result := Rank(product, outcomes)
	now := time.Now()
	for _, out := range outcomes {
		c.stats.Record(out, now)
	}

	c.log.Info("Comparison completed",
		zap.String("product", query),
		zap.Int("found", result.Count()),
		zap.Strings("failed", result.Failed),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

// Rank keeps successful outcomes and sorts them ascending by price. Outcomes
// must be in registry order; equal prices keep that order.
func Rank(product string, outcomes []fetcher.Outcome) models.ComparisonResult {
	result := models.ComparisonResult{Product: product}
	for _, out := range outcomes {
		if out.OK() {
			result.Records = append(result.Records, *out.Record)
		} else {
			result.Failed = append(result.Failed, out.Source)
		}
	}
	sort.SliceStable(result.Records, func(i, j int) bool {
		return result.Records[i].Price < result.Records[j].Price
	})
	return result
}
