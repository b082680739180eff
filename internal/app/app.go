// Package app assembles the comparison pipeline from configuration.
package app

import (
	"context"

	"github.com/bradykim7/pricecompare/internal/compare"
	"github.com/bradykim7/pricecompare/internal/fetcher"
	"github.com/bradykim7/pricecompare/internal/service"
	"github.com/bradykim7/pricecompare/internal/sources"
	"github.com/bradykim7/pricecompare/internal/storage"
	"github.com/bradykim7/pricecompare/internal/summarize"
	"github.com/bradykim7/pricecompare/pkg/config"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// App owns the service and the resources behind it
type App struct {
	Service        *service.Service
	HistoryEnabled bool

	db  *storage.MongoDB
	log *zap.Logger
}

// New builds the pipeline described by cfg. MongoDB is connected only when
// history is enabled; the summarizer only when an API key is set.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	registry, err := sources.Load(cfg.SourcesFile)
	if err != nil {
		return nil, eris.Wrap(err, "failed to load sources")
	}
	log.Info("Sources loaded", zap.Strings("sources", registry.IDs()))

	f := fetcher.New(log, fetcher.Options{
		Timeout: cfg.FetchTimeout,
		Delay:   fetcher.UniformDelay{Min: cfg.DelayMin, Max: cfg.DelayMax},
		Limiter: newLimiter(cfg.RateLimitRPS),
	})
	comparer := compare.New(registry, f, log, compare.Options{Deadline: cfg.CompareDeadline})

	a := &App{log: log}
	var opts []service.Option

	if cfg.SummarizerEnabled() {
		opts = append(opts, service.WithSummarizer(summarize.NewAnthropic(summarize.AnthropicConfig{
			APIKey:      cfg.AnthropicAPIKey,
			Model:       cfg.AnthropicModel,
			Temperature: cfg.AnthropicTemperature,
		}, log)))
	} else {
		log.Warn("ANTHROPIC_API_KEY not set, shopping recommendations will omit the AI analysis")
	}

	if cfg.HistoryEnabled() {
		db, err := storage.NewMongoDB(ctx, cfg.MongoDBURI, cfg.MongoDBDatabase, log)
		if err != nil {
			return nil, err
		}
		repo := storage.NewHistoryRepository(db, log)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn("Failed to create history indexes", zap.Error(err))
		}
		a.db = db
		a.HistoryEnabled = true
		opts = append(opts, service.WithHistory(repo))
	}

	a.Service = service.New(comparer, log, opts...)
	return a, nil
}

// Close releases the MongoDB connection, if any
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Disconnect(); err != nil {
		return eris.Wrap(err, "failed to disconnect MongoDB")
	}
	return nil
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
