package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bradykim7/pricecompare/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func baseConfig() *config.Config {
	return &config.Config{
		FetchTimeout:  time.Second,
		DelayMax:      time.Millisecond,
		CommandPrefix: "!",
	}
}

func TestNew_Defaults(t *testing.T) {
	a, err := New(context.Background(), baseConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.HistoryEnabled)
	assert.Equal(t,
		"Available websites for price comparison:\n- amazon\n- bestbuy\n- newegg",
		a.Service.AvailableWebsites())
	assert.Equal(t, "Price history is not enabled.", a.Service.PriceHistory(context.Background(), "gpu", 1))
	assert.NoError(t, a.Close())
}

func TestNew_SourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sources:
  - id: microcenter
    url: https://www.microcenter.com/search/search_results.aspx?Ntt={}
    price_selector: {class: price}
    name_selector: {tag: h2}
`), 0o600))

	cfg := baseConfig()
	cfg.SourcesFile = path

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Available websites for price comparison:\n- microcenter", a.Service.AvailableWebsites())
}

func TestNew_BadSourcesFile(t *testing.T) {
	cfg := baseConfig()
	cfg.SourcesFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, newLimiter(0))

	l := newLimiter(0.5)
	require.NotNil(t, l)
	assert.Equal(t, rate.Limit(0.5), l.Limit())
	assert.Equal(t, 1, l.Burst())

	assert.Equal(t, 4, newLimiter(4).Burst())
}
