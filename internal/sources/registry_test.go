package sources

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bradykim7/pricecompare/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Order(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, []string{"amazon", "bestbuy", "newegg"}, reg.IDs())
	}
	assert.Equal(t, 3, reg.Len())
}

func TestDefault_HasBrowserUserAgent(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	for _, c := range reg.All() {
		assert.Contains(t, c.Headers["User-Agent"], "Mozilla/5.0", c.ID)
	}
}

func TestQueryURL_PlusEncodes(t *testing.T) {
	c := SourceConfig{URLTemplate: "https://shop.example/s?k={}"}
	assert.Equal(t, "https://shop.example/s?k=rtx+4070+ti%26co", c.QueryURL("rtx 4070 ti&co"))
}

func TestLookup(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	c, err := reg.Lookup("bestbuy")
	require.NoError(t, err)
	assert.Equal(t, extract.KindAttrs, c.NameRule.Kind)

	_, err = reg.Lookup("ebay")
	assert.True(t, errors.Is(err, ErrUnknownSource))
}

func TestRegistry_IsReadOnly(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	ids := reg.IDs()
	ids[0] = "changed"
	all := reg.All()
	all[0].Headers["User-Agent"] = "changed"
	all[1].NameRule.Attrs["class"] = "changed"

	again, err := reg.Lookup("amazon")
	require.NoError(t, err)
	assert.Equal(t, "amazon", reg.IDs()[0])
	assert.NotEqual(t, "changed", again.Headers["User-Agent"])

	bb, err := reg.Lookup("bestbuy")
	require.NoError(t, err)
	assert.Equal(t, "sku-title", bb.NameRule.Attrs["class"])
}

func TestNew_Validation(t *testing.T) {
	good := SourceConfig{
		ID:          "shop",
		URLTemplate: "https://shop.example/s?q={}",
		PriceRule:   extract.Class("price"),
		NameRule:    extract.Tag("h1"),
	}

	tests := []struct {
		name   string
		mutate func(*SourceConfig)
	}{
		{"empty id", func(c *SourceConfig) { c.ID = "" }},
		{"no placeholder", func(c *SourceConfig) { c.URLTemplate = "https://shop.example/s" }},
		{"two placeholders", func(c *SourceConfig) { c.URLTemplate = "https://shop.example/{}?q={}" }},
		{"bad scheme", func(c *SourceConfig) { c.URLTemplate = "ftp://shop.example/{}" }},
		{"bad price rule", func(c *SourceConfig) { c.PriceRule = extract.CSS("div[[") }},
		{"bad name rule", func(c *SourceConfig) { c.NameRule = extract.Rule{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := good
			tt.mutate(&c)
			_, err := New(c)
			assert.Error(t, err)
		})
	}

	_, err := New(good, good)
	assert.Error(t, err, "duplicate ids")

	_, err = New()
	assert.Error(t, err, "empty registry")

	_, err = New(good)
	assert.NoError(t, err)
}

func TestParse_RuleForms(t *testing.T) {
	data := []byte(`
sources:
  - id: shop-b
    url: "https://b.example/search?q={}"
    price_selector: "span.price"
    name_selector:
      tag: h4
      attrs:
        class: sku-title
  - id: shop-a
    url: "https://a.example/s?k={}"
    headers:
      User-Agent: test-agent
    price_selector:
      class: a-price-whole
      id: ignored
    name_selector:
      tag: h2
`)
	reg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"shop-b", "shop-a"}, reg.IDs())

	b, err := reg.Lookup("shop-b")
	require.NoError(t, err)
	assert.Equal(t, extract.CSS("span.price"), b.PriceRule)
	assert.Equal(t, extract.KindAttrs, b.NameRule.Kind)
	assert.Equal(t, "h4", b.NameRule.Tag)
	assert.Contains(t, b.Headers["User-Agent"], "Mozilla/5.0")

	a, err := reg.Lookup("shop-a")
	require.NoError(t, err)
	assert.Equal(t, extract.Class("a-price-whole"), a.PriceRule)
	assert.Equal(t, extract.Tag("h2"), a.NameRule)
	assert.Equal(t, "test-agent", a.Headers["User-Agent"])
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse([]byte(`sources: [`))
	assert.Error(t, err)

	_, err = Parse([]byte(`
sources:
  - id: x
    url: "https://x.example/{}"
    price_selector: {}
    name_selector: h1
`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())

	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sources:
  - id: only
    url: "https://only.example/?q={}"
    price_selector: ".price"
    name_selector: "h1"
`), 0o600))

	reg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, reg.IDs())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
