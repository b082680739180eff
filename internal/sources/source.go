package sources

import (
	"net/url"
	"strings"

	"github.com/bradykim7/pricecompare/internal/extract"
	"github.com/rotisserie/eris"
)

// Placeholder marks where the encoded product name goes in a URL template
const Placeholder = "{}"

// SourceConfig describes how to query one retailer and read its listing page
type SourceConfig struct {
	ID          string
	URLTemplate string
	Headers     map[string]string
	PriceRule   extract.Rule
	NameRule    extract.Rule
}

// QueryURL substitutes the product name, plus-encoded, into the template
func (c SourceConfig) QueryURL(product string) string {
	return strings.Replace(c.URLTemplate, Placeholder, url.QueryEscape(product), 1)
}

// Validate checks a single source entry
func (c SourceConfig) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return eris.New("source id is empty")
	}
	if n := strings.Count(c.URLTemplate, Placeholder); n != 1 {
		return eris.Errorf("source %s: url template must contain exactly one %s, found %d", c.ID, Placeholder, n)
	}
	u, err := url.Parse(strings.Replace(c.URLTemplate, Placeholder, "x", 1))
	if err != nil {
		return eris.Wrapf(err, "source %s: invalid url template", c.ID)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return eris.Errorf("source %s: unsupported url scheme %q", c.ID, u.Scheme)
	}
	if err := c.PriceRule.Validate(); err != nil {
		return eris.Wrapf(err, "source %s: price rule", c.ID)
	}
	if err := c.NameRule.Validate(); err != nil {
		return eris.Wrapf(err, "source %s: name rule", c.ID)
	}
	return nil
}

func (c SourceConfig) clone() SourceConfig {
	headers := make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		headers[k] = v
	}
	c.Headers = headers
	c.PriceRule = cloneRule(c.PriceRule)
	c.NameRule = cloneRule(c.NameRule)
	return c
}

func cloneRule(r extract.Rule) extract.Rule {
	if r.Attrs != nil {
		return extract.Attrs(r.Tag, r.Attrs)
	}
	return r
}
