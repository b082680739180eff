package sources

import (
	"os"

	"github.com/bradykim7/pricecompare/internal/extract"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// fileTable is the on-disk layout of a source table
type fileTable struct {
	Sources []fileSource `yaml:"sources"`
}

type fileSource struct {
	ID            string            `yaml:"id"`
	URL           string            `yaml:"url"`
	Headers       map[string]string `yaml:"headers"`
	PriceSelector ruleSpec          `yaml:"price_selector"`
	NameSelector  ruleSpec          `yaml:"name_selector"`
}

// ruleSpec accepts either a bare CSS selector string or a mapping with any
// of selector, class, id, tag, attrs.
type ruleSpec struct {
	Selector string            `yaml:"selector"`
	Class    string            `yaml:"class"`
	ID       string            `yaml:"id"`
	Tag      string            `yaml:"tag"`
	Attrs    map[string]string `yaml:"attrs"`
}

func (s *ruleSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&s.Selector)
	}
	type plain ruleSpec
	return node.Decode((*plain)(s))
}

// rule resolves the first present key: selector, class, id, then tag/attrs.
// A tag given together with attrs narrows the attribute match.
func (s ruleSpec) rule() (extract.Rule, error) {
	switch {
	case s.Selector != "":
		return extract.CSS(s.Selector), nil
	case s.Class != "":
		return extract.Class(s.Class), nil
	case s.ID != "":
		return extract.ID(s.ID), nil
	case len(s.Attrs) > 0:
		return extract.Attrs(s.Tag, s.Attrs), nil
	case s.Tag != "":
		return extract.Tag(s.Tag), nil
	default:
		return extract.Rule{}, eris.New("selector has no selector, class, id, tag or attrs")
	}
}

// Parse decodes a YAML source table and validates it into a registry
func Parse(data []byte) (*Registry, error) {
	var table fileTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, eris.Wrap(err, "decode source table")
	}

	configs := make([]SourceConfig, 0, len(table.Sources))
	for i, fs := range table.Sources {
		priceRule, err := fs.PriceSelector.rule()
		if err != nil {
			return nil, eris.Wrapf(err, "source %d (%s): price_selector", i, fs.ID)
		}
		nameRule, err := fs.NameSelector.rule()
		if err != nil {
			return nil, eris.Wrapf(err, "source %d (%s): name_selector", i, fs.ID)
		}
		headers := fs.Headers
		if len(headers) == 0 {
			headers = browserHeaders()
		}
		configs = append(configs, SourceConfig{
			ID:          fs.ID,
			URLTemplate: fs.URL,
			Headers:     headers,
			PriceRule:   priceRule,
			NameRule:    nameRule,
		})
	}
	return New(configs...)
}

// Load reads a source table from path; an empty path yields the built-in table
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read source table %s", path)
	}
	return Parse(data)
}
