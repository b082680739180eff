// Package extract locates a single element in a parsed HTML page from a
// declarative rule.
package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/rotisserie/eris"
)

// Kind selects the matching strategy of a Rule
type Kind int

const (
	KindCSS Kind = iota + 1
	KindClass
	KindID
	KindTag
	KindAttrs
)

func (k Kind) String() string {
	switch k {
	case KindCSS:
		return "css"
	case KindClass:
		return "class"
	case KindID:
		return "id"
	case KindTag:
		return "tag"
	case KindAttrs:
		return "attrs"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Rule describes how to find one element. Exactly one strategy is active,
// chosen by Kind; build rules with the constructors below.
type Rule struct {
	Kind  Kind
	Value string
	// Tag optionally narrows a KindAttrs rule to one element name
	Tag   string
	Attrs map[string]string
}

// CSS matches the first element selected by a CSS selector
func CSS(selector string) Rule {
	return Rule{Kind: KindCSS, Value: selector}
}

// Class matches the first element carrying the class
func Class(name string) Rule {
	return Rule{Kind: KindClass, Value: name}
}

// ID matches the element with the id attribute
func ID(id string) Rule {
	return Rule{Kind: KindID, Value: id}
}

// Tag matches the first element with the given name
func Tag(name string) Rule {
	return Rule{Kind: KindTag, Value: name}
}

// Attrs matches the first element on which every attribute holds. A non-empty
// tag must hold on the same element.
func Attrs(tag string, attrs map[string]string) Rule {
	copied := make(map[string]string, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return Rule{Kind: KindAttrs, Tag: tag, Attrs: copied}
}

// Validate reports rules that can never be evaluated meaningfully
func (r Rule) Validate() error {
	switch r.Kind {
	case KindCSS:
		if strings.TrimSpace(r.Value) == "" {
			return eris.New("empty css selector")
		}
		if _, err := cascadia.Compile(r.Value); err != nil {
			return eris.Wrapf(err, "invalid css selector %q", r.Value)
		}
	case KindClass, KindID, KindTag:
		if strings.TrimSpace(r.Value) == "" {
			return eris.Errorf("empty %s rule", r.Kind)
		}
	case KindAttrs:
		if len(r.Attrs) == 0 {
			return eris.New("attribute rule without attributes")
		}
		for k := range r.Attrs {
			if strings.TrimSpace(k) == "" {
				return eris.New("attribute rule with empty attribute name")
			}
		}
	default:
		return eris.Errorf("unknown rule %s", r.Kind)
	}
	return nil
}

func (r Rule) String() string {
	switch r.Kind {
	case KindAttrs:
		keys := make([]string, 0, len(r.Attrs))
		for k := range r.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%q", k, r.Attrs[k]))
		}
		if r.Tag != "" {
			return fmt.Sprintf("attrs(%s %s)", r.Tag, strings.Join(parts, " "))
		}
		return fmt.Sprintf("attrs(%s)", strings.Join(parts, " "))
	default:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Value)
	}
}
