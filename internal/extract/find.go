package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Find returns the first element under root, in document order, that the
// rule matches. A rule that matches nothing, including an invalid CSS
// selector, yields false rather than an error.
func Find(root *goquery.Selection, rule Rule) (*goquery.Selection, bool) {
	if root == nil {
		return nil, false
	}

	var found *goquery.Selection
	switch rule.Kind {
	case KindCSS:
		sel, err := cascadia.Compile(rule.Value)
		if err != nil {
			return nil, false
		}
		found = root.FindMatcher(sel).First()
	case KindClass:
		found = firstWhere(root, func(s *goquery.Selection) bool {
			return classMatches(s, rule.Value)
		})
	case KindID:
		found = firstWhere(root, func(s *goquery.Selection) bool {
			id, ok := s.Attr("id")
			return ok && id == rule.Value
		})
	case KindTag:
		name := strings.ToLower(rule.Value)
		found = firstWhere(root, func(s *goquery.Selection) bool {
			return goquery.NodeName(s) == name
		})
	case KindAttrs:
		tag := strings.ToLower(rule.Tag)
		found = firstWhere(root, func(s *goquery.Selection) bool {
			if tag != "" && goquery.NodeName(s) != tag {
				return false
			}
			return attrsMatch(s, rule.Attrs)
		})
	default:
		return nil, false
	}

	if found == nil || found.Length() == 0 {
		return nil, false
	}
	return found, true
}

// Text returns the trimmed text of the first element the rule matches
func Text(root *goquery.Selection, rule Rule) (string, bool) {
	s, ok := Find(root, rule)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s.Text()), true
}

func firstWhere(root *goquery.Selection, pred func(*goquery.Selection) bool) *goquery.Selection {
	return root.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return pred(s)
	}).First()
}

// classMatches accepts either a single class token or the full attribute value
func classMatches(s *goquery.Selection, class string) bool {
	if s.HasClass(class) {
		return true
	}
	v, ok := s.Attr("class")
	return ok && strings.Join(strings.Fields(v), " ") == strings.Join(strings.Fields(class), " ")
}

func attrsMatch(s *goquery.Selection, attrs map[string]string) bool {
	if len(attrs) == 0 {
		return false
	}
	for name, want := range attrs {
		if strings.EqualFold(name, "class") {
			if !classMatches(s, want) {
				return false
			}
			continue
		}
		got, ok := s.Attr(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}
