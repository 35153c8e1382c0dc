// Package extract implements selector-fallback extraction: trying an
// ordered list of CSS selectors against a listing node until one yields a
// non-empty value, plus the pure-text normalizers (price, unit, category,
// property fields) applied to the matched text.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstText tries each candidate selector in order against the node and
// returns the first match whose text is non-empty after whitespace
// collapsing. Candidates after the winning one are never evaluated. When
// no candidate yields text the result is Missing; FirstText never fails.
func FirstText(node *goquery.Selection, candidates []string) Result {
	for _, css := range candidates {
		matched := node.Find(css)
		if matched.Length() == 0 {
			continue
		}
		text := CollapseSpace(matched.First().Text())
		if text != "" {
			return Result{Outcome: Found, Value: text}
		}
	}
	return Result{Outcome: Missing}
}

// FirstAttr is FirstText for attributes: for each candidate selector, the
// named attributes are checked in order on the first matching element.
// Used for image sources (src, data-src) and link targets (href).
func FirstAttr(node *goquery.Selection, candidates []string, attrs ...string) Result {
	for _, css := range candidates {
		matched := node.Find(css)
		if matched.Length() == 0 {
			continue
		}
		first := matched.First()
		for _, attr := range attrs {
			if val, ok := first.Attr(attr); ok {
				val = strings.TrimSpace(val)
				if val != "" {
					return Result{Outcome: Found, Value: val}
				}
			}
		}
	}
	return Result{Outcome: Missing}
}

// CollapseSpace trims the string and collapses internal runs of
// whitespace (including newlines) into single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
