package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFromHTML(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc.Selection
}

func TestFirstTextFirstCandidateWins(t *testing.T) {
	node := docFromHTML(t, `
		<div class="product">
			<h5 class="name">  Ciment   Portland  </h5>
			<span class="title">Autre titre</span>
		</div>`)

	got := FirstText(node, []string{".name", ".title"})
	if !got.OK() {
		t.Fatalf("expected Found, got %v", got.Outcome)
	}
	if got.Value != "Ciment Portland" {
		t.Errorf("value: got %q, want %q", got.Value, "Ciment Portland")
	}
}

func TestFirstTextSkipsEmptyMatches(t *testing.T) {
	node := docFromHTML(t, `
		<div>
			<span class="price">   </span>
			<span class="content_price">99 DT</span>
		</div>`)

	got := FirstText(node, []string{".price", ".content_price"})
	if got.Value != "99 DT" {
		t.Errorf("expected fallthrough to .content_price, got %q", got.Value)
	}
}

func TestFirstTextMissing(t *testing.T) {
	node := docFromHTML(t, `<div><p>rien</p></div>`)

	got := FirstText(node, []string{".name", ".title", "h5 a"})
	if got.Outcome != Missing {
		t.Errorf("expected Missing, got %v", got.Outcome)
	}
	if got.Value != "" {
		t.Errorf("Missing result must carry no value, got %q", got.Value)
	}
}

func TestFirstTextNoCandidates(t *testing.T) {
	node := docFromHTML(t, `<div class="x">texte</div>`)
	if got := FirstText(node, nil); got.Outcome != Missing {
		t.Errorf("nil candidates: expected Missing, got %v", got.Outcome)
	}
}

func TestFirstAttrFallsBackAcrossAttributes(t *testing.T) {
	node := docFromHTML(t, `
		<div class="card">
			<img class="lazy" data-src="/img/42.jpg">
			<a class="link" href="/produit/42">voir</a>
		</div>`)

	img := FirstAttr(node, []string{"img"}, "src", "data-src")
	if img.Value != "/img/42.jpg" {
		t.Errorf("image: got %q, want /img/42.jpg", img.Value)
	}

	link := FirstAttr(node, []string{".missing", "a.link"}, "href")
	if link.Value != "/produit/42" {
		t.Errorf("href: got %q, want /produit/42", link.Value)
	}
}

func TestFirstAttrMissing(t *testing.T) {
	node := docFromHTML(t, `<div><a class="link">sans href</a></div>`)
	if got := FirstAttr(node, []string{"a.link"}, "href"); got.Outcome != Missing {
		t.Errorf("expected Missing for absent attribute, got %v", got.Outcome)
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  a  b ", "a b"},
		{"a\n\tb", "a b"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CollapseSpace(tt.in); got != tt.want {
			t.Errorf("CollapseSpace(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
