package scraper

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"materiaux-scraper/config"
	"materiaux-scraper/extract"
)

// NextPageURL computes the URL of page nextPage according to the site's
// pagination strategy. doc is the document of the page just scraped
// (needed by the next-link strategy; nil is fine for the others).
// ok is false when the strategy cannot produce another page, which ends
// the site's loop.
func NextPageURL(site *config.SiteConfig, doc *goquery.Document, currentURL string, nextPage int) (string, bool) {
	switch site.Pagination {
	case config.PaginatePageParam:
		u, err := url.Parse(site.BaseURL)
		if err != nil {
			return "", false
		}
		q := u.Query()
		q.Set(site.PageParam, strconv.Itoa(nextPage))
		u.RawQuery = q.Encode()
		return u.String(), true

	case config.PaginateHashParam:
		next, err := setHashPageParam(currentURL, nextPage)
		if err != nil {
			return "", false
		}
		return next, true

	case config.PaginateNextLink:
		if doc == nil {
			return "", false
		}
		res := extract.FirstAttr(doc.Selection, site.Selectors.NextPage, "href")
		if !res.OK() {
			return "", false
		}
		return resolveURL(currentURL, res.Value), true

	default:
		return "", false
	}
}

// setHashPageParam rewrites the page= entry of the URL's hash fragment,
// e.g. .../PublicListingList.aspx#mode=gallery&page=2&cur=TND. Sites built
// on ASP.NET gallery views keep all listing state in the fragment, so the
// base URL never changes between pages.
func setHashPageParam(rawURL string, page int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("paginate: parse %q: %w", rawURL, err)
	}

	if u.Fragment == "" {
		u.Fragment = fmt.Sprintf("mode=gallery&page=%d", page)
		return u.String(), nil
	}

	params, err := url.ParseQuery(u.Fragment)
	if err != nil {
		return "", fmt.Errorf("paginate: parse fragment %q: %w", u.Fragment, err)
	}
	params.Set("page", strconv.Itoa(page))
	u.Fragment = params.Encode()
	return u.String(), nil
}

// resolveURL makes ref absolute against base; ref is returned untouched
// when it is already absolute or base does not parse.
func resolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
