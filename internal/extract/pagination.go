package extract

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nextPageSelectors is probed in order; only anchors with usable hrefs
// count, since there is no browser to click buttons with.
var nextPageSelectors = []string{
	"a[rel=\"next\"]",
	"a[aria-label*=\"Next\"]",
	"a[aria-label*=\"next\"]",
	"a[title=\"Go to next page\"]",
	".next-page a", ".pagination-next a", ".pagination__next a",
	"a.next-page", "a.pagination-next",
	"a[class*=\"pagination-next\"]", "a[class*=\"pager-next\"]",
	".pager__item--next a",
	"a[href*=\"startrow=\"][rel=\"nofollow\"]",
	".pagination li:not(.active) a[href*=\"startrow=\"]",
	"li.pager__item a[href*=\"page=\"]",
	"a[data-page=\"next\"]", "a[data-navigation=\"next\"]",
	"a.load-more", "a.loadMore", "a.show-more",
}

// NextPageURL resolves the next listing page from pagination markup.
// Falls back to bumping a page-ish query parameter when the document
// has no usable next anchor. Returns "" when there is no next page.
func NextPageURL(doc *goquery.Document, pageURL string) string {
	for _, sel := range nextPageSelectors {
		a := doc.Find(sel).First()
		if a.Length() == 0 {
			continue
		}
		href, ok := a.Attr("href")
		if !ok || href == "" || strings.HasPrefix(href, "javascript:") || href == "#" {
			continue
		}
		next := resolveURL(pageURL, href)
		if next != pageURL {
			return next
		}
	}

	return bumpPageParam(pageURL)
}

// pageParams are query keys that commonly carry a page cursor.
var pageParams = []string{"page", "pageNumber", "pageNum", "pg"}

func bumpPageParam(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	q := u.Query()
	for _, key := range pageParams {
		if v := q.Get(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				continue
			}
			q.Set(key, strconv.Itoa(n+1))
			u.RawQuery = q.Encode()
			return u.String()
		}
	}

	// SAP-style startrow pagination steps in increments of 10.
	if q.Has("startrow") {
		n, err := strconv.Atoi(q.Get("startrow"))
		if err != nil {
			return ""
		}
		q.Set("startrow", strconv.Itoa(n+10))
		u.RawQuery = q.Encode()
		return u.String()
	}

	return ""
}

// StartRowURL builds the explicit startrow cursor some SAP careers
// sites use, where page N starts at row (N-1)*10.
func StartRowURL(pageURL string, nextPage int) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("startrow", fmt.Sprintf("%d", (nextPage-1)*10))
	u.RawQuery = q.Encode()
	return u.String()
}
