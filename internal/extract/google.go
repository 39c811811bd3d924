package extract

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/jobscout-dev/jobscout/internal/ui"
)

// Google careers links are relative to the applications app, not to
// the page they appear on.
const googleApplicationsBase = "https://www.google.com/about/careers/applications/"

// googleExtractor reads google careers search results: obfuscated
// class link anchors whose aria-label carries the posting title.
type googleExtractor struct {
	client *fetch.Client
	log    *ui.Logger
}

func (e *googleExtractor) Name() string { return "google" }

func (e *googleExtractor) Extract(ctx context.Context, t Target) ([]jobs.Job, error) {
	return crawl(ctx, e.client, e.log, t, parseGooglePage, nextGooglePage)
}

func parseGooglePage(doc *goquery.Document, pageURL, company string) []jobs.Job {
	now := time.Now()
	var out []jobs.Job

	doc.Find("a.WpHeLc").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		title := jobs.NormalizeText(link.AttrOr("aria-label", ""))
		location := jobs.NormalizeText(link.Find("[class*=\"location\"]").First().Text())

		if href == "" || title == "" {
			return
		}

		u := href
		if !strings.HasPrefix(u, "http") {
			u = googleApplicationsBase + strings.TrimPrefix(u, "/")
		}

		segments := strings.Split(strings.TrimRight(href, "/"), "/")
		id := segments[len(segments)-1]
		id = jobs.IDFromURL(id)

		out = append(out, jobs.Job{
			Company:   company,
			Title:     title,
			Location:  location,
			URL:       u,
			JobID:     id,
			Source:    company,
			ScrapedAt: now,
		})
	})

	return out
}

func nextGooglePage(doc *goquery.Document, pageURL string, page int) string {
	link := doc.Find("a[jsname=\"hSRGPd\"][aria-label=\"Go to next page\"]").First()
	if href, ok := link.Attr("href"); ok && href != "" {
		return resolveURL(pageURL, href)
	}
	return ""
}
