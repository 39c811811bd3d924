package extract

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/jobscout-dev/jobscout/internal/ui"
)

// amazonExtractor reads amazon.jobs search results: .job-tile cards
// with an h3 title, .location-text and a data-job-id attribute.
type amazonExtractor struct {
	client *fetch.Client
	log    *ui.Logger
}

func (e *amazonExtractor) Name() string { return "amazon" }

func (e *amazonExtractor) Extract(ctx context.Context, t Target) ([]jobs.Job, error) {
	return crawl(ctx, e.client, e.log, t, parseAmazonPage, nextAmazonPage)
}

func parseAmazonPage(doc *goquery.Document, pageURL, company string) []jobs.Job {
	now := time.Now()
	var out []jobs.Job

	doc.Find(".job-tile").Each(func(_ int, tile *goquery.Selection) {
		title := jobs.NormalizeText(tile.Find("h3").First().Text())
		location := jobs.NormalizeText(tile.Find(".location-text").First().Text())
		href, _ := tile.Find("a").First().Attr("href")

		if title == "" || href == "" {
			return
		}

		u := resolveURL(pageURL, href)
		id, _ := tile.Attr("data-job-id")
		if id == "" {
			id = jobs.IDFromURL(u)
		}

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

func nextAmazonPage(doc *goquery.Document, pageURL string, page int) string {
	if href, ok := doc.Find("a[aria-label*=\"Next\"]").First().Attr("href"); ok && href != "" {
		return resolveURL(pageURL, href)
	}
	return NextPageURL(doc, pageURL)
}
