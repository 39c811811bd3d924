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

// nestleExtractor reads nestle.com careers listings: Drupal view rows
// linking into the jobdetails.nestle.com posting pages.
type nestleExtractor struct {
	client *fetch.Client
	log    *ui.Logger
}

func (e *nestleExtractor) Name() string { return "nestle" }

func (e *nestleExtractor) Extract(ctx context.Context, t Target) ([]jobs.Job, error) {
	return crawl(ctx, e.client, e.log, t, parseNestlePage, nextNestlePage)
}

func parseNestlePage(doc *goquery.Document, pageURL, company string) []jobs.Job {
	now := time.Now()
	var out []jobs.Job

	doc.Find(".views-row").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a[href*=\"jobdetails.nestle.com/job\"]").First()
		if link.Length() == 0 {
			return
		}

		title := jobs.NormalizeText(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" || !jobs.ValidTitle(title) {
			return
		}

		u := resolveURL(pageURL, href)
		if !strings.Contains(u, "jobdetails.nestle.com") {
			return
		}

		location := jobs.NormalizeText(row.Find(".field--name-field-job-location").First().Text())
		if location == "" {
			location = jobs.NormalizeText(row.Find(".field-location").First().Text())
		}

		out = append(out, jobs.Job{
			Company:   company,
			Title:     title,
			Location:  location,
			URL:       u,
			JobID:     jobs.IDFromURL(u),
			Source:    company,
			ScrapedAt: now,
		})
	})

	return out
}

var nestleNextSelectors = []string{
	"a[rel=\"next\"][title=\"Go to next page\"]",
	"a[rel=\"next\"]",
	"a[title=\"Go to next page\"]",
	".pager__item--next a",
}

func nextNestlePage(doc *goquery.Document, pageURL string, page int) string {
	for _, sel := range nestleNextSelectors {
		if href, ok := doc.Find(sel).First().Attr("href"); ok && href != "" {
			return resolveURL(pageURL, href)
		}
	}
	return ""
}
