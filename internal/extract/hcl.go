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

// hclExtractor reads hcltech.com job tables, where postings are rows
// keyed by designation/location header cells. The site paginates with
// a load-more button, which over plain HTTP means bumping the page
// query parameter.
type hclExtractor struct {
	client *fetch.Client
	log    *ui.Logger
}

func (e *hclExtractor) Name() string { return "hcl" }

func (e *hclExtractor) Extract(ctx context.Context, t Target) ([]jobs.Job, error) {
	return crawl(ctx, e.client, e.log, t, parseHCLPage, func(doc *goquery.Document, pageURL string, page int) string {
		return NextPageURL(doc, pageURL)
	})
}

func parseHCLPage(doc *goquery.Document, pageURL, company string) []jobs.Job {
	now := time.Now()
	var out []jobs.Job

	doc.Find("td[headers=\"view-field-designation-table-column\"]").Each(func(_ int, cell *goquery.Selection) {
		link := cell.Find("a[data-once=\"ajaxified-components\"]").First()
		if link.Length() == 0 {
			link = cell.Find("a").First()
		}
		href, _ := link.Attr("href")
		title := jobs.NormalizeText(link.Text())
		if title == "" || href == "" {
			return
		}

		u := resolveURL(pageURL, href)
		if !strings.Contains(u, "/jobs/") ||
			strings.Contains(u, "jobsearch") ||
			strings.Contains(u, "saved-jobs") {
			return
		}
		if !jobs.ValidTitle(title) {
			return
		}

		row := cell.Closest("tr")
		location := jobs.NormalizeText(row.Find("td[headers=\"view-field-work-location-table-column\"]").First().Text())

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
